package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// prompter reads interactive field input for the shell session.
type prompter struct {
	in *bufio.Reader
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin)}
}

// ask reads one line. An empty answer returns def.
func (p *prompter) ask(label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// askDecimal keeps asking until the answer parses as a decimal.
func (p *prompter) askDecimal(label string, def decimal.Decimal) decimal.Decimal {
	for {
		answer := p.ask(label, def.String())
		d, err := decimal.NewFromString(answer)
		if err != nil {
			fmt.Printf("Not a number: %q\n", answer)
			continue
		}
		return d
	}
}

// askYes reads a yes/no answer, defaulting to no.
func (p *prompter) askYes(label string) bool {
	answer := strings.ToLower(p.ask(label+" [y/N]", "n"))
	return answer == "y" || answer == "yes"
}

// askChoice keeps asking until the answer is one of the numbered options.
// Returns the zero-based index.
func (p *prompter) askChoice(label string, options []string) int {
	for _, opt := range options {
		fmt.Println(opt)
	}
	for {
		answer := p.ask(label, "")
		for i := range options {
			if answer == fmt.Sprintf("%d", i+1) {
				return i
			}
		}
		fmt.Printf("Pick 1-%d\n", len(options))
	}
}
