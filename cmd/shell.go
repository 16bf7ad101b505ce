package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"khaata/internal/ledger"
	"khaata/internal/render"
	"khaata/pkg/models"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive ledger session",
	Long: `Start an interactive session. All state is loaded once at startup and
every mutating command writes its collection back to disk immediately.
Commands mirror the one-shot CLI; missing arguments are prompted for.
Type 'help' for the command list, 'exit' to quit.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// shellSession holds the single in-memory working copy for the session.
type shellSession struct {
	svc    *ledger.Service
	prompt *prompter
}

func runShell(cmd *cobra.Command, args []string) error {
	s := &shellSession{
		svc:    newService(),
		prompt: newPrompter(),
	}

	fmt.Println("khaata interactive shell. Type 'help' for commands, 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("khaata> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, rest := strings.ToLower(fields[0]), fields[1:]

		if command == "exit" {
			fmt.Println("Bye.")
			return nil
		}
		// Errors abort only the current command, never the session.
		if err := s.dispatch(command, rest); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (s *shellSession) dispatch(command string, args []string) error {
	switch command {
	case "help":
		s.printHelp()
	case "clear":
		fmt.Print("\033[2J\033[H")
	case "add-client":
		return s.addClient()
	case "list-clients":
		printClientTable(s.svc.Clients())
	case "update-client":
		return s.updateClient(args)
	case "delete-client":
		return s.deleteClient(args)
	case "create-invoice":
		return s.createInvoice(args)
	case "list-invoices":
		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}
		return runListInvoicesFor(s.svc, filter)
	case "view-invoice":
		if len(args) == 0 {
			return fmt.Errorf("usage: view-invoice <invoice-id>")
		}
		return viewInvoiceFor(s.svc, args[0])
	case "delete-invoice":
		return s.deleteInvoice(args)
	case "generate-pdf":
		return s.generatePDF(args)
	case "config":
		printProfileTable(s.svc.Profile())
	case "update-config":
		return s.updateConfig()
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", command)
	}
	return nil
}

func (s *shellSession) printHelp() {
	fmt.Print(`Clients:
  add-client                 register a new client
  list-clients               display the client database
  update-client [id]         modify a client
  delete-client [id]         delete a client

Invoicing:
  create-invoice [client]    record items and render an invoice
  list-invoices [client]     display invoice history
  view-invoice <id>          print an invoice record
  delete-invoice <id>        delete an invoice record
  generate-pdf <id>          re-render a stored invoice

System:
  config                     display the organization profile
  update-config              change the organization profile
  clear                      clear the screen
  exit                       quit
`)
}

func (s *shellSession) addClient() error {
	name := s.prompt.ask("Company name", "")
	address := s.prompt.ask("Address", "")

	client := models.Client{Name: name, Address: address}
	choice := s.prompt.askChoice("Select type", []string{"1. Domestic", "2. Foreign"})
	if choice == 0 {
		client.Jurisdiction = models.Domestic
		client.Currency = models.DomesticCurrency
		client.Country = "India"
		client.GSTID = s.prompt.ask("GSTIN/PAN", "")
	} else {
		client.Jurisdiction = models.Foreign
		client.Country = s.prompt.ask("Country", "")
		client.VATID = s.prompt.ask("VAT id", "")
		options := make([]string, len(models.ForeignCurrencies))
		for i, c := range models.ForeignCurrencies {
			options[i] = fmt.Sprintf("%d. %s", i+1, c)
		}
		client.Currency = models.ForeignCurrencies[s.prompt.askChoice("Currency", options)]
	}

	added, err := s.svc.AddClient(client)
	if err != nil {
		return err
	}
	fmt.Printf("Client %q added (%s)\n", added.Name, added.ID)
	return nil
}

func (s *shellSession) resolveClientArg(args []string) (models.Client, error) {
	if len(args) > 0 {
		return s.svc.FindClient(args[0])
	}
	printClientTable(s.svc.Clients())
	return s.svc.FindClient(s.prompt.ask("Client id", ""))
}

func (s *shellSession) updateClient(args []string) error {
	client, err := s.resolveClientArg(args)
	if err != nil {
		return err
	}

	var upd ledger.ClientUpdate
	if name := s.prompt.ask("Name", client.Name); name != client.Name {
		upd.Name = &name
	}
	if addr := s.prompt.ask("Address", client.Address); addr != client.Address {
		upd.Address = &addr
	}
	// Which identifier is editable follows the current jurisdiction tag.
	if client.Jurisdiction == models.Foreign {
		if vat := s.prompt.ask("VAT id", client.VATID); vat != client.VATID {
			upd.VATID = &vat
		}
	} else {
		if gst := s.prompt.ask("GSTIN", client.GSTID); gst != client.GSTID {
			upd.GSTID = &gst
		}
	}

	if _, err := s.svc.UpdateClient(client.ID, upd); err != nil {
		return err
	}
	fmt.Println("Client updated.")
	return nil
}

func (s *shellSession) deleteClient(args []string) error {
	client, err := s.resolveClientArg(args)
	if err != nil {
		return err
	}
	if !s.prompt.askYes(fmt.Sprintf("Delete client %q?", client.Name)) {
		fmt.Println("Aborted.")
		return nil
	}
	if err := s.svc.DeleteClient(client.ID); err != nil {
		return err
	}
	fmt.Println("Client deleted.")
	return nil
}

// createInvoice runs the interactive item-entry session: services until
// 'done', then an optional run of reimbursable expenses.
func (s *shellSession) createInvoice(args []string) error {
	client, err := s.resolveClientArg(args)
	if err != nil {
		return err
	}
	fmt.Printf("New invoice for %q (%s)\n", client.Name, client.Currency)

	var services, expenses []models.LineItem
	one := decimal.NewFromInt(1)

	for {
		desc := s.prompt.ask("Service description (or 'done')", "done")
		if strings.EqualFold(desc, "done") {
			break
		}
		rate := s.prompt.askDecimal(fmt.Sprintf("Rate (%s)", client.Currency), decimal.Zero)
		qtyLabel := "Quantity"
		if s.prompt.askYes("Hourly?") {
			qtyLabel = "Hours"
		}
		qty := s.prompt.askDecimal(qtyLabel, one)
		services = append(services, models.LineItem{
			Description: desc, Rate: rate, Quantity: qty, Category: models.Service,
		})
	}

	if s.prompt.askYes("Add reimbursements?") {
		for {
			desc := s.prompt.ask("Expense description (or 'done')", "done")
			if strings.EqualFold(desc, "done") {
				break
			}
			amount := s.prompt.askDecimal(fmt.Sprintf("Amount (%s)", client.Currency), decimal.Zero)
			expenses = append(expenses, models.LineItem{
				Description: desc, Rate: amount, Quantity: one, Category: models.Reimbursement,
			})
		}
	}

	inv, err := s.svc.CreateInvoice(client, services, expenses)
	if err != nil {
		return err
	}
	fmt.Printf("Invoice %s created, total %s %s\n", inv.ID, client.Currency, inv.Total.StringFixed(2))

	path, err := render.Render(client, inv, s.svc.Profile(), invoiceDir())
	if err != nil {
		return fmt.Errorf("invoice saved, but PDF generation failed: %w (retry with generate-pdf %s)", err, inv.ID)
	}
	fmt.Printf("PDF written: %s\n", path)
	return nil
}

func (s *shellSession) deleteInvoice(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: delete-invoice <invoice-id>")
	}
	inv, err := s.svc.GetInvoice(args[0])
	if err != nil {
		return err
	}
	if !s.prompt.askYes(fmt.Sprintf("Delete invoice %s?", inv.ID)) {
		fmt.Println("Aborted.")
		return nil
	}
	if err := s.svc.DeleteInvoice(inv.ID); err != nil {
		return err
	}
	fmt.Println("Invoice deleted.")
	return nil
}

func (s *shellSession) generatePDF(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: generate-pdf <invoice-id>")
	}
	inv, err := s.svc.GetInvoice(args[0])
	if err != nil {
		return err
	}
	client, err := s.svc.InvoiceClient(inv)
	if err != nil {
		return fmt.Errorf("cannot render %s: %w", inv.ID, err)
	}
	path, err := render.Render(client, inv, s.svc.Profile(), invoiceDir())
	if err != nil {
		return err
	}
	fmt.Printf("PDF written: %s\n", path)
	return nil
}

func (s *shellSession) updateConfig() error {
	p := s.svc.Profile()
	fmt.Println("Update configuration (press Enter to keep the current value)")

	p.Name = s.prompt.ask("Name", p.Name)
	p.PAN = s.prompt.ask("PAN", p.PAN)
	p.Address = s.prompt.ask("Address", p.Address)
	p.BankName = s.prompt.ask("Bank name", p.BankName)
	p.Branch = s.prompt.ask("Branch", p.Branch)
	p.BranchAddress = s.prompt.ask("Branch address", p.BranchAddress)
	p.AccountName = s.prompt.ask("Account name", p.AccountName)
	p.AccountNumber = s.prompt.ask("Account number", p.AccountNumber)
	p.IFSC = s.prompt.ask("IFSC", p.IFSC)
	p.SwiftBIC = s.prompt.ask("SWIFT/BIC", p.SwiftBIC)
	p.BranchCode = s.prompt.ask("Branch code", p.BranchCode)

	if err := s.svc.UpdateProfile(p); err != nil {
		return err
	}
	fmt.Println("Configuration updated.")
	return nil
}
