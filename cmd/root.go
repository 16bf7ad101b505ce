// Package cmd maps the command surface onto handlers. It does dispatch and
// flag parsing only; all domain rules live in internal/ledger and
// internal/render.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"khaata/internal/config"
	"khaata/internal/ledger"
	"khaata/internal/logger"
	"khaata/internal/store"
)

var version = "1.0.0"

// appConfig is set once by Execute before any command runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "khaata",
	Short: "khaata - a terminal invoicing ledger",
	Long: `khaata is a single-user invoicing ledger for the terminal. It keeps
clients and invoices as JSON records on local disk and renders each
invoice as a paginated PDF.

Run a subcommand directly, or start an interactive session with
'khaata shell'.`,
	Version: version,
}

// Execute runs the root command. Command failures are reported on stderr;
// the process exits non-zero so scripts can tell.
func Execute(cfg *config.Config) {
	appConfig = cfg

	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Debug().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService wires the record store to the ledger service. Collections are
// loaded into memory here, once per command invocation.
func newService() *ledger.Service {
	st := store.New(appConfig.DataDir, appConfig.ClientsFile, appConfig.InvoicesFile, appConfig.ProfileFile)
	return ledger.NewService(st)
}

// invoiceDir is where PDF artifacts land, relative to the data dir.
func invoiceDir() string {
	return filepath.Join(appConfig.DataDir, appConfig.InvoiceDir)
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
