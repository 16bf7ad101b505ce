package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"khaata/internal/render"
)

var generatePDFCmd = &cobra.Command{
	Use:   "generate-pdf <invoice-id>",
	Short: "Render the PDF artifact for a stored invoice",
	Long: `Re-render the PDF for an invoice from its stored record. Can be run
any number of times; the invoice data is never touched. Fails if the
client the invoice references has been deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runGeneratePDF,
}

func init() {
	rootCmd.AddCommand(generatePDFCmd)
}

func runGeneratePDF(cmd *cobra.Command, args []string) error {
	svc := newService()

	inv, err := svc.GetInvoice(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}
	client, err := svc.InvoiceClient(inv)
	if err != nil {
		return fmt.Errorf("cannot render %s: %w", inv.ID, err)
	}

	path, err := render.Render(client, inv, svc.Profile(), invoiceDir())
	if err != nil {
		return err
	}
	fmt.Printf("PDF written: %s\n", path)
	return nil
}
