package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"khaata/internal/ledger"
	"khaata/internal/logger"
	"khaata/internal/render"
	"khaata/pkg/models"
)

var createInvoiceCmd = &cobra.Command{
	Use:   "create-invoice [client-hint]",
	Short: "Create an invoice and render its PDF",
	Long: `Create an invoice for a client. The client is resolved from the hint:
an exact client id first, then a case-insensitive substring of the name.

Line items are passed as repeatable flags:
  --service "description|rate|qty"   (qty defaults to 1)
  --expense "description|amount"     (reimbursable, quantity is always 1)

An invoice needs at least one item. The PDF is rendered right after the
record is saved; a rendering failure leaves the saved invoice intact.`,
	Example: `  khaata create-invoice acme \
    --service "Design work|100|5" \
    --service "Code review|80" \
    --expense "Travel|250"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreateInvoice,
}

var listInvoicesCmd = &cobra.Command{
	Use:   "list-invoices [client-filter]",
	Short: "Display invoice history, optionally filtered by client name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runListInvoices,
}

var viewInvoiceCmd = &cobra.Command{
	Use:   "view-invoice <invoice-id>",
	Short: "Print the full invoice record",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewInvoice,
}

var deleteInvoiceCmd = &cobra.Command{
	Use:   "delete-invoice <invoice-id>",
	Short: "Delete an invoice record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteInvoice,
}

func init() {
	rootCmd.AddCommand(createInvoiceCmd, listInvoicesCmd, viewInvoiceCmd, deleteInvoiceCmd)

	createInvoiceCmd.Flags().StringArray("service", nil, `Service item "description|rate|qty"`)
	createInvoiceCmd.Flags().StringArray("expense", nil, `Reimbursement item "description|amount"`)
	createInvoiceCmd.Flags().String("client", "", "Client id or name (alternative to the positional hint)")

	deleteInvoiceCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runCreateInvoice(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoice")

	hint, _ := cmd.Flags().GetString("client")
	if len(args) > 0 {
		hint = args[0]
	}
	if hint == "" {
		return fmt.Errorf("no client given: pass a client id or name")
	}

	serviceSpecs, _ := cmd.Flags().GetStringArray("service")
	expenseSpecs, _ := cmd.Flags().GetStringArray("expense")

	services, err := parseServiceItems(serviceSpecs)
	if err != nil {
		return err
	}
	expenses, err := parseExpenseItems(expenseSpecs)
	if err != nil {
		return err
	}

	svc := newService()
	client, err := svc.FindClient(hint)
	if err != nil {
		return fmt.Errorf("%w: %q", err, hint)
	}

	inv, err := svc.CreateInvoice(client, services, expenses)
	if err != nil {
		return err
	}
	fmt.Printf("Invoice %s created for %q, total %s %s\n",
		inv.ID, client.Name, client.Currency, inv.Total.StringFixed(2))

	// Rendering is decoupled from persistence: a failure here is reported
	// but the invoice record above stays saved.
	path, err := render.Render(client, inv, svc.Profile(), invoiceDir())
	if err != nil {
		log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("PDF generation failed, invoice record kept")
		return fmt.Errorf("invoice saved, but PDF generation failed: %w (retry with generate-pdf %s)", err, inv.ID)
	}
	fmt.Printf("PDF written: %s\n", path)
	return nil
}

// parseServiceItems parses "description|rate|qty" specs. The qty part is
// optional and defaults to 1 (flat-fee services).
func parseServiceItems(specs []string) ([]models.LineItem, error) {
	var items []models.LineItem
	for _, spec := range specs {
		parts := strings.Split(spec, "|")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("bad --service %q: want \"description|rate|qty\"", spec)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("bad rate in --service %q: %v", spec, err)
		}
		qty := decimal.NewFromInt(1)
		if len(parts) == 3 {
			if qty, err = decimal.NewFromString(strings.TrimSpace(parts[2])); err != nil {
				return nil, fmt.Errorf("bad quantity in --service %q: %v", spec, err)
			}
		}
		items = append(items, models.LineItem{
			Description: strings.TrimSpace(parts[0]),
			Rate:        rate,
			Quantity:    qty,
			Category:    models.Service,
		})
	}
	return items, nil
}

// parseExpenseItems parses "description|amount" specs.
func parseExpenseItems(specs []string) ([]models.LineItem, error) {
	var items []models.LineItem
	for _, spec := range specs {
		parts := strings.Split(spec, "|")
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad --expense %q: want \"description|amount\"", spec)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("bad amount in --expense %q: %v", spec, err)
		}
		items = append(items, models.LineItem{
			Description: strings.TrimSpace(parts[0]),
			Rate:        amount,
			Quantity:    decimal.NewFromInt(1),
			Category:    models.Reimbursement,
		})
	}
	return items, nil
}

func runListInvoices(cmd *cobra.Command, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}
	return runListInvoicesFor(newService(), filter)
}

func runListInvoicesFor(svc *ledger.Service, filter string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Inv #", "Date", "Client", "Total"})
	for _, inv := range svc.Invoices(filter) {
		table.Append([]string{inv.ID, inv.Date, inv.ClientName, inv.Total.StringFixed(2)})
	}
	table.Render()
	return nil
}

func runViewInvoice(cmd *cobra.Command, args []string) error {
	return viewInvoiceFor(newService(), args[0])
}

func viewInvoiceFor(svc *ledger.Service, id string) error {
	inv, err := svc.GetInvoice(id)
	if err != nil {
		return fmt.Errorf("%w: %q", err, id)
	}

	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runDeleteInvoice(cmd *cobra.Command, args []string) error {
	svc := newService()
	inv, err := svc.GetInvoice(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !confirm(fmt.Sprintf("Delete invoice %s?", inv.ID)) {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := svc.DeleteInvoice(inv.ID); err != nil {
		return err
	}
	fmt.Printf("Invoice %s deleted\n", inv.ID)
	return nil
}
