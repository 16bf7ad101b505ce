package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"khaata/internal/ledger"
	"khaata/pkg/models"
)

var addClientCmd = &cobra.Command{
	Use:   "add-client",
	Short: "Register a new client",
	Example: `  # Domestic client (bills in INR)
  khaata add-client --name "Sharma & Co" --address "12 MG Road, Pune" --type domestic --gst 27AAAAA0000A1Z5

  # Foreign client
  khaata add-client --name "Acme" --address "1 Main St" --type foreign --country USA --vat VAT123 --currency USD`,
	Args: cobra.NoArgs,
	RunE: runAddClient,
}

var listClientsCmd = &cobra.Command{
	Use:   "list-clients",
	Short: "Display the client database",
	Args:  cobra.NoArgs,
	RunE:  runListClients,
}

var updateClientCmd = &cobra.Command{
	Use:   "update-client <client-id>",
	Short: "Modify fields of an existing client",
	Long: `Update a client. Only the flags you pass change anything. Which
tax-identifier flag applies follows the client's jurisdiction: --gst for
domestic clients, --vat for foreign ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdateClient,
}

var deleteClientCmd = &cobra.Command{
	Use:   "delete-client <client-id>",
	Short: "Delete a client",
	Long: `Delete a client. Existing invoices for the client are kept and stay
viewable, but generating a PDF for them will fail until the reference is
resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteClient,
}

func init() {
	rootCmd.AddCommand(addClientCmd, listClientsCmd, updateClientCmd, deleteClientCmd)

	addClientCmd.Flags().String("name", "", "Company name (required)")
	addClientCmd.Flags().String("address", "", "Postal address (required)")
	addClientCmd.Flags().String("type", "domestic", "Client type: domestic or foreign")
	addClientCmd.Flags().String("country", "", "Country (required for foreign clients)")
	addClientCmd.Flags().String("gst", "", "GSTIN/PAN (domestic clients)")
	addClientCmd.Flags().String("vat", "", "VAT id (foreign clients)")
	addClientCmd.Flags().String("currency", "", "Billing currency (foreign clients: USD, EUR, GBP, JPY, CAD, AUD)")
	addClientCmd.MarkFlagRequired("name")
	addClientCmd.MarkFlagRequired("address")

	updateClientCmd.Flags().String("name", "", "New name")
	updateClientCmd.Flags().String("address", "", "New address")
	updateClientCmd.Flags().String("country", "", "New country")
	updateClientCmd.Flags().String("gst", "", "New GSTIN (domestic only)")
	updateClientCmd.Flags().String("vat", "", "New VAT id (foreign only)")

	deleteClientCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runAddClient(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	address, _ := cmd.Flags().GetString("address")
	typ, _ := cmd.Flags().GetString("type")
	country, _ := cmd.Flags().GetString("country")
	gst, _ := cmd.Flags().GetString("gst")
	vat, _ := cmd.Flags().GetString("vat")
	currency, _ := cmd.Flags().GetString("currency")

	client := models.Client{
		Name:    name,
		Address: address,
		Country: country,
		GSTID:   gst,
		VATID:   vat,
	}
	switch strings.ToLower(typ) {
	case "domestic", "indian":
		client.Jurisdiction = models.Domestic
		client.Currency = models.DomesticCurrency
	case "foreign", "international":
		client.Jurisdiction = models.Foreign
		client.Currency = strings.ToUpper(currency)
	default:
		return fmt.Errorf("unknown client type %q (use domestic or foreign)", typ)
	}

	svc := newService()
	added, err := svc.AddClient(client)
	if err != nil {
		return err
	}
	fmt.Printf("Client %q added (%s)\n", added.Name, added.ID)
	return nil
}

func runListClients(cmd *cobra.Command, args []string) error {
	svc := newService()
	printClientTable(svc.Clients())
	return nil
}

func printClientTable(clients []models.Client) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Type", "Currency"})
	for _, c := range clients {
		table.Append([]string{c.ID, c.Name, string(c.Jurisdiction), c.Currency})
	}
	table.Render()
}

func runUpdateClient(cmd *cobra.Command, args []string) error {
	var upd ledger.ClientUpdate
	flagPtr(cmd, "name", &upd.Name)
	flagPtr(cmd, "address", &upd.Address)
	flagPtr(cmd, "country", &upd.Country)
	flagPtr(cmd, "gst", &upd.GSTID)
	flagPtr(cmd, "vat", &upd.VATID)

	svc := newService()
	client, err := svc.UpdateClient(args[0], upd)
	if err != nil {
		return err
	}
	fmt.Printf("Client %q updated\n", client.Name)
	return nil
}

func runDeleteClient(cmd *cobra.Command, args []string) error {
	svc := newService()
	client, err := svc.GetClient(args[0])
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !confirm(fmt.Sprintf("Delete client %q?", client.Name)) {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := svc.DeleteClient(client.ID); err != nil {
		return err
	}
	fmt.Printf("Client %q deleted\n", client.Name)
	return nil
}

// flagPtr copies a string flag into a *string only when the user set it,
// so an update never clobbers fields with empty defaults.
func flagPtr(cmd *cobra.Command, name string, dst **string) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		*dst = &v
	}
}
