package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"khaata/pkg/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the organization profile and bank details",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var updateConfigCmd = &cobra.Command{
	Use:   "update-config",
	Short: "Update the organization profile",
	Long: `Update the biller's own details. Only the flags you pass change
anything; everything else keeps its current value.`,
	Example: `  khaata update-config --name "Jane Doe" --pan ABCDE1234F --bank "State Bank" --ifsc SBIN0001234`,
	Args:    cobra.NoArgs,
	RunE:    runUpdateConfig,
}

func init() {
	rootCmd.AddCommand(configCmd, updateConfigCmd)

	updateConfigCmd.Flags().String("name", "", "Organization / biller name")
	updateConfigCmd.Flags().String("pan", "", "Tax id (PAN)")
	updateConfigCmd.Flags().String("address", "", "Postal address (use \\n for line breaks)")
	updateConfigCmd.Flags().String("bank", "", "Bank name")
	updateConfigCmd.Flags().String("branch", "", "Branch name")
	updateConfigCmd.Flags().String("branch-address", "", "Branch address")
	updateConfigCmd.Flags().String("account-name", "", "Beneficiary name")
	updateConfigCmd.Flags().String("account-number", "", "Account number")
	updateConfigCmd.Flags().String("ifsc", "", "Local routing code (IFSC)")
	updateConfigCmd.Flags().String("swift", "", "International routing code (SWIFT/BIC)")
	updateConfigCmd.Flags().String("branch-code", "", "Branch code")
}

func runConfig(cmd *cobra.Command, args []string) error {
	svc := newService()
	printProfileTable(svc.Profile())
	return nil
}

func printProfileTable(p models.Profile) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Value"})
	for _, kv := range [][2]string{
		{"Name", p.Name},
		{"PAN", p.PAN},
		{"Address", p.Address},
		{"Bank Name", p.BankName},
		{"Branch", p.Branch},
		{"Branch Address", p.BranchAddress},
		{"Account Name", p.AccountName},
		{"Account Number", p.AccountNumber},
		{"IFSC", p.IFSC},
		{"SWIFT/BIC", p.SwiftBIC},
		{"Branch Code", p.BranchCode},
	} {
		table.Append([]string{kv[0], kv[1]})
	}
	table.Render()
}

func runUpdateConfig(cmd *cobra.Command, args []string) error {
	svc := newService()
	p := svc.Profile()

	setIfChanged(cmd, "name", &p.Name)
	setIfChanged(cmd, "pan", &p.PAN)
	setIfChanged(cmd, "address", &p.Address)
	setIfChanged(cmd, "bank", &p.BankName)
	setIfChanged(cmd, "branch", &p.Branch)
	setIfChanged(cmd, "branch-address", &p.BranchAddress)
	setIfChanged(cmd, "account-name", &p.AccountName)
	setIfChanged(cmd, "account-number", &p.AccountNumber)
	setIfChanged(cmd, "ifsc", &p.IFSC)
	setIfChanged(cmd, "swift", &p.SwiftBIC)
	setIfChanged(cmd, "branch-code", &p.BranchCode)

	if err := svc.UpdateProfile(p); err != nil {
		return err
	}
	fmt.Println("Configuration updated.")
	return nil
}

func setIfChanged(cmd *cobra.Command, flag string, dst *string) {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		*dst = v
	}
}
