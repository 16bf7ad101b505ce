package models

// Profile is the biller's own identity and bank details. Exactly one
// instance exists per process; it is loaded at startup and only changed
// through an explicit update.
type Profile struct {
	Name          string `json:"name"`
	PAN           string `json:"pan"`
	Address       string `json:"address"` // may span multiple lines
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	BranchAddress string `json:"branch_address"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	SwiftBIC      string `json:"swift_bic"`
	BranchCode    string `json:"branch_code"`
}

// DefaultProfile returns the placeholder profile used until the user runs
// update-config.
func DefaultProfile() Profile {
	return Profile{
		Name:          "YOUR NAME",
		PAN:           "YOUR PAN",
		Address:       "YOUR ADDRESS",
		BankName:      "YOUR BANK",
		Branch:        "BRANCH",
		BranchAddress: "BRANCH ADDRESS",
		AccountName:   "ACCOUNT HOLDER",
		AccountNumber: "0000000000",
		IFSC:          "IFSC0000000",
		SwiftBIC:      "SWIFTBIC",
		BranchCode:    "000",
	}
}
