package utils

import "fmt"

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatRupee renders an amount for documents and mails.
func FormatRupee(amount float64) string {
	return "Rs. " + FormatMoney(amount)
}
