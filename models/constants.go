package models

// Months accepted on expense and payment periods.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ValidMonth reports whether the string names a month.
func ValidMonth(month string) bool {
	for _, m := range Months {
		if m == month {
			return true
		}
	}
	return false
}

// Currency codes offered by the team form.
var Currencies = []string{"USD", "CAD", "EUR", "GBP", "AUD", "JPY"}

func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// PaymentMethods accepted on teams and payments.
var PaymentMethods = []string{"zelle", "venmo", "paypal", "cash", "bank_transfer", "other"}

func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Year bounds accepted on expense and payment periods.
const (
	MinYear = 2020
	MaxYear = 2030
)
