package core

// Currency pairs an ISO code with display metadata.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// SuggestedCategories is the free-form category suggestion list shown by the
// UI. Nothing validates against it; categories are plain strings.
var SuggestedCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Groceries",
	"Other",
}

// SupportedCurrencies lists the currencies the UI offers for expenses and
// budgets. Records may carry any 3-letter code.
var SupportedCurrencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
}
