package models

type RevenuePoint struct {
	Date    string `json:"date" yaml:"date"`
	Revenue int64  `json:"revenue" yaml:"revenue"`
	Expense int64  `json:"expense" yaml:"expense"`
}

type PackageShare struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

type Transaction struct {
	ID     string          `json:"id" yaml:"id"`
	Client string          `json:"client" yaml:"client"`
	Amount int64           `json:"amount" yaml:"amount"`
	Date   string          `json:"date" yaml:"date"`
	Type   TransactionType `json:"type" yaml:"type"`
	Method string          `json:"method" yaml:"method"`
}
