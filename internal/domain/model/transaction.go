package model

import "encoding/json"

// Transaction is a single income or expense entry. Amounts stay decimal
// (json.Number) end to end so no precision is lost to float64.
type Transaction struct {
	ID              int64        `json:"id"`
	CategoryID      int64        `json:"categoryId"`
	CategoryName    string       `json:"categoryName"`
	CategoryType    CategoryType `json:"categoryType"`
	Amount          json.Number  `json:"amount"`
	Description     string       `json:"description"`
	TransactionDate string       `json:"transactionDate"`
}

// TransactionRequest is the payload for recording a transaction.
// TransactionDate uses the YYYY-MM-DD layout.
type TransactionRequest struct {
	CategoryID      int64       `json:"categoryId"`
	Amount          json.Number `json:"amount"`
	Description     string      `json:"description,omitempty"`
	TransactionDate string      `json:"transactionDate"`
}

// DateLayout is the wire layout for transaction dates.
const DateLayout = "2006-01-02"
