package model

import "encoding/json"

// Budget is a spending limit for an expense category in one month.
type Budget struct {
	ID           int64       `json:"id"`
	CategoryID   int64       `json:"categoryId"`
	CategoryName string      `json:"categoryName"`
	Amount       json.Number `json:"amount"`
	Month        string      `json:"month"`
}

// BudgetRequest sets (creates or replaces) the budget for a category and month.
type BudgetRequest struct {
	CategoryID int64       `json:"categoryId"`
	Amount     json.Number `json:"amount"`
	Year       int         `json:"year"`
	Month      int         `json:"month"`
}
