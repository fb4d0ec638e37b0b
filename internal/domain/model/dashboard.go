package model

import "encoding/json"

// Dashboard summarizes one month of activity.
type Dashboard struct {
	TotalIncome        json.Number        `json:"totalIncome"`
	TotalExpense       json.Number        `json:"totalExpense"`
	NetBalance         json.Number        `json:"netBalance"`
	SpendingByCategory []CategorySpending `json:"spendingByCategory"`
	BudgetStatus       []BudgetStatus     `json:"budgetStatus"`
}

// CategorySpending is the total spent in one category.
type CategorySpending struct {
	CategoryName string      `json:"categoryName"`
	Total        json.Number `json:"total"`
}

// BudgetStatus compares a category's budget with what was spent.
type BudgetStatus struct {
	CategoryName string      `json:"categoryName"`
	Budgeted     json.Number `json:"budgeted"`
	Spent        json.Number `json:"spent"`
	Remaining    json.Number `json:"remaining"`
}
