package api

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// ListBudgets returns the budgets set for the given month.
func (c *Client) ListBudgets(ctx context.Context, year, month int) ([]model.Budget, error) {
	var budgets []model.Budget
	opts := driven.RequestOptions{Params: periodParams(year, month)}
	if err := c.call(ctx, http.MethodGet, "/budgets", opts, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// SetBudget creates or replaces the budget for a category and month.
func (c *Client) SetBudget(ctx context.Context, req model.BudgetRequest) (*model.Budget, error) {
	var budget model.Budget
	if err := c.call(ctx, http.MethodPost, "/budgets", driven.RequestOptions{Body: req}, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}
