package api

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// ListTransactions returns the transactions recorded in the given month.
func (c *Client) ListTransactions(ctx context.Context, year, month int) ([]model.Transaction, error) {
	var txs []model.Transaction
	opts := driven.RequestOptions{Params: periodParams(year, month)}
	if err := c.call(ctx, http.MethodGet, "/transactions", opts, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.call(ctx, http.MethodPost, "/transactions", driven.RequestOptions{Body: req}, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, idPath("/transactions", id), driven.RequestOptions{}, nil)
}

// Dashboard returns the income/expense summary for the given month.
func (c *Client) Dashboard(ctx context.Context, year, month int) (*model.Dashboard, error) {
	var dash model.Dashboard
	opts := driven.RequestOptions{Params: periodParams(year, month)}
	if err := c.call(ctx, http.MethodGet, "/transactions/dashboard", opts, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
