package api

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// ListCategories returns all categories of the signed-in user.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.call(ctx, http.MethodGet, "/categories", driven.RequestOptions{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns it as stored by the server.
func (c *Client) CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.call(ctx, http.MethodPost, "/categories", driven.RequestOptions{Body: req}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, idPath("/categories", id), driven.RequestOptions{}, nil)
}
