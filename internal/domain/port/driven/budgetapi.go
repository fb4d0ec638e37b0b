package driven

import (
	"context"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// AuthAPI covers the unauthenticated account endpoints.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates an account and returns the server's confirmation message.
	Register(ctx context.Context, fullName, email, password string) (string, error)
}

// NotificationAPI is the remote side of the notification store.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// CategoryAPI manages categories.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// TransactionAPI manages transactions and the monthly dashboard.
type TransactionAPI interface {
	ListTransactions(ctx context.Context, year, month int) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	Dashboard(ctx context.Context, year, month int) (*model.Dashboard, error)
}

// BudgetAPI manages monthly budgets.
type BudgetAPI interface {
	ListBudgets(ctx context.Context, year, month int) ([]model.Budget, error)
	SetBudget(ctx context.Context, req model.BudgetRequest) (*model.Budget, error)
}

// BudgetAPIClient is the full resource surface of the backend.
type BudgetAPIClient interface {
	AuthAPI
	NotificationAPI
	CategoryAPI
	TransactionAPI
	BudgetAPI
}
