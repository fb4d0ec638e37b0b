package model

// CategoryType classifies a category as a source of income or an expense.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Valid reports whether t is one of the category types the backend accepts.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// NotificationType identifies what produced a notification on the backend.
type NotificationType string

const (
	NotificationTypeBudgetThreshold NotificationType = "BUDGET_THRESHOLD"
)

// Severity is the visual weight of a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)
