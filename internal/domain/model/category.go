package model

// Category groups transactions and budgets.
type Category struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// CategoryRequest is the payload for creating a category.
type CategoryRequest struct {
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}
