package models

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
