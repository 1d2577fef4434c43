package dto

type TaskItem struct {
	ID                string   `json:"id"`
	OwnerID           string   `json:"owner_id"`
	Title             string   `json:"title"`
	Description       *string  `json:"description"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	DueDate           *string  `json:"due_date"`
	DocumentationLink *string  `json:"documentation_link"`
	Tags              []string `json:"tags"`
	SharedWithPromo   bool     `json:"shared_with_promo"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// CreateTaskRequest has no owner_id or shared_with_promo: both are decided
// by the server and silently dropped from the body.
type CreateTaskRequest struct {
	Title             string   `json:"title"`
	Description       *string  `json:"description" binding:"omitempty,max=65535"`
	Status            *string  `json:"status"`
	Priority          *string  `json:"priority"`
	DueDate           *string  `json:"due_date"`
	DocumentationLink *string  `json:"documentation_link" binding:"omitempty,max=2048"`
	Tags              []string `json:"tags" binding:"omitempty,max=50,dive,max=64"`
}

type UpdateTaskRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description" binding:"omitempty,max=65535"`
	Status            *string  `json:"status"`
	Priority          *string  `json:"priority"`
	DueDate           *string  `json:"due_date"`
	DocumentationLink *string  `json:"documentation_link" binding:"omitempty,max=2048"`
	Tags              []string `json:"tags" binding:"omitempty,max=50,dive,max=64"`
	SharedWithPromo   *bool    `json:"shared_with_promo"`
}
