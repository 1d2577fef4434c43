package client

import "time"

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

type Task struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	DueDate           *string   `json:"due_date"`
	DocumentationLink *string   `json:"documentation_link"`
	Tags              []string  `json:"tags"`
	SharedWithPromo   bool      `json:"shared_with_promo"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewTask is the create payload. Empty fields take the server defaults.
type NewTask struct {
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	Status            string   `json:"status,omitempty"`
	Priority          string   `json:"priority,omitempty"`
	DueDate           string   `json:"due_date,omitempty"`
	DocumentationLink string   `json:"documentation_link,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewNote struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// Fields holds the changed fields of an update keyed by their JSON name.
// A nil value clears an optional field.
type Fields map[string]any

type User struct {
	ID        string  `json:"id"`
	Email     *string `json:"email,omitempty"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	PhotoURL  string  `json:"photo_url,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type message struct {
	Message string `json:"message"`
}
