package dto

type NoteItem struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"owner_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Color     *string  `json:"color"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" binding:"omitempty,max=50,dive,max=64"`
	Color   *string  `json:"color" binding:"omitempty,max=32"`
}

type UpdateNoteRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags" binding:"omitempty,max=50,dive,max=64"`
	Color   *string  `json:"color" binding:"omitempty,max=32"`
}
