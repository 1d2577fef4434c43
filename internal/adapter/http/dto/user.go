package dto

// UserItem is the public view of a user; it never carries the password
// hash or relation lists.
type UserItem struct {
	ID        string  `json:"id"`
	Email     *string `json:"email,omitempty"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	PhotoURL  string  `json:"photo_url,omitempty"`
}

type SendFriendRequestRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
}

type RespondFriendRequestRequest struct {
	SenderID string `json:"sender_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
