package dto

type CreateTweetRequest struct {
	Content     string `json:"content" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Handle      string `json:"handle" binding:"required"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
	AvatarImage string `json:"avatarImage"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateTweetRequest drives the PUT path. With IsAdminReply set, the last
// element of Comments is the admin's reply payload and is persisted as a
// free-standing record; otherwise it is appended as a regular user comment.
type UpdateTweetRequest struct {
	IsAdminReply bool             `json:"isAdminReply"`
	CommentIndex *int             `json:"commentIndex"`
	ReplyID      *string          `json:"replyId"`
	Comments     []CommentPayload `json:"comments" binding:"required,min=1"`
}

type CommentPayload struct {
	Author  string `json:"author" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type EditTweetRequest struct {
	Content string `json:"content" binding:"required"`
	Handle  string `json:"handle"`
	IsAdmin bool   `json:"isAdmin"`
}

type DeleteTweetRequest struct {
	IsAdmin bool `json:"isAdmin"`
}
