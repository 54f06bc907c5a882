package dto

type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}
