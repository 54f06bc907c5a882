package dto

import "github.com/portfolioapp/tweet-service/internal/model"

type TweetsPage struct {
	Success bool          `json:"success"`
	Tweets  []model.Tweet `json:"tweets"`
	Total   int64         `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}
