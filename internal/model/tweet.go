package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	AdminIDPrefix = "admin-"
	UserIDPrefix  = "user-"
)

type Tweet struct {
	ID          string     `json:"id"`
	Author      string     `json:"author"`
	Handle      string     `json:"handle"`
	Content     string     `json:"content"`
	AvatarImage string     `json:"avatar_image,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Likes       int64      `json:"likes"`
	Comments    []Comment  `json:"comments"`
	Edited      bool       `json:"edited"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (t *Tweet) IsAdmin() bool {
	return strings.HasPrefix(t.ID, AdminIDPrefix)
}

// NewTweetID builds an id in the "<origin>-<unix ms>" form the collections are
// discriminated by.
func NewTweetID(admin bool, now time.Time) string {
	prefix := UserIDPrefix
	if admin {
		prefix = AdminIDPrefix
	}
	return fmt.Sprintf("%s%d", prefix, now.UnixMilli())
}
