package model

import "time"

// AdminReply is a free-standing record of the admin replying to a user tweet,
// one of its comments, or a nested reply. It is never merged into the tweet's
// stored comments; composition happens at read time.
//
// CommentID is the stable reference and is resolved from the positional index
// at write time. CommentIndex survives for records written before stable ids
// existed; the composer falls back to it when CommentID is empty.
type AdminReply struct {
	ID           string    `json:"id"`
	TweetID      string    `json:"tweet_id"`
	CommentID    *string   `json:"comment_id,omitempty"`
	CommentIndex *int      `json:"comment_index,omitempty"`
	ReplyID      *string   `json:"reply_id,omitempty"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
}

// TargetsTweet reports whether the reply addresses the tweet itself rather
// than one of its comments.
func (r *AdminReply) TargetsTweet() bool {
	return (r.CommentID == nil || *r.CommentID == "") && r.CommentIndex == nil
}
