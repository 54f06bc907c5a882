package thread

import (
	"sort"

	"github.com/portfolioapp/tweet-service/internal/model"
)

// Compose merges the admin replies targeting a tweet into its comment tree
// and returns the result. The stored comments and the reply records are never
// modified; composition is a read-time projection computed fresh on every
// call.
//
// Both the list endpoint and the detail endpoint go through this single
// function, so the two read paths cannot drift apart.
func Compose(tweet model.Tweet, replies []model.AdminReply) model.Tweet {
	var mine []model.AdminReply
	for _, r := range replies {
		if r.TweetID == tweet.ID {
			mine = append(mine, r)
		}
	}
	if len(mine) == 0 {
		return tweet
	}

	// Replies addressed to a comment are spliced first, in ascending order of
	// the target's position; replies to the tweet itself go after all of
	// them. Records tied on the same target apply in timestamp order.
	positions := make(map[string]int, len(mine))
	for _, r := range mine {
		positions[r.ID] = targetPosition(tweet.Comments, r)
	}
	sort.SliceStable(mine, func(i, j int) bool {
		pi, pj := positions[mine[i].ID], positions[mine[j].ID]
		toTweetI, toTweetJ := mine[i].TargetsTweet(), mine[j].TargetsTweet()
		if toTweetI != toTweetJ {
			return !toTweetI
		}
		if pi != pj {
			return pi < pj
		}
		return mine[i].Timestamp.Before(mine[j].Timestamp)
	})

	tweet.Comments = copyComments(tweet.Comments)
	for _, r := range mine {
		splice(&tweet, r)
	}

	return tweet
}

// ComposeAll merges every admin reply into the tweet it targets.
func ComposeAll(tweets []model.Tweet, replies []model.AdminReply) []model.Tweet {
	out := make([]model.Tweet, len(tweets))
	for i, t := range tweets {
		out[i] = Compose(t, replies)
	}
	return out
}

func splice(tweet *model.Tweet, r model.AdminReply) {
	if r.TargetsTweet() {
		tweet.Comments = append(tweet.Comments, adminComment(r))
		return
	}

	idx := targetPosition(tweet.Comments, r)
	if idx < 0 || idx >= len(tweet.Comments) {
		// stale or out-of-bounds reference: drop silently rather than fail
		// the whole read
		return
	}

	target := &tweet.Comments[idx]
	reply := adminComment(r)

	if r.ReplyID != nil && *r.ReplyID != "" {
		for i := range target.Replies {
			if target.Replies[i].ID == *r.ReplyID {
				target.Replies = append(target.Replies[:i+1], append([]model.Comment{reply}, target.Replies[i+1:]...)...)
				return
			}
		}
	}

	target.Replies = append(target.Replies, reply)
}

// targetPosition resolves the reply's target to a position in comments.
// Stable ids win over the legacy positional index. Returns -1 when the
// target cannot be resolved and len(comments) for replies to the tweet
// itself, so post-level replies naturally sort after everything.
func targetPosition(comments []model.Comment, r model.AdminReply) int {
	if r.TargetsTweet() {
		return len(comments)
	}
	if r.CommentID != nil && *r.CommentID != "" {
		for i := range comments {
			if comments[i].ID == *r.CommentID {
				return i
			}
		}
		return -1
	}
	return *r.CommentIndex
}

func adminComment(r model.AdminReply) model.Comment {
	return model.Comment{
		ID:        r.ID,
		Author:    r.Author,
		Content:   r.Content,
		Admin:     true,
		Timestamp: r.Timestamp,
	}
}

func copyComments(comments []model.Comment) []model.Comment {
	if comments == nil {
		return nil
	}
	out := make([]model.Comment, len(comments))
	copy(out, comments)
	for i := range out {
		out[i].Replies = copyComments(out[i].Replies)
	}
	return out
}
