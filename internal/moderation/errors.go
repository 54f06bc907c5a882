package moderation

import "errors"

var (
	ErrEmptyContent   = errors.New("content must be a non-empty string")
	ErrTooLong        = errors.New("content is too long")
	ErrSpamHeuristic  = errors.New("content looks like spam")
	ErrProhibitedWord = errors.New("content contains prohibited language")
)
