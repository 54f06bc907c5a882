package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrTweetNotFound     = errors.New("tweet not found")
	ErrNotOwner          = errors.New("not allowed to modify this tweet")
	ErrEditWindowExpired = errors.New("tweets can only be edited within an hour of posting")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrNotSubscribed     = errors.New("email is not subscribed")
)
