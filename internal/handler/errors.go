package handler

import "errors"

var (
	errNotAuthorized = errors.New("not authorized")
	errAdminRequired = errors.New("admin session required")
	errRateLimited   = errors.New("too many requests, slow down")
)
