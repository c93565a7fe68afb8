package service

import "errors"

// 服务层的封闭错误集合；handler 用 errors.Is 映射到 HTTP 状态码
var (
	ErrEmptyText = errors.New("text is required")
	ErrNotFound  = errors.New("post not found")
	ErrForbidden = errors.New("user not authorized")

	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post has not yet been liked")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrSigningKey   = errors.New("signing key is not configured")
	ErrInvalidToken = errors.New("token is not valid")
	ErrExpiredToken = errors.New("token has expired")
)
