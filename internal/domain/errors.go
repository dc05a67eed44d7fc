package domain

import "errors"

// 业务哨兵错误，transport 层统一映射为 code
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrSweetNotFound      = errors.New("sweet not found")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrNegativeStock      = errors.New("stock must not be negative")
)
