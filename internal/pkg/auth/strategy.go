package auth

import "time"

// TokenInfo is the identity carried by a parsed auth token.
type TokenInfo struct {
	UserID int64
	Role   string
}

type Strategy interface {
	IssueToken(userID int64, role string) (string, error)
	ParseToken(token string) (*TokenInfo, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
