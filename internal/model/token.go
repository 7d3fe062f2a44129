package model

// TokenManager issues and verifies bearer tokens whose subject is a username.
type TokenManager interface {
	Issue(subject string) (string, error)
	Parse(token string) (string, error)
}
