package ports

import (
	"time"

	"tasktracker/internal/core/domain"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(principal domain.Principal) (token string, expiresAt time.Time, err error)
	Verify(token string) (domain.Principal, error)
}
