// Package credentials holds the in-memory credential store and the bcrypt
// helpers shared by every credential backend.
package credentials

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// Hash returns the bcrypt hash of password at the given cost. Cost 0 selects
// bcrypt.DefaultCost.
func Hash(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// Compare reports whether password matches hash. A nil hash stands for an
// unknown user: the comparison still runs against a dummy hash so both cases
// take the same time, and the result is always false.
func Compare(hash []byte, password string) (bool, error) {
	known := hash != nil
	if !known {
		hash = dummy()
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	switch {
	case err == nil:
		return known, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

func dummy() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("askdesk-unknown-user"), bcrypt.DefaultCost)
	})
	return dummyHash
}
