// Package identity is the contract with third-party sign-in providers.
package identity

import (
	"context"

	"github.com/pkg/errors"
)

// ErrAuthFailed is returned (wrapped) by providers when the visitor could not be identified.
var ErrAuthFailed = errors.New("authentication failed")

// Identity is what a provider tells about the visitor.
type Identity struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Verified bool   `json:"email_verified"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
}

type Provider interface {
	// AuthCodeURL returns the consent page URL; state is echoed back to the callback.
	AuthCodeURL(state string) string
	// Exchange trades the callback code for the visitor's identity.
	Exchange(ctx context.Context, code string) (Identity, error)
}
