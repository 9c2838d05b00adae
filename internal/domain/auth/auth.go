// Package auth covers the service-to-service token exchange. There are no
// user accounts: trusted callers hold a shared API key and trade it for a
// short-lived access token.
package auth

import (
	"errors"

	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

var (
	ErrInvalidAPIKey = errors.New("invalid API key")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

type TokenRequest struct {
	ClientName string `json:"client_name"`
	APIKey     string `json:"api_key"`
}

func (r *TokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientName) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_name",
			Message: "client name is required",
		})
	}
	if validator.IsEmpty(r.APIKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "api_key",
			Message: "API key is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}
