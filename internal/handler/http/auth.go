package http

import (
	"encoding/json"
	"net/http"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService jwt.Service
	apiKeyHash string
}

func NewAuthHandler(jwtService jwt.Service, apiKeyHash string) AuthHandler {
	return &authHandlerImpl{
		jwtService: jwtService,
		apiKeyHash: apiKeyHash,
	}
}

// Token exchanges the shared API key for a short-lived access token. Only the
// bcrypt hash of the key lives in configuration.
func (h *authHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	var req auth.TokenRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.apiKeyHash), []byte(req.APIKey)); err != nil {
		response.HandleError(w, auth.ErrInvalidAPIKey)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.ClientName)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
