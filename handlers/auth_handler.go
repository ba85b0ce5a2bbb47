package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/services"
)

// TokenConfig holds everything needed to sign access tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

type AuthHandler struct {
	authService services.AuthService
	tokens      TokenConfig
	logger      *slog.Logger
}

func NewAuthHandler(authService services.AuthService, tokens TokenConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		logger:      logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) RegisterCaptain(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterCaptainInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.RegisterCaptain(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.RegisterPlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) RegisterReferee(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterRefereeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.RegisterReferee(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	tokenString, err := h.signToken(user)
	if err != nil {
		serverErrorResponse(w, r, h.logger, err)
		return
	}

	data := map[string]interface{}{
		"token": tokenString,
		"user":  user,
	}
	if err := writeJSON(w, status, data, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *AuthHandler) signToken(user *models.User) (string, error) {
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = string(role.Name)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"roles":   roles,
		"iss":     h.tokens.Issuer,
		"aud":     h.tokens.Audience,
		"iat":     now.Unix(),
		"exp":     now.Add(h.tokens.Expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.tokens.Secret))
}
