package handler

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/api/middleware"
	"fintrack/internal/app/service"
	"fintrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the login endpoint and the protected profile view on
// the root router, mirroring the upstream paths.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Post("/token", h.login)
	r.With(authn).Get("/users/profile", h.profile)
}

// login handles POST /token. It accepts OAuth2-style form fields
// (username/password) as well as a JSON body with the same keys, and returns
// {access_token, token_type: "bearer"}.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentialsFromRequest(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// profile handles GET /users/profile and returns the resolved Principal.
func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, principal)
}

func credentialsFromRequest(r *http.Request) (string, string, error) {
	if r.Header.Get("Content-Type") == "application/json" {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", err
		}
		return body.Username, body.Password, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return r.PostFormValue("username"), r.PostFormValue("password"), nil
}
