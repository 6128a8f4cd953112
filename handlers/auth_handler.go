package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"homehub/middleware"
	"homehub/models"
	"homehub/navigation"
	"homehub/services"
	"homehub/utils/errors"
)

type AuthHandler struct {
	controller *navigation.Controller
	tokens     *services.TokenIssuer
}

type AuthResponse struct {
	User  models.Profile   `json:"user"`
	Token string           `json:"token"`
	State navigation.State `json:"state"`
}

func NewAuthHandler(controller *navigation.Controller, tokens *services.TokenIssuer) *AuthHandler {
	return &AuthHandler{controller: controller, tokens: tokens}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	user, err := h.controller.Signup(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	h.respond(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	user, err := h.controller.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	h.respond(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	zap.L().Info("Logout requested", zap.String("user_id", userID))
	if err := h.controller.Logout(r.Context()); err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, map[string]any{"state": h.controller.State()})
}

func (h *AuthHandler) respond(w http.ResponseWriter, user models.User) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, AuthResponse{User: user.Profile(), Token: token, State: h.controller.State()})
}
