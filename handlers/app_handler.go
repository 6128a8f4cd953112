package handlers

import (
	"encoding/json"
	"net/http"

	"homehub/middleware"
	"homehub/models"
	"homehub/navigation"
	"homehub/services"
	"homehub/utils/errors"
)

// AppHandler tells the rendering client which screen graph to mount.
type AppHandler struct {
	controller *navigation.Controller
	tokens     *services.TokenIssuer
}

type StateResponse struct {
	State navigation.State `json:"state"`
	User  *models.Profile  `json:"user,omitempty"`
	Graph navigation.Graph `json:"graph"`
	// Token is a fresh JWT for the active session, so a client restored
	// from storage on relaunch can reach the authenticated routes.
	Token string `json:"token,omitempty"`
}

func NewAppHandler(controller *navigation.Controller, tokens *services.TokenIssuer) *AppHandler {
	return &AppHandler{controller: controller, tokens: tokens}
}

func (h *AppHandler) GetState(w http.ResponseWriter, r *http.Request) {
	resp := StateResponse{State: h.controller.State(), Graph: h.controller.Graph()}
	if user, ok := h.controller.CurrentUser(); ok {
		profile := user.Profile()
		resp.User = &profile
		token, err := h.tokens.Issue(user)
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
		resp.Token = token
	}
	middleware.WriteJSON(w, resp)
}

func (h *AppHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Destination navigation.Destination `json:"destination"`
		Params      map[string]string      `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Destination == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	route, err := h.controller.Navigate(input.Destination, input.Params)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, route)
}
