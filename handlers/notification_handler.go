package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"homehub/middleware"
	"homehub/models"
	"homehub/services"
	"homehub/utils/errors"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

type NotificationView struct {
	models.Notification
	TimeAgo string `json:"time_ago"`
}

type NotificationsResponse struct {
	Notifications []NotificationView `json:"notifications"`
	Count         int                `json:"count"`
	Unread        int                `json:"unread"`
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	now := h.notifications.Now()
	items := h.notifications.List()
	views := make([]NotificationView, len(items))
	for i, n := range items {
		views[i] = NotificationView{Notification: n, TimeAgo: services.TimeAgo(n.TimeSent, now)}
	}
	middleware.WriteJSON(w, NotificationsResponse{Notifications: views, Count: len(views), Unread: h.notifications.Unread()})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Delete(mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.notifications.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) Mute(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Sender string `json:"sender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if err := h.notifications.Mute(input.Sender); err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, map[string]string{"message": "You have muted notifications from this sender."})
}
