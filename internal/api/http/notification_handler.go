package http

import (
	"net/http"
	"strconv"

	"commonage-backend/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

type notificationListResponse struct {
	Notifications any   `json:"notifications"`
	TotalCount    int32 `json:"total_count"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	notes, total, err := h.notificationSvc.GetNotifications(r.Context(), actor.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, TotalCount: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkAsRead(r.Context(), actor.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
