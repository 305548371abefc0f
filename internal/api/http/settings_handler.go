package http

import (
	"net/http"

	"commonage-backend/internal/service"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

type landApplicationsSetting struct {
	Open bool `json:"open"`
}

func (h *SettingsHandler) GetLandApplications(w http.ResponseWriter, r *http.Request) {
	open, err := h.settingsSvc.LandApplicationsOpen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, landApplicationsSetting{Open: open})
}

func (h *SettingsHandler) SetLandApplications(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req landApplicationsSetting
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.settingsSvc.SetLandApplicationsOpen(r.Context(), actor, req.Open); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, landApplicationsSetting{Open: req.Open})
}
