package http

import (
	"net/http"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/service"
)

type ApplicationHandler struct {
	applicationSvc service.ApplicationService
	attachmentSvc  service.AttachmentService
}

func NewApplicationHandler(applicationSvc service.ApplicationService, attachmentSvc service.AttachmentService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationSvc: applicationSvc,
		attachmentSvc:  attachmentSvc,
	}
}

type startApplicationRequest struct {
	Purpose        string `json:"purpose"`
	AlreadyHasLand bool   `json:"already_has_land"`
}

func (h *ApplicationHandler) Start(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req startApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.applicationSvc.Start(r.Context(), actor, req.Purpose, req.AlreadyHasLand)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	app, err := h.applicationSvc.GetMine(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.applicationSvc.Submit(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	checklist, err := h.attachmentSvc.Checklist(r.Context(), actor, domain.OwnerKindApplication, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (h *ApplicationHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	logs, err := h.applicationSvc.History(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))

	apps, err := h.applicationSvc.List(r.Context(), actor, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

type applicationDecisionRequest struct {
	Decision        string  `json:"decision"`
	AdminNote       string  `json:"admin_note"`
	RejectionReason string  `json:"rejection_reason"`
	LotNumber       *string `json:"lot_number"`
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req applicationDecisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.applicationSvc.Decide(r.Context(), actor, id, domain.ApplicationDecision(req.Decision), req.AdminNote, req.RejectionReason, req.LotNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type reopenRequest struct {
	Note string `json:"note"`
}

func (h *ApplicationHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req reopenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.applicationSvc.Reopen(r.Context(), actor, id, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Events(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	events, err := h.applicationSvc.Events(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
