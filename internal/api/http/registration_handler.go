package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/service"
)

type RegistrationHandler struct {
	registrationSvc service.RegistrationService
	attachmentSvc   service.AttachmentService
}

func NewRegistrationHandler(registrationSvc service.RegistrationService, attachmentSvc service.AttachmentService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationSvc: registrationSvc,
		attachmentSvc:   attachmentSvc,
	}
}

type createRegistrationRequest struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
}

func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req createRegistrationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reg, err := h.registrationSvc.Register(r.Context(), actor, req.FullName, req.NationalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *RegistrationHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	reg, err := h.registrationSvc.GetMine(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RegistrationHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	checklist, err := h.attachmentSvc.Checklist(r.Context(), actor, domain.OwnerKindCommoner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	status := domain.RegistrationStatus(r.URL.Query().Get("status"))

	regs, err := h.registrationSvc.List(r.Context(), actor, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

type registrationDecisionRequest struct {
	Decision        string `json:"decision"`
	Note            string `json:"note"`
	RejectionReason string `json:"rejection_reason"`
}

func (h *RegistrationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req registrationDecisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reg, err := h.registrationSvc.Decide(r.Context(), actor, id, domain.RegistrationDecision(req.Decision), req.Note, req.RejectionReason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// pathID parses the {name} route variable as an int32 ID.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "VALIDATION_ERROR", Message: "invalid " + name})
		return 0, false
	}
	return int32(id), true
}
