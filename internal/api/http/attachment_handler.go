package http

import (
	"net/http"
	"strconv"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/service"
)

type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentSvc: attachmentSvc}
}

type uploadURLRequest struct {
	OwnerKind   string `json:"owner_kind"`
	OwnerID     int32  `json:"owner_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type uploadURLResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
}

func (h *AttachmentHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req uploadURLRequest
	if !decodeBody(w, r, &req) {
		return
	}

	uploadURL, storageKey, err := h.attachmentSvc.UploadURL(r.Context(), actor, domain.OwnerKind(req.OwnerKind), req.OwnerID, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadURLResponse{UploadURL: uploadURL, StorageKey: storageKey})
}

type addAttachmentRequest struct {
	OwnerKind   string `json:"owner_kind"`
	OwnerID     int32  `json:"owner_id"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	URL         string `json:"url"`
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func (h *AttachmentHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req addAttachmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	att, err := h.attachmentSvc.Add(r.Context(), actor, domain.OwnerKind(req.OwnerKind), req.OwnerID, service.AttachmentMeta{
		Kind:        domain.AttachmentKind(req.Kind),
		Label:       req.Label,
		URL:         req.URL,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, att)
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.attachmentSvc.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	ownerKind := domain.OwnerKind(r.URL.Query().Get("owner_kind"))
	ownerID, ok := queryID(w, r, "owner_id")
	if !ok {
		return
	}

	atts, err := h.attachmentSvc.List(r.Context(), actor, ownerKind, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, atts)
}

// queryID parses a required query parameter as an int32 ID.
func queryID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "VALIDATION_ERROR", Message: "invalid " + name})
		return 0, false
	}
	return int32(id), true
}
