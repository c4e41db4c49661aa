package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	"github.com/peoplepulse/perform-backend-go/internal/handler/http/response"
	draftService "github.com/peoplepulse/perform-backend-go/internal/service/draft"
)

// DraftHandler defines the draft handler interface
type DraftHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type draftHandlerImpl struct {
	drafts *draftService.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *draftService.DraftService) DraftHandler {
	return &draftHandlerImpl{drafts: drafts}
}

// Get returns the stored draft for a key, or an empty body when none
// exists.
func (h *draftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	key := chi.URLParam(r, "key")

	d, err := h.drafts.Load(r.Context(), userID, key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, d)
}

func (h *draftHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	key := chi.URLParam(r, "key")

	var payload draft.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	d, err := h.drafts.Save(r.Context(), userID, key, payload)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft saved", d)
}

func (h *draftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	key := chi.URLParam(r, "key")

	if err := h.drafts.Clear(r.Context(), userID, key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft cleared", nil)
}
