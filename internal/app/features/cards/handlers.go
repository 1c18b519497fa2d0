// internal/app/features/cards/handlers.go
package cards

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/app/system/cardops"
	"github.com/kvnhng/boardhub/internal/app/system/timeouts"
	"github.com/kvnhng/boardhub/internal/app/system/webapi"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

type createRequest struct {
	BoardID     primitive.ObjectID `json:"board_id"`
	ColumnID    primitive.ObjectID `json:"column_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

// HandleCreate creates a card in a column and appends it to the
// column's order list.
//
// Route: POST /v1/cards
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.BoardID.IsZero() || req.ColumnID.IsZero() {
		webapi.Error(w, http.StatusBadRequest, "board_id, column_id, and title are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	col, err := h.Columns.GetByID(ctx, req.ColumnID)
	if err != nil {
		if errors.Is(err, columnstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "column not found")
			return
		}
		h.Log.Error("load column failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if col.BoardID != req.BoardID {
		webapi.Error(w, http.StatusBadRequest, "column does not belong to this board")
		return
	}

	card, err := h.Manager.Create(ctx, models.Card{
		BoardID:     req.BoardID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.Log.Error("create card failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusCreated, card)
}

// HandleUpdate is the single card update endpoint. The body selects
// exactly one mutation: a multipart request with a cover file replaces
// the cover; a JSON body is mapped through mutationFromRequest.
//
// Route: PUT /v1/cards/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad card id")
		return
	}

	var payload updatePayload
	var cover *cardops.UploadFile

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := openMultipartFile(w, r, "cover")
		if err != nil {
			webapi.Error(w, http.StatusBadRequest, "cover file is required in multipart body")
			return
		}
		defer file.Close()
		cover = &cardops.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        file,
		}
		if !strings.HasPrefix(cover.ContentType, "image/") {
			webapi.Error(w, http.StatusBadRequest, "cover must be an image")
			return
		}
	} else if err := webapi.Decode(r, &payload); err != nil {
		webapi.Error(w, http.StatusBadRequest, "malformed body")
		return
	}

	if payload.MemberChange != nil {
		action := payload.MemberChange.Action
		if action != cardops.MemberAdd && action != cardops.MemberRemove {
			webapi.Error(w, http.StatusBadRequest, "member_change.action must be ADD or REMOVE")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	card, err := h.Manager.Apply(ctx, cardID,
		mutationFromRequest(payload, cover),
		cardops.Actor{ID: user.ID, Email: user.Email})
	if err != nil {
		if errors.Is(err, cardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "card not found")
			return
		}
		h.Log.Error("update card failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, card)
}

// HandleDelete soft-deletes a card and removes it from its column's
// order list.
//
// Route: DELETE /v1/cards/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad card id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Manager.Delete(ctx, cardID); err != nil {
		if errors.Is(err, cardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "card not found")
			return
		}
		h.Log.Error("delete card failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusOK, map[string]string{"result": "card deleted"})
}

// HandleUploadAttachment stores a multipart file as a card attachment.
//
// Route: POST /v1/cards/{id}/attachments
func (h *Handler) HandleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad card id")
		return
	}

	file, header, err := openMultipartFile(w, r, "attachment")
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "attachment file is required")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	card, err := h.Manager.UploadAttachment(ctx, cardID, cardops.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		if errors.Is(err, cardstore.ErrNotFound) {
			webapi.Error(w, http.StatusNotFound, "card not found")
			return
		}
		h.Log.Error("upload attachment failed", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	webapi.JSON(w, http.StatusCreated, card)
}

// HandleDeleteAttachment removes an attachment and its stored blob.
//
// Route: DELETE /v1/cards/{id}/attachments/{attachmentID}
func (h *Handler) HandleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	cardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "bad card id")
		return
	}
	attachmentID := chi.URLParam(r, "attachmentID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	card, err := h.Manager.DeleteAttachment(ctx, cardID, attachmentID)
	if err != nil {
		switch {
		case errors.Is(err, cardstore.ErrNotFound):
			webapi.Error(w, http.StatusNotFound, "card not found")
		case errors.Is(err, cardops.ErrAttachmentNotFound):
			webapi.Error(w, http.StatusNotFound, "attachment not found")
		default:
			h.Log.Error("delete attachment failed", zap.Error(err))
			webapi.Error(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	webapi.JSON(w, http.StatusOK, card)
}

func openMultipartFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}
	return r.FormFile(field)
}
