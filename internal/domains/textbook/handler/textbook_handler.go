package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"elearn-backend/internal/domains/textbook"
	"elearn-backend/internal/ordering"
	"elearn-backend/internal/shared/response"
)

type TextbookHandler struct {
	service textbook.TextbookService
}

func NewTextbookHandler(service textbook.TextbookService) *TextbookHandler {
	return &TextbookHandler{service: service}
}

// Create handles POST /textbooks
func (h *TextbookHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req textbook.CreateTextbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid textbook", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List handles GET /textbooks
func (h *TextbookHandler) List(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	results, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, results, &response.Meta{Total: len(results)})
}

// GetByID handles GET /textbooks/:id
func (h *TextbookHandler) GetByID(c *gin.Context) {
	textbookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), textbookID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Update handles PUT /textbooks/:id
func (h *TextbookHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	textbookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req textbook.UpdateTextbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid textbook", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), ownerID, textbookID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /textbooks/:id
func (h *TextbookHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	textbookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, textbookID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": textbookID})
}

// Reorder handles PUT /textbooks/reorder
func (h *TextbookHandler) Reorder(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req textbook.ReorderTextbooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid reorder request", err.Error())
		return
	}

	results, err := h.service.Reorder(c.Request.Context(), ownerID, req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// MoveUp handles POST /textbooks/:id/move-up
func (h *TextbookHandler) MoveUp(c *gin.Context) {
	h.move(c, ordering.DirectionUp)
}

// MoveDown handles POST /textbooks/:id/move-down
func (h *TextbookHandler) MoveDown(c *gin.Context) {
	h.move(c, ordering.DirectionDown)
}

func (h *TextbookHandler) move(c *gin.Context, dir ordering.Direction) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	textbookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	results, err := h.service.Move(c.Request.Context(), ownerID, textbookID, dir)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

func (h *TextbookHandler) writeError(c *gin.Context, err error) {
	var failed *ordering.ReconcileFailed
	switch {
	case errors.Is(err, textbook.ErrTextbookNotFound), errors.Is(err, ordering.ErrItemNotFound):
		response.NotFound(c, "Textbook not found")
	case errors.Is(err, textbook.ErrNotTextbookOwner):
		response.Forbidden(c, "You do not own this textbook")
	case errors.Is(err, textbook.ErrDuplicateISBN):
		response.Conflict(c, "A textbook with this ISBN already exists")
	case errors.As(err, &failed):
		response.InternalServerError(c, "Failed to reorder textbooks")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "missing user identity")
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "invalid user identity")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
