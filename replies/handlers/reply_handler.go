package handlers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/internal/server"
	"github.com/alumlink/alumlink-api/internal/types"
	apperrors "github.com/alumlink/alumlink-api/replies/errors"
	"github.com/alumlink/alumlink-api/replies/models"
	"github.com/alumlink/alumlink-api/replies/services"
)

// ReplyHandler handles all reply-related HTTP requests
type ReplyHandler struct {
	replyService services.ReplyService
}

// NewReplyHandler creates a new ReplyHandler with injected dependencies
func NewReplyHandler(replyService services.ReplyService) *ReplyHandler {
	return &ReplyHandler{replyService: replyService}
}

// CreateReply handles POST /comments/:commentId/replies
func (h *ReplyHandler) CreateReply(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	var req models.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}
	req.CommentId = &commentID
	req.ParentReplyId = nil

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	reply, err := h.replyService.CreateReply(c.Context(), &req, user)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.Created(c, "Reply created successfully", reply)
}

// CreateNestedReply handles POST /replies/:parentReplyId/replies
func (h *ReplyHandler) CreateNestedReply(c *fiber.Ctx) error {
	parentID, err := uuid.FromString(c.Params("parentReplyId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	var req models.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}
	req.CommentId = nil
	req.ParentReplyId = &parentID

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	reply, err := h.replyService.CreateReply(c.Context(), &req, user)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.Created(c, "Reply created successfully", reply)
}

// UpdateReply handles PUT /replies/:replyId
func (h *ReplyHandler) UpdateReply(c *fiber.Ctx) error {
	replyID, err := uuid.FromString(c.Params("replyId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	var req models.UpdateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	reply, err := h.replyService.UpdateReply(c.Context(), replyID, &req, user)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "Reply updated successfully", reply)
}

// DeleteReply handles DELETE /replies/:replyId
func (h *ReplyHandler) DeleteReply(c *fiber.Ctx) error {
	replyID, err := uuid.FromString(c.Params("replyId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	if err := h.replyService.DeleteReply(c.Context(), replyID, user); err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "Reply deleted successfully", nil)
}

func currentUser(c *fiber.Ctx) *types.UserContext {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		return &user
	}
	return nil
}
