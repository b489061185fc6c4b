package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/gorilla/schema"

	apperrors "github.com/alumlink/alumlink-api/comments/errors"
	"github.com/alumlink/alumlink-api/comments/models"
	"github.com/alumlink/alumlink-api/comments/services"
	"github.com/alumlink/alumlink-api/internal/server"
	"github.com/alumlink/alumlink-api/internal/types"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// CommentHandler handles all comment-related HTTP requests
type CommentHandler struct {
	commentService services.CommentService
	queryDecoder   *schema.Decoder
}

// NewCommentHandler creates a new CommentHandler with injected dependencies
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &CommentHandler{
		commentService: commentService,
		queryDecoder:   decoder,
	}
}

// CreateComment handles POST /:type/:id/comments
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	kind := targetmodels.Kind(c.Params("type"))
	targetID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	comment, err := h.commentService.CreateComment(c.Context(), kind, targetID, &req, user)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.Created(c, "Comment created successfully", comment)
}

// GetComments handles GET /:type/:id/comments. Reads are open to anonymous
// callers; the user context only personalizes isLiked annotations.
func (h *CommentHandler) GetComments(c *fiber.Ctx) error {
	kind := targetmodels.Kind(c.Params("type"))
	targetID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	var filter models.CommentQueryFilter
	if err := h.decodeQuery(c, &filter); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}

	result, err := h.commentService.GetComments(c.Context(), kind, targetID, &filter, currentUser(c))
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "", result)
}

// GetComment handles GET /comments/:commentId
func (h *CommentHandler) GetComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	comment, err := h.commentService.GetComment(c.Context(), commentID)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "", comment)
}

// UpdateComment handles PUT /comments/:commentId
func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	var req models.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	comment, err := h.commentService.UpdateComment(c.Context(), commentID, &req, user)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE /comments/:commentId
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	if err := h.commentService.DeleteComment(c.Context(), commentID, user); err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "Comment deleted successfully", nil)
}

// decodeQuery maps the request's query string onto a filter struct
func (h *CommentHandler) decodeQuery(c *fiber.Ctx, target interface{}) error {
	values := url.Values{}
	for key, value := range c.Queries() {
		values.Set(key, value)
	}
	return h.queryDecoder.Decode(target, values)
}

func currentUser(c *fiber.Ctx) *types.UserContext {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		return &user
	}
	return nil
}
