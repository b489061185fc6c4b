package handlers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/internal/server"
	"github.com/alumlink/alumlink-api/internal/types"
	apperrors "github.com/alumlink/alumlink-api/likes/errors"
	"github.com/alumlink/alumlink-api/likes/models"
	"github.com/alumlink/alumlink-api/likes/services"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// LikeHandler handles all like-related HTTP requests
type LikeHandler struct {
	likeService services.LikeService
}

// NewLikeHandler creates a new LikeHandler with injected dependencies
func NewLikeHandler(likeService services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleLike handles POST /like
func (h *LikeHandler) ToggleLike(c *fiber.Ctx) error {
	var req models.ToggleLikeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
	}

	if req.LikeableType == "" {
		return apperrors.HandleServiceError(c, apperrors.NewValidationError("likeableType", "likeableType is required"))
	}

	targetID, err := uuid.FromString(req.LikeableId)
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.NewValidationError("likeableId", "likeableId must be a valid UUID"))
	}

	user := currentUser(c)
	if user == nil {
		return apperrors.HandleServiceError(c, apperrors.ErrMissingUserContext)
	}

	result, err := h.likeService.ToggleLike(c.Context(), targetmodels.Kind(req.LikeableType), targetID, user)
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	message := "Liked successfully"
	if result.Action == models.ActionUnliked {
		message = "Unliked successfully"
	}

	return server.OK(c, message, result)
}

// GetLikeStatus handles GET /like-status/:type/:id
func (h *LikeHandler) GetLikeStatus(c *fiber.Ctx) error {
	kind := targetmodels.Kind(c.Params("type"))
	targetID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return apperrors.HandleServiceError(c, apperrors.ErrInvalidUUID)
	}

	result, err := h.likeService.GetLikeStatus(c.Context(), kind, targetID, currentUser(c))
	if err != nil {
		return apperrors.HandleServiceError(c, err)
	}

	return server.OK(c, "", result)
}

func currentUser(c *fiber.Ctx) *types.UserContext {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		return &user
	}
	return nil
}
