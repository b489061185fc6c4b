package comments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alumlink/alumlink-api/comments/handlers"
	"github.com/alumlink/alumlink-api/internal/middleware/authjwt"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
)

// CommentsHandlers holds all the handlers this router needs
type CommentsHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up comment routes.
// Mutations require authentication; listing works anonymously but picks up
// isLiked annotations when a valid token is present.
func RegisterRoutes(app *fiber.App, h *CommentsHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{PublicKey: cfg.JWT.PublicKey})
	optionalAuth := authjwt.New(authjwt.Config{PublicKey: cfg.JWT.PublicKey, Optional: true})

	app.Get("/:type/:id/comments", optionalAuth, h.CommentHandler.GetComments)
	app.Post("/:type/:id/comments", requireAuth, h.CommentHandler.CreateComment)
	app.Get("/comments/:commentId", h.CommentHandler.GetComment)
	app.Put("/comments/:commentId", requireAuth, h.CommentHandler.UpdateComment)
	app.Delete("/comments/:commentId", requireAuth, h.CommentHandler.DeleteComment)
}
