package likes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alumlink/alumlink-api/internal/middleware/authjwt"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
	"github.com/alumlink/alumlink-api/likes/handlers"
)

// LikesHandlers holds all the handlers this router needs
type LikesHandlers struct {
	LikeHandler *handlers.LikeHandler
}

// RegisterRoutes is the single entry point for setting up like routes
func RegisterRoutes(app *fiber.App, h *LikesHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{PublicKey: cfg.JWT.PublicKey})
	optionalAuth := authjwt.New(authjwt.Config{PublicKey: cfg.JWT.PublicKey, Optional: true})

	app.Post("/like", requireAuth, h.LikeHandler.ToggleLike)
	app.Get("/like-status/:type/:id", optionalAuth, h.LikeHandler.GetLikeStatus)
}
