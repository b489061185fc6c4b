package replies

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alumlink/alumlink-api/internal/middleware/authjwt"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
	"github.com/alumlink/alumlink-api/replies/handlers"
)

// RepliesHandlers holds all the handlers this router needs
type RepliesHandlers struct {
	ReplyHandler *handlers.ReplyHandler
}

// RegisterRoutes is the single entry point for setting up reply routes.
// Every reply operation mutates state, so everything requires a token.
func RegisterRoutes(app *fiber.App, h *RepliesHandlers, cfg *platformconfig.Config) {
	requireAuth := authjwt.New(authjwt.Config{PublicKey: cfg.JWT.PublicKey})

	app.Post("/comments/:commentId/replies", requireAuth, h.ReplyHandler.CreateReply)
	app.Post("/replies/:parentReplyId/replies", requireAuth, h.ReplyHandler.CreateNestedReply)
	app.Put("/replies/:replyId", requireAuth, h.ReplyHandler.UpdateReply)
	app.Delete("/replies/:replyId", requireAuth, h.ReplyHandler.DeleteReply)
}
