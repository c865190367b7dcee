package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/config"
	"github.com/ignatzorin/conectar-backend/internal/http/middleware"
	"github.com/ignatzorin/conectar-backend/internal/interface/http/handler"
	"github.com/ignatzorin/conectar-backend/internal/service"
)

// Handlers - все HTTP обработчики приложения.
type Handlers struct {
	Health       *handler.HealthHandler
	WS           *handler.WSHandler
	Slot         *handler.SlotHandler
	Match        *handler.MatchHandler
	Reaction     *handler.ReactionHandler
	Notification *handler.NotificationHandler
	Sweep        *handler.SweepHandler
	Attachment   *handler.AttachmentHandler
}

func SetupRouter(cfg *config.Config, tokenManager *service.TokenManager, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	internal := api.Group("/internal")
	internal.Use(middleware.SweepTokenMiddleware(cfg.SweepToken))
	{
		internal.POST("/sweeps/:kind", h.Sweep.Run)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager, cfg.AuthCookieName))
	{
		protected.GET("/ws", h.WS.Handle)

		protected.GET("/projects/:id/slots", middleware.IDValidator("id"), h.Slot.ListByProject)
		protected.GET("/projects/:id/ignored-candidates", middleware.IDValidator("id"), h.Match.ListIgnored)
		protected.POST("/projects/:id/reactions", middleware.IDValidator("id"), h.Reaction.React)
		protected.DELETE("/projects/:id/reactions/:kind", middleware.IDValidator("id"), h.Reaction.Remove)

		protected.POST("/slots", h.Slot.Create)
		protected.GET("/slots/invitations", h.Slot.ListMyInvitations)
		protected.GET("/slots/:id", middleware.IDValidator("id"), h.Slot.Get)
		protected.PUT("/slots/:id", middleware.IDValidator("id"), h.Slot.Update)
		protected.DELETE("/slots/:id", middleware.IDValidator("id"), h.Slot.Delete)
		protected.POST("/slots/:id/assign", middleware.IDValidator("id"), h.Slot.Assign)
		protected.POST("/slots/:id/invite", middleware.IDValidator("id"), h.Slot.Invite)
		protected.POST("/slots/:id/accept", middleware.IDValidator("id"), h.Slot.Accept)
		protected.POST("/slots/:id/refuse", middleware.IDValidator("id"), h.Slot.Refuse)
		protected.POST("/slots/:id/finalize", middleware.IDValidator("id"), h.Slot.Finalize)

		protected.GET("/notifications", h.Notification.List)
		protected.GET("/notifications/unread/count", h.Notification.CountUnread)
		protected.GET("/notifications/:id", middleware.IDValidator("id"), h.Notification.Get)
		protected.PUT("/notifications/read-all", h.Notification.MarkAllRead)
		protected.PUT("/notifications/:id/read", middleware.IDValidator("id"), h.Notification.MarkRead)
		protected.DELETE("/notifications/:id", middleware.IDValidator("id"), h.Notification.Delete)

		if h.Attachment != nil {
			protected.GET("/attachments/:name", h.Attachment.Download)
		}
	}

	// Подбор кандидатов ограничен по частоте: он перебирает всех людей с нужной ролью.
	matching := api.Group("/")
	matching.Use(middleware.AuthMiddleware(tokenManager, cfg.AuthCookieName))
	matching.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		matching.POST("/projects/:id/match", middleware.IDValidator("id"), h.Match.MatchProject)
		matching.POST("/slots/:id/match", middleware.IDValidator("id"), h.Match.MatchSlot)
	}

	return r
}
