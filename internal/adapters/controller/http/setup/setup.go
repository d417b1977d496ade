package setup

import (
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/handlers"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/middlewares"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Users         *handlers.UserHandler
	Matches       *handlers.MatchHandler
	Notifications *handlers.NotificationHandler
	Preferences   *handlers.PreferenceHandler
	PushTokens    *handlers.PushTokenHandler
}

type Options struct {
	JWTSecret []byte
	ClientID  string
}

// Setup wires the HTTP surface: public auth endpoints, then everything else
// behind token validation and the identity-header edge filter.
func Setup(h Handlers, opts Options, logger *types.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)

	e.Use(echoMiddleware.Recover())
	e.Use(middlewares.Correlation())

	// Public routes still pass the identity filter so client-supplied
	// identity headers are stripped at the edge.
	public := e.Group("", middlewares.IdentityHeaders())
	public.POST("/auth/register", h.Users.Register)
	public.POST("/auth/password-reset", h.Users.RequestPasswordReset)
	public.GET("/matches", h.Matches.List)
	public.GET("/matches/:id", h.Matches.Get)

	auth := e.Group("", middlewares.JWTAuth(opts.JWTSecret, opts.ClientID), middlewares.IdentityHeaders())
	auth.GET("/users/me", h.Users.Me)
	auth.DELETE("/users/me", h.Users.Delete)
	auth.POST("/auth/verify-email", h.Users.VerifyEmail)

	auth.POST("/matches", h.Matches.Create)
	auth.PUT("/matches/:id", h.Matches.Update)
	auth.PATCH("/matches/:id/status", h.Matches.UpdateStatus)
	auth.DELETE("/matches/:id", h.Matches.Delete)
	auth.POST("/matches/:id/join", h.Matches.RequestJoin)
	auth.POST("/matches/:id/join/resolve", h.Matches.ResolveJoin)
	auth.POST("/matches/:id/save", h.Matches.Save)
	auth.DELETE("/matches/:id/save", h.Matches.Unsave)

	auth.GET("/notifications", h.Notifications.List)
	auth.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	auth.POST("/notifications/:id/read", h.Notifications.MarkRead)
	auth.POST("/notifications/read-all", h.Notifications.MarkAllRead)

	auth.GET("/preferences", h.Preferences.Get)
	auth.PUT("/preferences", h.Preferences.Update)

	auth.POST("/push-tokens", h.PushTokens.Register)
	auth.DELETE("/push-tokens", h.PushTokens.Delete)

	return e
}
