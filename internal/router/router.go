package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cmsapi/internal/auth"
	"cmsapi/internal/config"
	"cmsapi/internal/handler"
	"cmsapi/internal/middleware"
	"cmsapi/internal/rbac"
)

// Guards holds what the route guards need.
type Guards struct {
	Tokens  *auth.TokenService
	Roles   middleware.RoleResolver
	Limiter middleware.Counter
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	guards Guards,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.IPExtractor = ipExtractor(cfg, log)
	e.HTTPErrorHandler = handler.ErrorHandler(e, log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	limited := middleware.RateLimit(guards.Limiter, cfg.RateLimitPerMinute, time.Minute)

	// Public routes
	a := e.Group("/auth")
	a.POST("/register", authHandler.Register)
	a.POST("/login", authHandler.Login, limited)
	a.POST("/refreshToken", authHandler.Refresh)
	a.POST("/revokeRefreshTokens", authHandler.Revoke)
	a.POST("/valid_password", authHandler.ValidPassword, limited)
	a.POST("/verify_email", authHandler.VerifyEmail, limited)
	a.POST("/reset_password_link", authHandler.ResetPasswordLink)
	a.PUT("/change_password", authHandler.ChangePassword)

	// Secured routes: authenticate, then resolve the current role.
	secured := e.Group("",
		middleware.Authenticate(guards.Tokens),
		middleware.ResolveRole(guards.Roles, guards.Tokens),
	)
	can := middleware.RequirePermission

	secured.GET("/me", userHandler.Me)

	secured.GET("/users", userHandler.ListUsers, can(rbac.GetUsers))
	secured.GET("/users/:id", userHandler.GetUser, can(rbac.GetUsers))
	secured.POST("/users", userHandler.CreateUser, can(rbac.CreateUser))
	secured.PUT("/users/:id", userHandler.UpdateUser, can(rbac.UpdateUser))
	secured.DELETE("/users/:id", userHandler.DeleteUser, can(rbac.DeleteUser))

	secured.GET("/categories", categoryHandler.ListCategories)
	secured.POST("/categories", categoryHandler.CreateCategory, can(rbac.CreateCategory))
	secured.PUT("/categories/:id", categoryHandler.UpdateCategory, can(rbac.UpdateCategory))
	secured.DELETE("/categories/:id", categoryHandler.DeleteCategory, can(rbac.DeleteCategory))
}

// ipExtractor trusts X-Forwarded-For only from the configured proxies.
// Without any, the client IP is the socket peer so clients cannot pick
// their own rate-limit key.
func ipExtractor(cfg *config.Config, log zerolog.Logger) echo.IPExtractor {
	nets, err := cfg.TrustedProxyNets()
	if err != nil {
		log.Error().Err(err).Msg("ignoring trusted proxies")
		nets = nil
	}
	if len(nets) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{echo.TrustLoopback(false), echo.TrustLinkLocal(false), echo.TrustPrivateNet(false)}
	for _, n := range nets {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
