package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"jobfair/docs"
	"jobfair/internal/config"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/handler"
	"jobfair/internal/logging"
	"jobfair/internal/metrics"
	"jobfair/internal/middleware"
	"jobfair/internal/model"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Company *handler.CompanyHandler
	Offers  *handler.OfferHandler
	Media   *handler.MediaHandler
}

// Deps holds the middleware collaborators.
type Deps struct {
	Gate         *middleware.Gate
	LoginLimiter echo.MiddlewareFunc
	Metrics      *metrics.Metrics
	Logger       *logrus.Logger
	// Health reports readiness of the backing stores; nil means always ready.
	Health func(c echo.Context) error
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, d Deps) {
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(d.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(d.Metrics.Middleware())

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		if d.Health != nil {
			if err := d.Health(c); err != nil {
				return err
			}
		}
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	gate := d.Gate
	authn := gate.Authenticated()
	admin := gate.RequireRole(model.RoleAdmin)
	co := gate.RequireRole(model.RoleCompany)
	coOrAdmin := gate.RequireRole(model.RoleCompany, model.RoleAdmin)
	selfOrAdmin := middleware.SelfOrAdmin("id")

	// Auth
	login := []echo.MiddlewareFunc{}
	if d.LoginLimiter != nil {
		login = append(login, d.LoginLimiter)
	}
	api.POST("/auth/login", h.Auth.Login, login...)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/role", h.Auth.Role, authn)

	// Users
	api.GET("/users", h.Users.ListUsers, authn)
	api.GET("/users/:id", h.Users.GetUser, authn)
	api.POST("/users", h.Users.CreateUser, admin)
	api.PUT("/users/:id", h.Users.UpdateUser, authn, selfOrAdmin)
	api.DELETE("/users/:id", h.Users.DeleteUser, admin)

	// Company
	api.POST("/company", h.Company.CreateCompany, coOrAdmin)
	api.GET("/company", h.Company.GetOwnCompany, co)
	api.POST("/company/stand", h.Company.SaveStand, co)
	api.GET("/company/stand/:standID", h.Company.GetStand, authn)
	api.GET("/company/:id", h.Company.GetCompany, authn)
	api.PUT("/company/:id", h.Company.UpdateCompany, coOrAdmin, selfOrAdmin)
	api.POST("/company/:id/documents", h.Company.AddDocuments, coOrAdmin, selfOrAdmin)
	api.PUT("/company/:id/documents", h.Company.KeepDocuments, coOrAdmin, selfOrAdmin)

	// Offers
	api.POST("/offers", h.Offers.CreateOffer, co)
	api.GET("/offers/by-id", h.Offers.ListOwnOffers, co)
	api.GET("/offers/filter", h.Offers.SearchOffers, authn)
	api.PUT("/offers/:id", h.Offers.UpdateOffer, coOrAdmin)
	api.DELETE("/offers/:id", h.Offers.DeleteOffer, coOrAdmin)

	// Videos and files
	api.POST("/videos", h.Media.AddVideo, co)
	api.GET("/videos", h.Media.ListVideos, co)
	api.PUT("/files/:id", h.Media.UpdateFiles, coOrAdmin, selfOrAdmin)
	api.GET("/files/:id", h.Media.GetFiles, authn)
}
