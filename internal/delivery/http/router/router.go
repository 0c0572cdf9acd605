// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shopsmart/internal/delivery/http/middleware"
	"shopsmart/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RegistrationHandler *handler.RegistrationHandler
	AuthHandler         *handler.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	registrationHandler *handler.RegistrationHandler
	authHandler         *handler.AuthHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		registrationHandler: params.RegistrationHandler,
		authHandler:         params.AuthHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Registration and auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/customer", r.registrationHandler.RegisterCustomer)
		authGroup.POST("/register/shop", r.registrationHandler.RegisterShopOwner)
		authGroup.POST("/verify", r.registrationHandler.Verify)
		authGroup.POST("/resend", r.registrationHandler.Resend)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Shop owner routes that require authentication and the "shop_owner" role.
	shopGroup := e.Group("/shop")
	shopGroup.Use(r.authMiddleware.Authenticate)              // First, check if logged in
	shopGroup.Use(r.authMiddleware.RequireRole("shop_owner")) // Then, check for the role
	{
		// ... shop management handlers mount here
	}
}
