// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"shopsmart/internal/delivery/http/response"
	"shopsmart/internal/domain/entity"
	"shopsmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegistrationHandler holds dependencies for registration-related handlers.
type RegistrationHandler struct {
	uc     usecase.RegistrationUsecase
	logger *slog.Logger
}

// NewRegistrationHandler is the constructor for RegistrationHandler, injected by Fx.
func NewRegistrationHandler(uc usecase.RegistrationUsecase, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		uc:     uc,
		logger: logger,
	}
}

// registerCustomerRequest is the wire shape for a customer registration.
type registerCustomerRequest struct {
	Email             string `json:"email" validate:"required,email"`
	FirstName         string `json:"first_name" validate:"required,max=100"`
	LastName          string `json:"last_name" validate:"required,max=100"`
	Password          string `json:"password" validate:"required,min=8"`
	Phone             string `json:"phone" validate:"required"`
	PreferredLocation string `json:"preferred_location"`
}

// registerShopRequest is the wire shape for a shop owner registration.
type registerShopRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	Password   string  `json:"password" validate:"required,min=8"`
	Phone      string  `json:"phone" validate:"required"`
	ShopName   string  `json:"shop_name" validate:"required,max=255"`
	Address    string  `json:"address" validate:"required"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	MapAddress string  `json:"map_address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// verifyRequest carries the email and submitted verification code.
type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// resendRequest identifies the pending registration to refresh.
type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterCustomer handles the customer registration request.
func (h *RegistrationHandler) RegisterCustomer(c echo.Context) error {
	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.RegisterCustomer(c.Request().Context(), &usecase.RegisterCustomerInput{
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Password:          req.Password,
		Phone:             req.Phone,
		PreferredLocation: req.PreferredLocation,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, map[string]string{"email": output.Email},
		"Verification code sent. Please check your email.")
}

// RegisterShopOwner handles the shop owner registration request.
func (h *RegistrationHandler) RegisterShopOwner(c echo.Context) error {
	var req registerShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.RegisterShopOwner(c.Request().Context(), &usecase.RegisterShopOwnerInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Password:   req.Password,
		Phone:      req.Phone,
		ShopName:   req.ShopName,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		MapAddress: req.MapAddress,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, map[string]string{"email": output.Email},
		"Verification code sent. Please check your email.")
}

// Verify handles the verification code submission.
func (h *RegistrationHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Verify(c.Request().Context(), &usecase.VerifyInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountResponse(output.Account),
		"Registration complete. You can now log in.")
}

// Resend handles the request to re-issue a verification code.
func (h *RegistrationHandler) Resend(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resend input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Resend(c.Request().Context(), &usecase.ResendInput{Email: req.Email})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": output.Email},
		"A new verification code has been sent.")
}

// accountResponse is the public projection of an account. The password hash
// never leaves the service.
type accountResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

func toAccountResponse(account *entity.Account) *accountResponse {
	if account == nil {
		return nil
	}

	return &accountResponse{
		ID:         account.ID.String(),
		Email:      account.Email,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		Role:       account.Role.String(),
		IsApproved: account.IsApproved,
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
