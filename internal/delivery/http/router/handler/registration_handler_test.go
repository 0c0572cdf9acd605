package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsmart/internal/delivery/http/middleware"
	"shopsmart/internal/delivery/http/validator"
	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/usecase"
)

// stubRegistrationUC returns canned outputs so handler tests exercise only
// binding, validation and envelope mapping.
type stubRegistrationUC struct {
	registerOut *usecase.RegisterOutput
	verifyOut   *usecase.VerifyOutput
	err         error
}

func (s *stubRegistrationUC) RegisterCustomer(_ context.Context, _ *usecase.RegisterCustomerInput) (*usecase.RegisterOutput, error) {
	return s.registerOut, s.err
}

func (s *stubRegistrationUC) RegisterShopOwner(_ context.Context, _ *usecase.RegisterShopOwnerInput) (*usecase.RegisterOutput, error) {
	return s.registerOut, s.err
}

func (s *stubRegistrationUC) Verify(_ context.Context, _ *usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	return s.verifyOut, s.err
}

func (s *stubRegistrationUC) Resend(_ context.Context, _ *usecase.ResendInput) (*usecase.RegisterOutput, error) {
	return s.registerOut, s.err
}

func (s *stubRegistrationUC) CleanupExpired(_ context.Context) (*usecase.CleanupOutput, error) {
	return &usecase.CleanupOutput{}, s.err
}

type stubAuthUC struct {
	out *usecase.LoginOutput
	err error
}

func (s *stubAuthUC) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.out, s.err
}

// envelope mirrors the wire response shape for assertions.
type envelope struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func newTestServer(regUC usecase.RegistrationUsecase, authUC usecase.AuthUsecase) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	regHandler := NewRegistrationHandler(regUC, logger)
	authHandler := NewAuthHandler(authUC, logger)

	e.POST("/auth/register/customer", regHandler.RegisterCustomer)
	e.POST("/auth/register/shop", regHandler.RegisterShopOwner)
	e.POST("/auth/verify", regHandler.Verify)
	e.POST("/auth/resend", regHandler.Resend)
	e.POST("/auth/login", authHandler.Login)

	return e
}

func doJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)

	return rec, env
}

func TestRegisterCustomerHandler_Accepted(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{
		registerOut: &usecase.RegisterOutput{Email: "ama@example.com"},
	}, &stubAuthUC{})

	rec, env := doJSON(e, "/auth/register/customer", `{
		"email": "Ama@Example.com",
		"first_name": "Ama",
		"last_name": "Mensah",
		"password": "Password123!",
		"phone": "0241234567"
	}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "ama@example.com", env.Data["email"])
}

func TestRegisterCustomerHandler_MissingEmail(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{}, &stubAuthUC{})

	rec, env := doJSON(e, "/auth/register/customer", `{
		"first_name": "Ama",
		"last_name": "Mensah",
		"password": "Password123!",
		"phone": "0241234567"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestRegisterCustomerHandler_ShortPassword(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{}, &stubAuthUC{})

	rec, _ := doJSON(e, "/auth/register/customer", `{
		"email": "ama@example.com",
		"first_name": "Ama",
		"last_name": "Mensah",
		"password": "short",
		"phone": "0241234567"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterCustomerHandler_EmailInUse(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{
		err: domainerrors.ErrEmailInUse.WrapMessage("active account exists"),
	}, &stubAuthUC{})

	rec, env := doJSON(e, "/auth/register/customer", `{
		"email": "ama@example.com",
		"first_name": "Ama",
		"last_name": "Mensah",
		"password": "Password123!",
		"phone": "0241234567"
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMAIL_IN_USE", env.Error.Code)
	assert.Equal(t, "Email already in use.", env.Message)
}

func TestRegisterShopHandler_MissingShopName(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{}, &stubAuthUC{})

	rec, _ := doJSON(e, "/auth/register/shop", `{
		"email": "kofi@example.com",
		"first_name": "Kofi",
		"last_name": "Boateng",
		"password": "Password123!",
		"phone": "0551234567",
		"address": "12 Oxford Street"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyHandler_Created(t *testing.T) {
	accountID := uuid.New()
	e := newTestServer(&stubRegistrationUC{
		verifyOut: &usecase.VerifyOutput{Account: &entity.Account{
			ID:           accountID,
			Email:        "ama@example.com",
			FirstName:    "Ama",
			LastName:     "Mensah",
			PasswordHash: "secret-hash",
			Role:         entity.RoleCustomer,
			IsApproved:   true,
			IsActive:     true,
		}},
	}, &stubAuthUC{})

	rec, env := doJSON(e, "/auth/verify", `{"email": "ama@example.com", "code": "123456"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, accountID.String(), env.Data["id"])
	assert.Equal(t, "customer", env.Data["role"])

	// The password hash must never appear in the response body.
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

func TestVerifyHandler_InvalidCode(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{
		err: domainerrors.ErrInvalidCode.WrapMessage("code mismatch"),
	}, &stubAuthUC{})

	rec, env := doJSON(e, "/auth/verify", `{"email": "ama@example.com", "code": "000000"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CODE", env.Error.Code)
}

func TestVerifyHandler_NonNumericCode(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{}, &stubAuthUC{})

	rec, _ := doJSON(e, "/auth/verify", `{"email": "ama@example.com", "code": "abc123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResendHandler_SessionExpired(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{
		err: domainerrors.ErrSessionExpired.WrapMessage("no pending registration"),
	}, &stubAuthUC{})

	rec, env := doJSON(e, "/auth/resend", `{"email": "ghost@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SESSION_EXPIRED", env.Error.Code)
}

func TestLoginHandler_Success(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{}, &stubAuthUC{
		out: &usecase.LoginOutput{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			Account: &entity.Account{
				ID:       uuid.New(),
				Email:    "ama@example.com",
				Role:     entity.RoleCustomer,
				IsActive: true,
			},
		},
	})

	rec, env := doJSON(e, "/auth/login", `{"email": "ama@example.com", "password": "Password123!"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "access-token", env.Data["access_token"])
	assert.Equal(t, "refresh-token", env.Data["refresh_token"])
}

func TestLoginHandler_ShopNotApproved(t *testing.T) {
	e := newTestServer(&stubRegistrationUC{}, &stubAuthUC{
		err: domainerrors.ErrShopNotApproved.WrapMessage("pending admin approval"),
	})

	rec, env := doJSON(e, "/auth/login", `{"email": "kofi@example.com", "password": "Password123!"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SHOP_NOT_APPROVED", env.Error.Code)
}
