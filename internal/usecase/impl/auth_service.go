package impl

import (
	"context"
	"log/slog"

	deliverycontext "shopsmart/internal/delivery/context"
	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/domain/service"
	"shopsmart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates a materialized account and issues a token pair.
// Unapproved shop owners are rejected even with valid credentials.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.CanonicalEmail(input.Email)

	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("no account for email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// bcrypt comparison is CPU-bound; keep it outside any transaction.
	if err := srv.hasher.Compare(account.PasswordHash, input.Password); err != nil {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	if !account.IsActive {
		srv.log(ctx).Warn("Login rejected, account inactive", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account is inactive")
	}

	if account.Role == entity.RoleShopOwner && !account.IsApproved {
		srv.log(ctx).Warn("Login rejected, shop owner not approved", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrShopNotApproved.WrapMessage("shop owner pending admin approval")
	}

	tokens, err := srv.tokenService.GenerateTokens(account.ID, account.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Account:      account,
	}, nil
}
