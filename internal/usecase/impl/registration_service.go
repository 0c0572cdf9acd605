// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"shopsmart/config"
	deliverycontext "shopsmart/internal/delivery/context"
	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/domain/service"
	"shopsmart/internal/phone"
	"shopsmart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	accountRepo  repository.AccountRepository
	pendingRepo  repository.PendingRegistrationRepository
	materializer usecase.AccountMaterializer
	hasher       service.PasswordHasher
	codes        service.CodeGenerator
	mailer       service.Mailer
	clock        service.Clock
	codeTTL      time.Duration
	recordTTL    time.Duration
	logger       *slog.Logger
}

// intakeRequest is the role-agnostic shape of a registration attempt after the
// handler-specific input has been collected.
type intakeRequest struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Phone     string
	Role      entity.Role
	Profile   entity.ProfileFields
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	PendingRepo  repository.PendingRegistrationRepository
	Materializer usecase.AccountMaterializer
	Hasher       service.PasswordHasher
	Codes        service.CodeGenerator
	Mailer       service.Mailer
	Clock        service.Clock
	Config       *config.Config
	Logger       *slog.Logger
}

// NewRegistrationService is the constructor for registrationService. It receives all dependencies as interfaces.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	return &registrationService{
		accountRepo:  params.AccountRepo,
		pendingRepo:  params.PendingRepo,
		materializer: params.Materializer,
		hasher:       params.Hasher,
		codes:        params.Codes,
		mailer:       params.Mailer,
		clock:        params.Clock,
		codeTTL:      params.Config.CodeTTL(),
		recordTTL:    params.Config.RecordTTL(),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterCustomer stages a customer signup and dispatches a verification code.
func (srv *registrationService) RegisterCustomer(ctx context.Context, input *usecase.RegisterCustomerInput) (*usecase.RegisterOutput, error) {
	return srv.intake(ctx, &intakeRequest{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password,
		Phone:     input.Phone,
		Role:      entity.RoleCustomer,
		Profile: entity.ProfileFields{
			PreferredLocation: input.PreferredLocation,
		},
	})
}

// RegisterShopOwner stages a shop owner signup and dispatches a verification code.
func (srv *registrationService) RegisterShopOwner(ctx context.Context, input *usecase.RegisterShopOwnerInput) (*usecase.RegisterOutput, error) {
	return srv.intake(ctx, &intakeRequest{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password,
		Phone:     input.Phone,
		Role:      entity.RoleShopOwner,
		Profile: entity.ProfileFields{
			ShopName:   input.ShopName,
			Address:    input.Address,
			City:       input.City,
			PostalCode: input.PostalCode,
			MapAddress: input.MapAddress,
			Latitude:   input.Latitude,
			Longitude:  input.Longitude,
		},
	})
}

// intake runs the shared registration pipeline: cleanup, conflict checks,
// staging and code delivery. Conflicts are re-validated rather than locked;
// the unique constraint on accounts is the final backstop at verification.
func (srv *registrationService) intake(ctx context.Context, req *intakeRequest) (*usecase.RegisterOutput, error) {
	now := srv.clock.Now()
	email := entity.CanonicalEmail(req.Email)

	srv.log(ctx).Info("Starting registration intake", slog.Any("role", req.Role), slog.String("email", email))

	// Opportunistic cleanup keeps the pending store bounded without a
	// dedicated scheduler. Failure here must not block the signup.
	if _, err := srv.pendingRepo.DeleteExpired(ctx, now.Add(-srv.recordTTL)); err != nil {
		srv.log(ctx).Warn("Opportunistic pending cleanup failed", slog.Any("error", err))
	}

	normalizedPhone, err := phone.Normalize(req.Phone)
	if err != nil {
		srv.log(ctx).Warn("Phone validation failed during intake", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("phone number is not a valid Ghanaian number")
	}
	req.Profile.Phone = normalizedPhone

	if err := srv.checkAccountConflict(ctx, email); err != nil {
		return nil, err
	}

	if err := srv.checkPendingConflict(ctx, email, now); err != nil {
		return nil, err
	}

	pending, err := srv.stagePending(ctx, req, email, now)
	if err != nil {
		return nil, err
	}

	if err := srv.mailer.SendVerificationCode(ctx, email, pending.VerificationCode); err != nil {
		// The staged record survives so a resend can retry delivery.
		srv.log(ctx).Error("Verification email delivery failed", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrDeliveryFailed.WrapMessage("failed to send verification email")
	}

	srv.log(ctx).Debug("Registration staged", slog.Any("role", req.Role), slog.String("email", email))

	return &usecase.RegisterOutput{Email: email}, nil
}

// checkAccountConflict enforces email uniqueness against materialized
// accounts. Inactive accounts are reclaimed so the email can register again.
func (srv *registrationService) checkAccountConflict(ctx context.Context, email string) error {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check account conflict")
	}

	if account.IsActive {
		srv.log(ctx).Warn("Registration rejected, email already in use", slog.String("email", email))

		return domainerrors.ErrEmailInUse.WrapMessage("active account exists for this email")
	}

	srv.log(ctx).Info("Reclaiming inactive account", slog.String("email", email), slog.Any("accountID", account.ID))

	if err := srv.accountRepo.Delete(ctx, account.ID); err != nil {
		return errors.Wrap(err, "failed to reclaim inactive account")
	}

	return nil
}

// checkPendingConflict rejects a fresh signup while a live pending
// registration exists, and clears one whose code window has lapsed.
func (srv *registrationService) checkPendingConflict(ctx context.Context, email string, now time.Time) error {
	pending, err := srv.pendingRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrPendingRegistrationNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check pending conflict")
	}

	if !pending.CodeExpired(now, srv.codeTTL) {
		srv.log(ctx).Warn("Registration rejected, verification already in flight", slog.String("email", email))

		return domainerrors.ErrVerificationAlreadySent.WrapMessage("live pending registration exists")
	}

	if err := srv.pendingRepo.Delete(ctx, email); err != nil {
		return errors.Wrap(err, "failed to clear expired pending registration")
	}

	return nil
}

func (srv *registrationService) stagePending(ctx context.Context, req *intakeRequest, email string, now time.Time) (*entity.PendingRegistration, error) {
	hashedPassword, err := srv.hasher.Hash(req.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during intake", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	pending := &entity.PendingRegistration{
		Email:            email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PasswordHash:     hashedPassword,
		Role:             req.Role,
		Profile:          req.Profile,
		VerificationCode: srv.codes.Generate(),
		CreatedAt:        now,
		LastSentAt:       now,
	}

	if err := srv.pendingRepo.Upsert(ctx, pending); err != nil {
		return nil, errors.Wrap(err, "failed to stage pending registration")
	}

	return pending, nil
}

// Verify checks a submitted code and promotes the pending registration into a
// durable account.
func (srv *registrationService) Verify(ctx context.Context, input *usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	now := srv.clock.Now()
	email := entity.CanonicalEmail(input.Email)

	srv.log(ctx).Info("Starting verification", slog.String("email", email))

	pending, err := srv.pendingRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrPendingRegistrationNotFound) {
		srv.log(ctx).Warn("Verification failed, no pending registration", slog.String("email", email))

		return nil, domainerrors.ErrSessionExpired.WrapMessage("no pending registration for email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pending registration")
	}

	// A mismatched code is reported before expiry so the record survives a
	// typo and the user can still retry within the window.
	if pending.VerificationCode != input.Code {
		srv.log(ctx).Warn("Verification failed, code mismatch", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCode.WrapMessage("submitted code does not match")
	}

	if pending.CodeExpired(now, srv.codeTTL) {
		// The session is unrecoverable with this code; drop the record so
		// the email can start over immediately.
		if deleteErr := srv.pendingRepo.Delete(ctx, email); deleteErr != nil {
			srv.log(ctx).Warn("Failed to delete expired pending registration", slog.String("email", email), slog.Any("error", deleteErr))
		}

		return nil, domainerrors.ErrCodeExpired.WrapMessage("verification code expired")
	}

	// Re-run the account conflict check: another verification of the same
	// email may have completed since intake.
	if err := srv.recheckAccountRace(ctx, email); err != nil {
		return nil, err
	}

	account, err := srv.materializer.Materialize(ctx, pending)
	if err != nil {
		srv.log(ctx).Error("Failed to materialize account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to materialize account")
	}

	srv.log(ctx).Info("Registration verified", slog.String("email", email), slog.Any("accountID", account.ID))

	return &usecase.VerifyOutput{Account: account}, nil
}

// recheckAccountRace handles an account that appeared between intake and now:
// an active one means a concurrent verification won, an inactive one is
// reclaimed so materialization can proceed.
func (srv *registrationService) recheckAccountRace(ctx context.Context, email string) error {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to re-check account race")
	}

	if account.IsActive {
		srv.log(ctx).Warn("Verification lost race, account already exists", slog.String("email", email))

		if deleteErr := srv.pendingRepo.Delete(ctx, email); deleteErr != nil {
			srv.log(ctx).Warn("Failed to delete pending record after lost race", slog.String("email", email), slog.Any("error", deleteErr))
		}

		return domainerrors.ErrAlreadyRegistered.WrapMessage("account already exists for this email")
	}

	if err := srv.accountRepo.Delete(ctx, account.ID); err != nil {
		return errors.Wrap(err, "failed to reclaim inactive account before materialization")
	}

	return nil
}

// Resend refreshes the verification code for a live pending registration.
// Both expiry windows restart so the new code gets a full validity period.
func (srv *registrationService) Resend(ctx context.Context, input *usecase.ResendInput) (*usecase.RegisterOutput, error) {
	now := srv.clock.Now()
	email := entity.CanonicalEmail(input.Email)

	srv.log(ctx).Info("Resending verification code", slog.String("email", email))

	pending, err := srv.pendingRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrPendingRegistrationNotFound) {
		return nil, domainerrors.ErrSessionExpired.WrapMessage("no pending registration for email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pending registration")
	}

	// A completed verification for this email makes the resend pointless.
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check account conflict on resend")
	}
	if err == nil && account.IsActive {
		if deleteErr := srv.pendingRepo.Delete(ctx, email); deleteErr != nil {
			srv.log(ctx).Warn("Failed to delete pending record for registered email", slog.String("email", email), slog.Any("error", deleteErr))
		}

		return nil, domainerrors.ErrAlreadyRegistered.WrapMessage("account already exists for this email")
	}

	if pending.CleanupDue(now, srv.recordTTL) {
		if deleteErr := srv.pendingRepo.Delete(ctx, email); deleteErr != nil {
			srv.log(ctx).Warn("Failed to delete stale pending registration", slog.String("email", email), slog.Any("error", deleteErr))
		}

		return nil, domainerrors.ErrSessionExpired.WrapMessage("pending registration aged out")
	}

	pending.VerificationCode = srv.codes.Generate()
	pending.CreatedAt = now
	pending.LastSentAt = now

	if err := srv.pendingRepo.Upsert(ctx, pending); err != nil {
		return nil, errors.Wrap(err, "failed to refresh pending registration")
	}

	if err := srv.mailer.SendVerificationCode(ctx, email, pending.VerificationCode); err != nil {
		srv.log(ctx).Error("Verification email delivery failed on resend", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrDeliveryFailed.WrapMessage("failed to resend verification email")
	}

	srv.log(ctx).Debug("Verification code resent", slog.String("email", email))

	return &usecase.RegisterOutput{Email: email}, nil
}

// CleanupExpired deletes pending registrations older than the record TTL.
func (srv *registrationService) CleanupExpired(ctx context.Context) (*usecase.CleanupOutput, error) {
	threshold := srv.clock.Now().Add(-srv.recordTTL)

	deleted, err := srv.pendingRepo.DeleteExpired(ctx, threshold)
	if err != nil {
		srv.log(ctx).Error("Failed to clean up expired pending registrations", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to delete expired pending registrations")
	}

	if deleted > 0 {
		srv.log(ctx).Info("Cleaned up expired pending registrations", slog.Int64("deleted", deleted))
	}

	return &usecase.CleanupOutput{Deleted: deleted, OlderThan: threshold}, nil
}
