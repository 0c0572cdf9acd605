package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/usecase"
)

func newCustomerInput(email string) *usecase.RegisterCustomerInput {
	return &usecase.RegisterCustomerInput{
		Email:             email,
		FirstName:         "Ama",
		LastName:          "Mensah",
		Password:          "Password123!",
		Phone:             "0241234567",
		PreferredLocation: "Accra",
	}
}

func newShopInput(email string) *usecase.RegisterShopOwnerInput {
	return &usecase.RegisterShopOwnerInput{
		Email:     email,
		FirstName: "Kofi",
		LastName:  "Boateng",
		Password:  "Password123!",
		Phone:     "+233551234567",
		ShopName:  "Kofi's Electronics",
		Address:   "12 Oxford Street, Osu",
		City:      "Accra",
	}
}

func TestRegisterCustomer_Success(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	output, err := fx.service.RegisterCustomer(ctx, newCustomerInput("Ama@Example.com"))

	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", output.Email)

	// The staged record carries the normalized phone and canonical email.
	pending, err := fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, pending.Role)
	assert.Equal(t, "+233241234567", pending.Profile.Phone)
	assert.Equal(t, "hashed:Password123!", pending.PasswordHash)
	assert.Equal(t, fx.clock.Now(), pending.CreatedAt)

	// Exactly one mail, carrying the staged code.
	require.Len(t, fx.mailer.sent, 1)
	assert.Equal(t, pending.VerificationCode, fx.mailer.sent[0].code)
}

func TestRegisterShopOwner_Success(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	output, err := fx.service.RegisterShopOwner(ctx, newShopInput("kofi@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "kofi@example.com", output.Email)

	pending, err := fx.pendingRepo.GetByEmail(ctx, "kofi@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleShopOwner, pending.Role)
	assert.Equal(t, "Kofi's Electronics", pending.Profile.ShopName)
	assert.Equal(t, "+233551234567", pending.Profile.Phone)
}

func TestRegisterCustomer_InvalidPhone(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	input := newCustomerInput("ama@example.com")
	input.Phone = "12345"

	_, err := fx.service.RegisterCustomer(ctx, input)

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, fx.mailer.sent)

	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
}

func TestRegisterCustomer_EmailInUse(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	require.NoError(t, fx.accountRepo.Create(ctx, &entity.Account{
		Email:    "ama@example.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}))

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))

	require.ErrorIs(t, err, domainerrors.ErrEmailInUse)
	assert.Empty(t, fx.mailer.sent)
}

func TestRegisterCustomer_ReclaimsInactiveAccount(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	require.NoError(t, fx.accountRepo.Create(ctx, &entity.Account{
		Email:    "ama@example.com",
		Role:     entity.RoleCustomer,
		IsActive: false,
	}))

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))

	require.NoError(t, err)

	// The dead account is gone and a fresh pending registration exists.
	_, err = fx.accountRepo.FindByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.NoError(t, err)
}

func TestRegisterCustomer_VerificationAlreadySent(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)

	// A second attempt within the code window is rejected.
	fx.clock.Advance(5 * time.Minute)
	_, err = fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))

	require.ErrorIs(t, err, domainerrors.ErrVerificationAlreadySent)
	assert.Len(t, fx.mailer.sent, 1)
}

func TestRegisterCustomer_ExpiredPendingReplaced(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)

	firstCode := fx.mailer.sent[0].code

	// Past the code window the stale record is replaced by a new signup.
	fx.clock.Advance(16 * time.Minute)
	_, err = fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)

	pending, err := fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, firstCode, pending.VerificationCode)
	assert.Equal(t, fx.clock.Now(), pending.CreatedAt)
}

func TestRegisterCustomer_DeliveryFailureKeepsRecord(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()
	fx.mailer.fail = true

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))

	require.ErrorIs(t, err, domainerrors.ErrDeliveryFailed)

	// The staged record survives so a resend can retry delivery.
	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.NoError(t, err)
}

func TestVerify_Success(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)
	code := fx.mailer.sent[0].code

	fx.clock.Advance(10 * time.Minute)
	output, err := fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: code})

	require.NoError(t, err)
	require.NotNil(t, output.Account)
	assert.Equal(t, entity.RoleCustomer, output.Account.Role)
	assert.True(t, output.Account.IsActive)
	assert.True(t, output.Account.IsApproved)
	require.NotNil(t, output.Account.CustomerProfile)
	assert.Equal(t, "+233241234567", output.Account.CustomerProfile.Phone)

	// Account exists, pending record is gone.
	_, err = fx.accountRepo.FindByEmail(ctx, "ama@example.com")
	assert.NoError(t, err)
	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
}

func TestVerify_ShopOwnerStartsUnapproved(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterShopOwner(ctx, newShopInput("kofi@example.com"))
	require.NoError(t, err)
	code := fx.mailer.sent[0].code

	output, err := fx.service.Verify(ctx, &usecase.VerifyInput{Email: "kofi@example.com", Code: code})

	require.NoError(t, err)
	assert.False(t, output.Account.IsApproved)
	require.NotNil(t, output.Account.ShopOwnerProfile)
	assert.False(t, output.Account.ShopOwnerProfile.IsApproved)
	assert.Equal(t, "Kofi's Electronics", output.Account.ShopOwnerProfile.ShopName)
}

func TestVerify_UnknownEmail(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ghost@example.com", Code: "123456"})

	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestVerify_WrongCodeKeepsRecord(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)

	_, err = fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: "000000"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	// The record survives; a retry with the right code still works.
	code := fx.mailer.sent[0].code
	_, err = fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: code})
	assert.NoError(t, err)
}

func TestVerify_ExpiredCodeDeletesRecord(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)
	code := fx.mailer.sent[0].code

	fx.clock.Advance(16 * time.Minute)
	_, err = fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: code})

	require.ErrorIs(t, err, domainerrors.ErrCodeExpired)

	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
}

func TestVerify_RaceLoserGetsAlreadyRegistered(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)
	code := fx.mailer.sent[0].code

	// A concurrent flow materialized the same email first.
	require.NoError(t, fx.accountRepo.Create(ctx, &entity.Account{
		Email:    "ama@example.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}))

	_, err = fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: code})

	require.ErrorIs(t, err, domainerrors.ErrAlreadyRegistered)

	// The loser's pending record is cleaned up.
	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
}

func TestVerify_ReclaimsInactiveAccount(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)
	code := fx.mailer.sent[0].code

	// A dead account appeared for the same email after intake.
	require.NoError(t, fx.accountRepo.Create(ctx, &entity.Account{
		Email:    "ama@example.com",
		Role:     entity.RoleCustomer,
		IsActive: false,
	}))

	output, err := fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: code})

	require.NoError(t, err)
	assert.True(t, output.Account.IsActive)

	// The materialized account replaced the inactive one.
	account, err := fx.accountRepo.FindByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, output.Account.ID, account.ID)
}

func TestVerify_MaterializationFailureDeletesRecord(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)
	code := fx.mailer.sent[0].code

	// The materializing transaction fails once; the cleanup retry succeeds.
	fx.txManager.failWith = assert.AnError
	fx.txManager.failures = 1

	_, err = fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: code})

	require.ErrorIs(t, err, domainerrors.ErrMaterializationFailed)

	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)

	_, err = fx.accountRepo.FindByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestResend_IssuesFreshCodeAndResetsWindows(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)
	firstCode := fx.mailer.sent[0].code

	fx.clock.Advance(20 * time.Minute)
	output, err := fx.service.Resend(ctx, &usecase.ResendInput{Email: "ama@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", output.Email)
	require.Len(t, fx.mailer.sent, 2)
	assert.NotEqual(t, firstCode, fx.mailer.sent[1].code)

	pending, err := fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, fx.clock.Now(), pending.CreatedAt)
	assert.Equal(t, fx.clock.Now(), pending.LastSentAt)

	// The refreshed code gets a full validity window.
	fx.clock.Advance(10 * time.Minute)
	_, err = fx.service.Verify(ctx, &usecase.VerifyInput{Email: "ama@example.com", Code: pending.VerificationCode})
	assert.NoError(t, err)
}

func TestResend_UnknownEmail(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.Resend(ctx, &usecase.ResendInput{Email: "ghost@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestResend_AlreadyRegistered(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)

	// A concurrent verification completed for this email.
	require.NoError(t, fx.accountRepo.Create(ctx, &entity.Account{
		Email:    "ama@example.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}))

	_, err = fx.service.Resend(ctx, &usecase.ResendInput{Email: "ama@example.com"})

	require.ErrorIs(t, err, domainerrors.ErrAlreadyRegistered)

	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
}

func TestResend_AgedOutRecord(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("ama@example.com"))
	require.NoError(t, err)

	fx.clock.Advance(25 * time.Hour)
	_, err = fx.service.Resend(ctx, &usecase.ResendInput{Email: "ama@example.com"})

	require.ErrorIs(t, err, domainerrors.ErrSessionExpired)

	_, err = fx.pendingRepo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
}

func TestCleanupExpired(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("old@example.com"))
	require.NoError(t, err)

	fx.clock.Advance(25 * time.Hour)
	_, err = fx.service.RegisterCustomer(ctx, newCustomerInput("fresh@example.com"))
	require.NoError(t, err)

	output, err := fx.service.CleanupExpired(ctx)

	require.NoError(t, err)
	// The old record was already swept by the fresh intake's opportunistic
	// cleanup, so the explicit pass finds nothing left.
	assert.Equal(t, int64(0), output.Deleted)

	_, err = fx.pendingRepo.GetByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)
	_, err = fx.pendingRepo.GetByEmail(ctx, "fresh@example.com")
	assert.NoError(t, err)
}

func TestCleanupExpired_DeletesAgedRecords(t *testing.T) {
	fx := createTestRegistrationService()
	ctx := context.Background()

	_, err := fx.service.RegisterCustomer(ctx, newCustomerInput("old@example.com"))
	require.NoError(t, err)

	fx.clock.Advance(25 * time.Hour)
	output, err := fx.service.CleanupExpired(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.Deleted)
}
