package impl

import (
	"context"
	"log/slog"

	deliverycontext "shopsmart/internal/delivery/context"
	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountMaterializer implements the AccountMaterializer interface.
type accountMaterializer struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// AccountMaterializerParams holds dependencies for AccountMaterializer, injected by Fx.
type AccountMaterializerParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewAccountMaterializer is the constructor for accountMaterializer.
func NewAccountMaterializer(params AccountMaterializerParams) usecase.AccountMaterializer {
	return &accountMaterializer{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (m *accountMaterializer) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, m.logger)
}

// Materialize promotes a verified pending registration to an account plus its
// role-specific profile, and removes the pending record, all in one
// transaction. The unique email constraint resolves verification races: the
// loser gets ErrAlreadyRegistered and its pending record is still deleted.
func (m *accountMaterializer) Materialize(ctx context.Context, pending *entity.PendingRegistration) (*entity.Account, error) {
	account := buildAccount(pending)

	err := m.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		pendingRepo := repoFactory.PendingRepo()

		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		if err := pendingRepo.Delete(ctx, pending.Email); err != nil {
			return errors.Wrap(err, "failed to delete pending registration")
		}

		return nil
	})

	if err != nil {
		// The rollback discarded the in-transaction pending delete; retry it
		// outside so the stale record does not linger. The attempt is not
		// silently lost: the caller gets a structured error either way.
		if deleteErr := m.deletePendingDirect(ctx, pending.Email); deleteErr != nil {
			m.log(ctx).Warn("Failed to delete pending record after failed materialization", slog.String("email", pending.Email), slog.Any("error", deleteErr))
		}

		if errors.Is(err, domainerrors.ErrAlreadyRegistered) {
			return nil, domainerrors.ErrAlreadyRegistered.WrapMessage("concurrent verification completed first")
		}

		return nil, domainerrors.ErrMaterializationFailed.WrapMessage(err.Error())
	}

	m.log(ctx).Info("Account materialized", slog.Any("accountID", account.ID), slog.Any("role", account.Role))

	return account, nil
}

func (m *accountMaterializer) deletePendingDirect(ctx context.Context, email string) error {
	return m.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.PendingRepo().Delete(ctx, email)
	})
}

// buildAccount maps a pending registration onto a fresh account entity.
// Customers are active immediately; shop owners stay unapproved until an
// administrator reviews the shop.
func buildAccount(pending *entity.PendingRegistration) *entity.Account {
	account := &entity.Account{
		Email:        pending.Email,
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		PasswordHash: pending.PasswordHash,
		Role:         pending.Role,
		IsActive:     true,
	}

	switch pending.Role {
	case entity.RoleShopOwner:
		account.IsApproved = false
		account.ShopOwnerProfile = &entity.ShopOwnerProfile{
			ShopName:   pending.Profile.ShopName,
			Address:    pending.Profile.Address,
			Phone:      pending.Profile.Phone,
			PostalCode: pending.Profile.PostalCode,
			City:       pending.Profile.City,
			MapAddress: pending.Profile.MapAddress,
			Latitude:   pending.Profile.Latitude,
			Longitude:  pending.Profile.Longitude,
			IsApproved: false,
		}
	case entity.RoleCustomer:
		account.IsApproved = true
		account.CustomerProfile = &entity.CustomerProfile{
			Phone:             pending.Profile.Phone,
			PreferredLocation: pending.Profile.PreferredLocation,
		}
	}

	return account
}
