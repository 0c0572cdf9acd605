// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByEmail retrieves a single account by canonical email, preloading its role-specific profile.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("ShopOwnerProfile").
		Where("email = ?", email).
		First(&accountM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toAccountDomain(&accountM), nil
}

// Create persists a new account entity, including its associated profile.
// GORM's Create with associations inserts into accounts plus the profile
// table in one statement batch.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAlreadyRegistered.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMaterializationFailed.WrapMessage("missing required account information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrMaterializationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	if account.CustomerProfile != nil && accountM.CustomerProfile != nil {
		account.CustomerProfile.AccountID = accountM.CustomerProfile.AccountID
		account.CustomerProfile.CreatedAt = accountM.CustomerProfile.CreatedAt
		account.CustomerProfile.UpdatedAt = accountM.CustomerProfile.UpdatedAt
	}
	if account.ShopOwnerProfile != nil && accountM.ShopOwnerProfile != nil {
		account.ShopOwnerProfile.AccountID = accountM.ShopOwnerProfile.AccountID
		account.ShopOwnerProfile.CreatedAt = accountM.ShopOwnerProfile.CreatedAt
		account.ShopOwnerProfile.UpdatedAt = accountM.ShopOwnerProfile.UpdatedAt
	}

	return nil
}

// Delete removes an account; its profile rows cascade.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:               data.ID,
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		PasswordHash:     data.PasswordHash,
		Role:             entity.Role(data.Role),
		IsApproved:       data.IsApproved,
		IsActive:         data.IsActive,
		CustomerProfile:  toCustomerProfileDomain(data.CustomerProfile),
		ShopOwnerProfile: toShopOwnerProfileDomain(data.ShopOwnerProfile),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:               data.ID,
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		PasswordHash:     data.PasswordHash,
		Role:             data.Role.String(),
		IsApproved:       data.IsApproved,
		IsActive:         data.IsActive,
		CustomerProfile:  fromCustomerProfileDomain(data.CustomerProfile),
		ShopOwnerProfile: fromShopOwnerProfileDomain(data.ShopOwnerProfile),
	}
}

func toCustomerProfileDomain(data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	return &entity.CustomerProfile{
		AccountID:         data.AccountID,
		Phone:             data.Phone,
		PreferredLocation: data.PreferredLocation,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromCustomerProfileDomain(data *entity.CustomerProfile) *model.CustomerProfileModel {
	if data == nil {
		return nil
	}

	return &model.CustomerProfileModel{
		AccountID:         data.AccountID,
		Phone:             data.Phone,
		PreferredLocation: data.PreferredLocation,
	}
}

func toShopOwnerProfileDomain(data *model.ShopOwnerProfileModel) *entity.ShopOwnerProfile {
	if data == nil {
		return nil
	}

	return &entity.ShopOwnerProfile{
		AccountID:  data.AccountID,
		ShopName:   data.ShopName,
		Address:    data.Address,
		Phone:      data.Phone,
		PostalCode: data.PostalCode,
		City:       data.City,
		MapAddress: data.MapAddress,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		IsApproved: data.IsApproved,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromShopOwnerProfileDomain(data *entity.ShopOwnerProfile) *model.ShopOwnerProfileModel {
	if data == nil {
		return nil
	}

	return &model.ShopOwnerProfileModel{
		AccountID:  data.AccountID,
		ShopName:   data.ShopName,
		Address:    data.Address,
		Phone:      data.Phone,
		PostalCode: data.PostalCode,
		City:       data.City,
		MapAddress: data.MapAddress,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		IsApproved: data.IsApproved,
	}
}
