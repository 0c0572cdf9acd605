package postgres

import (
	"context"
	"time"

	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pendingRegistrationRepository implements the domain's
// PendingRegistrationRepository interface using GORM.
type pendingRegistrationRepository struct {
	db *gorm.DB
}

// NewPendingRegistrationRepository is the constructor for pendingRegistrationRepository.
func NewPendingRegistrationRepository(db *gorm.DB) repository.PendingRegistrationRepository {
	return &pendingRegistrationRepository{db: db}
}

// GetByEmail retrieves the pending registration for a canonical email.
func (repo *pendingRegistrationRepository) GetByEmail(ctx context.Context, email string) (*entity.PendingRegistration, error) {
	var pendingM model.PendingRegistrationModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&pendingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPendingRegistrationNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending registration by email")
	}

	return toPendingDomain(&pendingM), nil
}

// Upsert creates or replaces the pending registration keyed by its email.
// ON CONFLICT keeps concurrent re-registrations last-writer-wins without a
// read-modify-write cycle.
func (repo *pendingRegistrationRepository) Upsert(ctx context.Context, pending *entity.PendingRegistration) error {
	pendingM := fromPendingDomain(pending)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).
		Create(pendingM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert pending registration")
	}

	return nil
}

// Delete removes the pending registration for a canonical email.
// Deleting an absent record is not an error.
func (repo *pendingRegistrationRepository) Delete(ctx context.Context, email string) error {
	result := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&model.PendingRegistrationModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete pending registration")
	}

	return nil
}

// DeleteExpired removes every record created before the threshold and returns
// the number deleted.
func (repo *pendingRegistrationRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Delete(&model.PendingRegistrationModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired pending registrations")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toPendingDomain converts a GORM PendingRegistrationModel to a domain entity.
func toPendingDomain(data *model.PendingRegistrationModel) *entity.PendingRegistration {
	if data == nil {
		return nil
	}

	return &entity.PendingRegistration{
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		PasswordHash:     data.PasswordHash,
		Role:             entity.Role(data.Role),
		Profile:          entity.ProfileFields(data.Profile),
		VerificationCode: data.VerificationCode,
		CreatedAt:        data.CreatedAt,
		LastSentAt:       data.LastSentAt,
	}
}

// fromPendingDomain converts a domain entity to a GORM PendingRegistrationModel.
func fromPendingDomain(data *entity.PendingRegistration) *model.PendingRegistrationModel {
	if data == nil {
		return nil
	}

	return &model.PendingRegistrationModel{
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		PasswordHash:     data.PasswordHash,
		Role:             data.Role.String(),
		Profile:          model.ProfileFieldsJSON(data.Profile),
		VerificationCode: data.VerificationCode,
		CreatedAt:        data.CreatedAt,
		LastSentAt:       data.LastSentAt,
	}
}
