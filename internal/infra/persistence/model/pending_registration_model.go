package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"shopsmart/internal/domain/entity"
)

// ProfileFieldsJSON stores the role-specific profile snapshot as a jsonb
// column, so customer and shop owner registrations share one table.
type ProfileFieldsJSON entity.ProfileFields

// Value implements driver.Valuer for jsonb serialization.
func (p ProfileFieldsJSON) Value() (driver.Value, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal profile fields")
	}

	return string(raw), nil
}

// Scan implements sql.Scanner for jsonb deserialization.
func (p *ProfileFieldsJSON) Scan(value any) error {
	if value == nil {
		*p = ProfileFieldsJSON{}

		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported profile fields column type %T", value)
	}

	return errors.Wrap(json.Unmarshal(raw, p), "failed to unmarshal profile fields")
}

// PendingRegistrationModel is the GORM-specific struct for the
// 'pending_registrations' table. Email is the primary key; a re-registration
// after code expiry replaces the row in place.
type PendingRegistrationModel struct {
	Email            string            `gorm:"type:varchar(255);primary_key"`
	FirstName        string            `gorm:"type:varchar(100);not null"`
	LastName         string            `gorm:"type:varchar(100);not null"`
	PasswordHash     string            `gorm:"type:varchar(255);not null"`
	Role             string            `gorm:"type:varchar(50);not null"`
	Profile          ProfileFieldsJSON `gorm:"type:jsonb;not null"`
	VerificationCode string            `gorm:"type:varchar(6);not null"`
	CreatedAt        time.Time         `gorm:"not null;index:idx_pending_registrations_created_at"`
	LastSentAt       time.Time         `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PendingRegistrationModel) TableName() string {
	return "pending_registrations"
}
