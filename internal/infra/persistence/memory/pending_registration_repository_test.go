package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsmart/internal/domain/entity"
	"shopsmart/internal/domain/repository"
)

func newPending(email string, createdAt time.Time) *entity.PendingRegistration {
	return &entity.PendingRegistration{
		Email:            email,
		FirstName:        "Ama",
		LastName:         "Mensah",
		PasswordHash:     "$2a$10$hash",
		Role:             entity.RoleCustomer,
		VerificationCode: "123456",
		CreatedAt:        createdAt,
		LastSentAt:       createdAt,
	}
}

func TestUpsertAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPendingRegistrationRepository()
	now := time.Now()

	_, err := repo.GetByEmail(ctx, "ama@example.com")
	require.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)

	require.NoError(t, repo.Upsert(ctx, newPending("ama@example.com", now)))

	got, err := repo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.VerificationCode)

	// Upsert replaces in place.
	replacement := newPending("ama@example.com", now)
	replacement.VerificationCode = "654321"
	require.NoError(t, repo.Upsert(ctx, replacement))

	got, err = repo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", got.VerificationCode)
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPendingRegistrationRepository()
	require.NoError(t, repo.Upsert(ctx, newPending("ama@example.com", time.Now())))

	first, err := repo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	first.VerificationCode = "mutated"

	second, err := repo.GetByEmail(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", second.VerificationCode)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPendingRegistrationRepository()
	require.NoError(t, repo.Upsert(ctx, newPending("ama@example.com", time.Now())))

	require.NoError(t, repo.Delete(ctx, "ama@example.com"))
	_, err := repo.GetByEmail(ctx, "ama@example.com")
	assert.ErrorIs(t, err, repository.ErrPendingRegistrationNotFound)

	// Deleting an absent record is not an error.
	assert.NoError(t, repo.Delete(ctx, "ama@example.com"))
}

func TestDeleteExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPendingRegistrationRepository()
	now := time.Now()

	require.NoError(t, repo.Upsert(ctx, newPending("old@example.com", now.Add(-25*time.Hour))))
	require.NoError(t, repo.Upsert(ctx, newPending("older@example.com", now.Add(-48*time.Hour))))
	require.NoError(t, repo.Upsert(ctx, newPending("fresh@example.com", now)))

	deleted, err := repo.DeleteExpired(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.GetByEmail(ctx, "fresh@example.com")
	assert.NoError(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPendingRegistrationRepository()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_ = repo.Upsert(ctx, newPending("race@example.com", now))
			_, _ = repo.GetByEmail(ctx, "race@example.com")
			_, _ = repo.DeleteExpired(ctx, now.Add(-time.Hour))
		}()
	}
	wg.Wait()

	got, err := repo.GetByEmail(ctx, "race@example.com")
	require.NoError(t, err)
	assert.Equal(t, "race@example.com", got.Email)
}
