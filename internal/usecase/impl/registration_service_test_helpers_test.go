package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"shopsmart/config"
	"shopsmart/internal/domain/entity"
	domainerrors "shopsmart/internal/domain/errors"
	"shopsmart/internal/domain/repository"
	"shopsmart/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Registration: &config.RegistrationConfig{
			CodeTTL:   15 * time.Minute,
			RecordTTL: 24 * time.Hour,
		},
	}

	return cfg
}

// fixedClock pins "now" so expiry windows are deterministic.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// sequenceCodeGenerator returns predictable codes: 111111, 222222, ...
type sequenceCodeGenerator struct {
	calls int
}

func (g *sequenceCodeGenerator) Generate() string {
	g.calls++
	digit := byte('0' + g.calls%10)

	code := make([]byte, entity.CodeLength)
	for i := range code {
		code[i] = digit
	}

	return string(code)
}

// recordingMailer captures sends and can be told to fail.
type recordingMailer struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	email string
	code  string
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}

	m.sent = append(m.sent, sentMail{email: email, code: code})

	return nil
}

// stubHasher avoids the bcrypt cost in unit tests.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("hash mismatch")
	}

	return nil
}

// fakeAccountRepo is an in-memory AccountRepository enforcing email uniqueness.
type fakeAccountRepo struct {
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	clone := *account

	return &clone, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if _, exists := r.accounts[account.Email]; exists {
		return domainerrors.ErrAlreadyRegistered.WrapMessage("email already exists")
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	clone := *account
	r.accounts[account.Email] = &clone

	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, account := range r.accounts {
		if account.ID == id {
			delete(r.accounts, email)

			return nil
		}
	}

	return nil
}

// fakeTxManager executes the callback without real transaction semantics.
// failWith fails the next failures calls to Execute, then recovers.
type fakeTxManager struct {
	accountRepo *fakeAccountRepo
	pendingRepo repository.PendingRegistrationRepository
	failWith    error
	failures    int
}

type fakeRepoFactory struct {
	accountRepo *fakeAccountRepo
	pendingRepo repository.PendingRegistrationRepository
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository { return f.accountRepo }

func (f *fakeRepoFactory) PendingRepo() repository.PendingRegistrationRepository {
	return f.pendingRepo
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if tm.failWith != nil && tm.failures > 0 {
		tm.failures--

		return tm.failWith
	}

	return fn(&fakeRepoFactory{accountRepo: tm.accountRepo, pendingRepo: tm.pendingRepo})
}

// registrationFixtures holds all test dependencies for registration service tests.
type registrationFixtures struct {
	service      *registrationService
	materializer *accountMaterializer
	accountRepo  *fakeAccountRepo
	pendingRepo  repository.PendingRegistrationRepository
	txManager    *fakeTxManager
	mailer       *recordingMailer
	clock        *fixedClock
	codes        *sequenceCodeGenerator
}

func createTestRegistrationService() *registrationFixtures {
	accountRepo := newFakeAccountRepo()
	pendingRepo := memory.NewPendingRegistrationRepository()
	mailer := &recordingMailer{}
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	codes := &sequenceCodeGenerator{}
	logger := newDiscardLogger()

	txManager := &fakeTxManager{accountRepo: accountRepo, pendingRepo: pendingRepo}
	materializer := &accountMaterializer{
		txManager: txManager,
		logger:    logger,
	}

	cfg := newTestConfig()
	service := &registrationService{
		accountRepo:  accountRepo,
		pendingRepo:  pendingRepo,
		materializer: materializer,
		hasher:       stubHasher{},
		codes:        codes,
		mailer:       mailer,
		clock:        clock,
		codeTTL:      cfg.CodeTTL(),
		recordTTL:    cfg.RecordTTL(),
		logger:       logger,
	}

	return &registrationFixtures{
		service:      service,
		materializer: materializer,
		accountRepo:  accountRepo,
		pendingRepo:  pendingRepo,
		txManager:    txManager,
		mailer:       mailer,
		clock:        clock,
		codes:        codes,
	}
}
