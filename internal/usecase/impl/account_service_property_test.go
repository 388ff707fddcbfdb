package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"civic/config"
	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	"civic/internal/domain/service"
	"civic/internal/infra/auth"
	"civic/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryAccountStore is an in-memory AccountRepository with the same matching rules
// as the PostgreSQL store: case-insensitive keys, live records only, unique keys.
type memoryAccountStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*entity.Account
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{accounts: make(map[int64]*entity.Account)}
}

func (s *memoryAccountStore) Create(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if !existing.IsLive() {
			continue
		}
		if strings.EqualFold(existing.Email, account.Email) {
			return &repository.ConstraintViolationError{Field: repository.UniqueFieldEmail}
		}
		if strings.EqualFold(existing.Username, account.Username) {
			return &repository.ConstraintViolationError{Field: repository.UniqueFieldUsername}
		}
	}

	s.nextID++
	stored := *account
	stored.ID = s.nextID
	stored.CreatedAt = time.Now().UTC()
	s.accounts[stored.ID] = &stored

	account.ID = stored.ID
	account.CreatedAt = stored.CreatedAt

	return nil
}

func (s *memoryAccountStore) find(match func(*entity.Account) bool, includeSecret bool) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.IsLive() && match(account) {
			found := *account
			if !includeSecret {
				found.PasswordHash = ""
			}

			return &found, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (s *memoryAccountStore) FindByEmail(_ context.Context, email string, opts repository.FindOptions) (*entity.Account, error) {
	return s.find(func(a *entity.Account) bool { return strings.EqualFold(a.Email, email) }, opts.IncludeSecret)
}

func (s *memoryAccountStore) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	return s.find(func(a *entity.Account) bool { return strings.EqualFold(a.Username, username) }, false)
}

func (s *memoryAccountStore) Update(_ context.Context, id int64, fields repository.AccountUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok || !account.IsLive() {
		return repository.ErrAccountNotFound
	}
	if fields.FailedLoginAttempts != nil {
		account.FailedLoginAttempts = *fields.FailedLoginAttempts
	}
	if fields.LastLoginAt != nil {
		loggedIn := *fields.LastLoginAt
		account.LastLoginAt = &loggedIn
	}

	return nil
}

func (s *memoryAccountStore) get(id int64) entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.accounts[id]
}

func (s *memoryAccountStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

type realStack struct {
	store   *memoryAccountStore
	hasher  service.PasswordHasher
	tokens  service.TokenService
	service usecase.AccountUsecase
}

func newRealStack(t *testing.T) realStack {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.Env = "test"
	cfg.JWT.Secret = "property-test-secret"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewJWTService(auth.TokenParams{Config: cfg, Logger: logger})
	require.NoError(t, err)

	store := newMemoryAccountStore()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost, 4)

	return realStack{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		service: NewAccountService(AccountServiceParams{
			AccountRepo:  store,
			Hasher:       hasher,
			TokenService: tokens,
			Logger:       logger,
		}),
	}
}

func TestAccountProperty_RegisterStoresVerifiableHash(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	view, err := stack.service.Register(ctx, usecase.RegisterInput{
		Email: "Jane@Example.com", Username: "Jane", Password: "hunter22",
	})
	require.NoError(t, err)

	stored := stack.store.get(view.ID)
	assert.Equal(t, "jane@example.com", stored.Email)
	assert.Equal(t, "jane", stored.Username)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.Zero(t, stored.FailedLoginAttempts)
	assert.Nil(t, stored.LastLoginAt)

	ok, err := stack.hasher.Check(ctx, "hunter22", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccountProperty_DuplicateEmailAnyCasingLeavesStoreUnchanged(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	_, err := stack.service.Register(ctx, usecase.RegisterInput{Email: "a@b.co", Username: "first", Password: "secret123"})
	require.NoError(t, err)
	before := stack.store.get(1)

	for _, email := range []string{"a@b.co", "A@B.CO", " a@B.co "} {
		_, err := stack.service.Register(ctx, usecase.RegisterInput{Email: email, Username: "second", Password: "secret123"})
		assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail, email)
	}

	assert.Equal(t, 1, stack.store.count())
	assert.Equal(t, before, stack.store.get(1))
}

func TestAccountProperty_DuplicateUsernameAnyCasing(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	_, err := stack.service.Register(ctx, usecase.RegisterInput{Email: "a@b.co", Username: "Citizen", Password: "secret123"})
	require.NoError(t, err)

	_, err = stack.service.Register(ctx, usecase.RegisterInput{Email: "c@d.co", Username: "CITIZEN", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateUsername)
	assert.Equal(t, 1, stack.store.count())
}

func TestAccountProperty_ConcurrentRegistrationOneWinner(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	const racers = 8
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := range racers {
		wg.Go(func() {
			_, errs[i] = stack.service.Register(ctx, usecase.RegisterInput{
				Email:    "race@example.com",
				Username: fmt.Sprintf("racer%d", i),
				Password: "secret123",
			})
		})
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, stack.store.count())
}

func TestAccountProperty_LoginSuccessResetsCounterAndIssuesToken(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	view, err := stack.service.Register(ctx, usecase.RegisterInput{Email: "john@example.com", Username: "john", Password: "secret123"})
	require.NoError(t, err)

	for range 2 {
		_, err := stack.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "nope"})
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
	require.Equal(t, 2, stack.store.get(view.ID).FailedLoginAttempts)

	before := time.Now()
	out, err := stack.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "secret123"})
	require.NoError(t, err)

	stored := stack.store.get(view.ID)
	assert.Zero(t, stored.FailedLoginAttempts)
	require.NotNil(t, stored.LastLoginAt)
	assert.False(t, stored.LastLoginAt.Before(before.Add(-time.Second)))

	claims, err := stack.tokens.Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, view.ID, claims.AccountID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, entity.RoleCitizen, claims.Role)
	assert.Equal(t, view, out.User)
}

func TestAccountProperty_FailuresAccumulateWithoutLockout(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	view, err := stack.service.Register(ctx, usecase.RegisterInput{Email: "john@example.com", Username: "john", Password: "secret123"})
	require.NoError(t, err)

	for range 3 {
		_, err := stack.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "wrong-password"})
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
	assert.Equal(t, 3, stack.store.get(view.ID).FailedLoginAttempts)

	_, err = stack.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Zero(t, stack.store.get(view.ID).FailedLoginAttempts)
}

func TestAccountProperty_UnknownEmailAndWrongPasswordFailAlike(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	_, err := stack.service.Register(ctx, usecase.RegisterInput{Email: "john@example.com", Username: "john", Password: "secret123"})
	require.NoError(t, err)

	_, unknownErr := stack.service.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "secret123"})
	_, wrongErr := stack.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "wrong"})

	assert.Equal(t, unknownErr, wrongErr)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, unknownErr)
}

// Login does not normalize the email it receives. The store compares case-insensitively,
// so only surrounding whitespace makes a registered account unreachable.
func TestAccountProperty_LoginEmailIsNotNormalized(t *testing.T) {
	stack := newRealStack(t)
	ctx := context.Background()

	_, err := stack.service.Register(ctx, usecase.RegisterInput{Email: "john@example.com", Username: "john", Password: "secret123"})
	require.NoError(t, err)

	_, err = stack.service.Login(ctx, usecase.LoginInput{Email: "JOHN@example.com", Password: "secret123"})
	assert.NoError(t, err)

	_, err = stack.service.Login(ctx, usecase.LoginInput{Email: "  john@example.com ", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
