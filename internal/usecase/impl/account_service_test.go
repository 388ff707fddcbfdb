package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	mockRepo "civic/internal/mocks/repository"
	mockSvc "civic/internal/mocks/service"
	"civic/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      *accountService
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	svc := NewAccountService(AccountServiceParams{
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Publisher:    publisher,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*accountService)
	svc.now = func() time.Time { return fixedNow }

	return accountServiceFixtures{
		service:      svc,
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
	}
}

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     "john@example.com",
		Username:  "johndoe",
		Password:  "secret123",
		FirstName: "John",
		LastName:  "Doe",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(nil, repository.ErrAccountNotFound)
	fx.hasher.EXPECT().Hash(ctx, "secret123").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			assert.Equal(t, "hashed_password", account.PasswordHash)
			assert.Equal(t, entity.RoleCitizen, account.Role)
			assert.Zero(t, account.FailedLoginAttempts)
			account.ID = 1
			account.CreatedAt = fixedNow
		}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.MatchedBy(func(event *entity.AccountEvent) bool {
			return event.Type == entity.AccountEventRegistered && event.AccountID == 1 && event.Email == "john@example.com"
		})).
		Return(nil)

	view, err := fx.service.Register(ctx, validRegisterInput())

	require.NoError(t, err)
	assert.Equal(t, &entity.AccountView{
		ID:        1,
		Email:     "john@example.com",
		Username:  "johndoe",
		FirstName: "John",
		LastName:  "Doe",
		Role:      entity.RoleCitizen,
		CreatedAt: fixedNow,
	}, view)
}

func TestAccountService_Register_NormalizesKeys(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	input := validRegisterInput()
	input.Email = "  John@Example.COM "
	input.Username = " JohnDoe"

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(nil, repository.ErrAccountNotFound)
	fx.hasher.EXPECT().Hash(ctx, "secret123").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(account *entity.Account) bool {
			return account.Email == "john@example.com" && account.Username == "johndoe"
		})).
		Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(nil)

	view, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "john@example.com", view.Email)
	assert.Equal(t, "johndoe", view.Username)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, "john@example.com", repository.FindOptions{}).
		Return(&entity.Account{ID: 9, Email: "john@example.com"}, nil)

	view, err := fx.service.Register(ctx, validRegisterInput())

	assert.Nil(t, view)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	fx.accountRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	fx.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_EmailCheckedBeforeUsername(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	// Both keys are taken; only the email collision may be reported.
	fx.accountRepo.EXPECT().
		FindByEmail(ctx, "john@example.com", repository.FindOptions{}).
		Return(&entity.Account{ID: 9}, nil)

	_, err := fx.service.Register(ctx, validRegisterInput())

	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	assert.NotErrorIs(t, err, domainerrors.ErrDuplicateUsername)
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(&entity.Account{ID: 3}, nil)

	_, err := fx.service.Register(ctx, validRegisterInput())

	assert.ErrorIs(t, err, domainerrors.ErrDuplicateUsername)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
}

func TestAccountService_Register_StoreConstraintViolation(t *testing.T) {
	tests := []struct {
		name  string
		field repository.UniqueField
		want  error
	}{
		{name: "email race", field: repository.UniqueFieldEmail, want: domainerrors.ErrDuplicateEmail},
		{name: "username race", field: repository.UniqueFieldUsername, want: domainerrors.ErrDuplicateUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			ctx := context.Background()

			fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, repository.ErrAccountNotFound)
			fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(nil, repository.ErrAccountNotFound)
			fx.hasher.EXPECT().Hash(ctx, "secret123").Return("hashed_password", nil)
			fx.accountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Return(&repository.ConstraintViolationError{Field: tt.field, Err: errors.New("23505")})

			view, err := fx.service.Register(ctx, validRegisterInput())

			assert.Nil(t, view)
			assert.ErrorIs(t, err, tt.want)
			fx.publisher.AssertNotCalled(t, "PublishAccountEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestAccountService_Register_StoreFailurePropagates(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	storeErr := domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to find account by email")

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, storeErr)

	_, err := fx.service.Register(ctx, validRegisterInput())

	require.Error(t, err)
	dbErr, ok := errors.Cause(err).(*domainerrors.DatabaseExecuteError)
	require.True(t, ok)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", dbErr.ErrorCode())
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(nil, repository.ErrAccountNotFound)
	fx.hasher.EXPECT().Hash(ctx, "secret123").Return("", context.Canceled)

	_, err := fx.service.Register(ctx, validRegisterInput())

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	assert.ErrorIs(t, err, context.Canceled)
	fx.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_PublishFailureDoesNotFail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{}).Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(nil, repository.ErrAccountNotFound)
	fx.hasher.EXPECT().Hash(ctx, "secret123").Return("hashed_password", nil)
	fx.accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(errors.New("topic unavailable"))

	view, err := fx.service.Register(ctx, validRegisterInput())

	require.NoError(t, err)
	assert.NotNil(t, view)
}

func storedAccount() *entity.Account {
	return &entity.Account{
		ID:                  7,
		Email:               "john@example.com",
		Username:            "johndoe",
		Role:                entity.RoleCitizen,
		PasswordHash:        "hashed_password",
		FailedLoginAttempts: 2,
		CreatedAt:           fixedNow.Add(-24 * time.Hour),
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	account := storedAccount()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{IncludeSecret: true}).Return(account, nil)
	fx.hasher.EXPECT().Check(ctx, "secret123", "hashed_password").Return(true, nil)
	fx.accountRepo.EXPECT().
		Update(ctx, int64(7), mock.MatchedBy(func(update repository.AccountUpdate) bool {
			return update.FailedLoginAttempts != nil && *update.FailedLoginAttempts == 0 &&
				update.LastLoginAt != nil && update.LastLoginAt.Equal(fixedNow)
		})).
		Return(nil)
	fx.tokenService.EXPECT().
		Issue(entity.Claims{AccountID: 7, Email: "john@example.com", Role: entity.RoleCitizen}, time.Hour).
		Return("signed.jwt.token", nil)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", out.Token)
	assert.Equal(t, int64(7), out.User.ID)
	assert.Equal(t, "johndoe", out.User.Username)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "ghost@example.com", repository.FindOptions{IncludeSecret: true}).Return(nil, repository.ErrAccountNotFound)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "secret123"})

	assert.Nil(t, out)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, err)
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Login_WrongPasswordIncrementsCounter(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{IncludeSecret: true}).Return(storedAccount(), nil)
	fx.hasher.EXPECT().Check(ctx, "wrong", "hashed_password").Return(false, nil)
	fx.accountRepo.EXPECT().
		Update(ctx, int64(7), mock.MatchedBy(func(update repository.AccountUpdate) bool {
			return update.FailedLoginAttempts != nil && *update.FailedLoginAttempts == 3 && update.LastLoginAt == nil
		})).
		Return(nil)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "wrong"})

	assert.Nil(t, out)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, err)
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestAccountService_Login_CounterUpdateFailurePropagates(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	storeErr := domainerrors.NewDatabaseExecuteError(errors.New("deadlock"), "failed to update account")

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{IncludeSecret: true}).Return(storedAccount(), nil)
	fx.hasher.EXPECT().Check(ctx, "wrong", "hashed_password").Return(false, nil)
	fx.accountRepo.EXPECT().Update(ctx, int64(7), mock.Anything).Return(storeErr)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Same(t, storeErr, errors.Cause(err))
}

func TestAccountService_Login_TokenIssueFailure(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{IncludeSecret: true}).Return(storedAccount(), nil)
	fx.hasher.EXPECT().Check(ctx, "secret123", "hashed_password").Return(true, nil)
	fx.accountRepo.EXPECT().Update(ctx, int64(7), mock.Anything).Return(nil)
	fx.tokenService.EXPECT().Issue(mock.Anything, time.Hour).Return("", errors.New("sign failed"))

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "secret123"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrTokenIssueFailed)
}

func TestAccountService_Login_CheckErrorPropagates(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "john@example.com", repository.FindOptions{IncludeSecret: true}).Return(storedAccount(), nil)
	fx.hasher.EXPECT().Check(ctx, "secret123", "hashed_password").Return(false, context.DeadlineExceeded)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "john@example.com", Password: "secret123"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
