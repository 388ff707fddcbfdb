// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "civic/internal/delivery/context"
	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	"civic/internal/domain/service"
	"civic/internal/errors"
	"civic/internal/usecase"

	"go.uber.org/fx"
)

// AccessTokenTTL is the lifetime of tokens issued by Login.
const AccessTokenTTL = time.Hour

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a citizen account after checking email then username availability.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.AccountView, error) {
	email := entity.NormalizeKey(input.Email)
	username := entity.NormalizeKey(input.Username)

	srv.log(ctx).Info("Starting registration", slog.String("email", email), slog.String("username", username))

	if err := srv.ensureEmailAvailable(ctx, email); err != nil {
		return nil, err
	}
	if err := srv.ensureUsernameAvailable(ctx, username); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Join(domainerrors.ErrPasswordHashFailed, err)
	}

	account := &entity.Account{
		Email:               email,
		Username:            username,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Role:                entity.RoleCitizen,
		PasswordHash:        passwordHash,
		FailedLoginAttempts: 0,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		// A concurrent registration can win the race between the checks above and the insert.
		if violation, ok := errors.AsTarget[*repository.ConstraintViolationError](err); ok {
			srv.log(ctx).Warn("Registration lost a uniqueness race", slog.String("field", string(violation.Field)))

			return nil, duplicateError(violation.Field)
		}

		srv.log(ctx).Error("Failed to create account", slog.Any("error", err))

		return nil, errors.WithMessage(err, "failed to create account")
	}

	srv.publishRegistered(ctx, account)

	srv.log(ctx).Debug("Registration completed", slog.Int64("accountID", account.ID))

	return account.View(), nil
}

// Login verifies credentials, maintains the failed-attempt counter and issues a token.
// The email is used as supplied; the store lookup itself is case-insensitive.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email, repository.FindOptions{IncludeSecret: true})
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Info("Login failed: unknown email")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.WithMessage(err, "failed to find account for login")
	}

	match, err := srv.hasher.Check(ctx, input.Password, account.PasswordHash)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to verify password")
	}

	if !match {
		attempts := account.FailedLoginAttempts + 1
		if err := srv.accountRepo.Update(ctx, account.ID, repository.AccountUpdate{FailedLoginAttempts: &attempts}); err != nil {
			srv.log(ctx).Error("Failed to record failed login", slog.Int64("accountID", account.ID), slog.Any("error", err))

			return nil, errors.WithMessage(err, "failed to record failed login")
		}

		srv.log(ctx).Info("Login failed: wrong password",
			slog.Int64("accountID", account.ID),
			slog.Int("failedLoginAttempts", attempts),
		)

		return nil, domainerrors.ErrInvalidCredentials
	}

	reset := 0
	loggedInAt := srv.now().UTC()
	if err := srv.accountRepo.Update(ctx, account.ID, repository.AccountUpdate{
		FailedLoginAttempts: &reset,
		LastLoginAt:         &loggedInAt,
	}); err != nil {
		return nil, errors.WithMessage(err, "failed to record successful login")
	}

	token, err := srv.tokenService.Issue(entity.Claims{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	}, AccessTokenTTL)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Join(domainerrors.ErrTokenIssueFailed, err)
	}

	srv.log(ctx).Info("Login succeeded", slog.Int64("accountID", account.ID))

	return &usecase.LoginOutput{
		Token: token,
		User:  account.View(),
	}, nil
}

func (srv *accountService) ensureEmailAvailable(ctx context.Context, email string) error {
	_, err := srv.accountRepo.FindByEmail(ctx, email, repository.FindOptions{})
	switch {
	case err == nil:
		srv.log(ctx).Info("Registration rejected: email taken", slog.String("email", email))

		return domainerrors.ErrDuplicateEmail
	case errors.Is(err, repository.ErrAccountNotFound):
		return nil
	default:
		return errors.WithMessage(err, "failed to check email availability")
	}
}

func (srv *accountService) ensureUsernameAvailable(ctx context.Context, username string) error {
	_, err := srv.accountRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		srv.log(ctx).Info("Registration rejected: username taken", slog.String("username", username))

		return domainerrors.ErrDuplicateUsername
	case errors.Is(err, repository.ErrAccountNotFound):
		return nil
	default:
		return errors.WithMessage(err, "failed to check username availability")
	}
}

// publishRegistered emits account.registered. Failures are logged and never fail the registration.
func (srv *accountService) publishRegistered(ctx context.Context, account *entity.Account) {
	if srv.publisher == nil {
		return
	}

	event := &entity.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       entity.AccountEventRegistered,
		AccountID:  account.ID,
		Email:      account.Email,
		Username:   account.Username,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("type", string(event.Type)),
			slog.Int64("accountID", account.ID),
			slog.Any("error", err),
		)
	}
}

func duplicateError(field repository.UniqueField) error {
	if field == repository.UniqueFieldUsername {
		return domainerrors.ErrDuplicateUsername
	}

	return domainerrors.ErrDuplicateEmail
}
