// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	"civic/internal/errors"
	"civic/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const liveAccount = "deleted_at IS NULL"

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db:  db,
		now: time.Now,
	}
}

// Create inserts a new account. Unique index violations are reported as
// *repository.ConstraintViolationError naming the clashing field.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if violation, ok := accountConstraintViolation(err); ok {
			return violation
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

// FindByEmail retrieves a live account by case-insensitive email. The password hash is
// only selected when opts.IncludeSecret is set; those reads go to the primary.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string, opts repository.FindOptions) (*entity.Account, error) {
	db := repo.db.WithContext(ctx)
	if opts.IncludeSecret {
		db = db.Clauses(dbresolver.Write)
	} else {
		db = db.Omit("password_hash")
	}

	var accountM model.AccountModel
	err := db.
		Where("lower(email) = lower(?)", email).
		Where(liveAccount).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByUsername retrieves a live account by case-insensitive username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Omit("password_hash").
		Where("lower(username) = lower(?)", username).
		Where(liveAccount).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by username")
	}

	return toAccountDomain(&accountM), nil
}

// Update merges the non-nil fields of the update into the live account with the given id.
func (repo *accountRepository) Update(ctx context.Context, id int64, fields repository.AccountUpdate) error {
	if fields.IsEmpty() {
		return nil
	}

	columns := map[string]any{
		"updated_at": repo.now(),
	}
	if fields.FailedLoginAttempts != nil {
		columns["failed_login_attempts"] = *fields.FailedLoginAttempts
	}
	if fields.LastLoginAt != nil {
		columns["last_login_at"] = *fields.LastLoginAt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Where(liveAccount).
		Updates(columns)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                  data.ID,
		Email:               data.Email,
		Username:            data.Username,
		FirstName:           data.FirstName,
		LastName:            data.LastName,
		Role:                entity.Role(data.Role),
		PasswordHash:        data.PasswordHash,
		FailedLoginAttempts: data.FailedLoginAttempts,
		LastLoginAt:         data.LastLoginAt,
		CreatedAt:           data.CreatedAt,
		DeletedAt:           data.DeletedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	role := data.Role
	if role == "" {
		role = entity.RoleCitizen
	}

	return &model.AccountModel{
		ID:                  data.ID,
		Email:               data.Email,
		Username:            data.Username,
		FirstName:           data.FirstName,
		LastName:            data.LastName,
		Role:                role.String(),
		PasswordHash:        data.PasswordHash,
		FailedLoginAttempts: data.FailedLoginAttempts,
		LastLoginAt:         data.LastLoginAt,
		DeletedAt:           data.DeletedAt,
	}
}
