package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unifly-app/unifly/domain/account"
	"github.com/unifly-app/unifly/domain/repository"
	"github.com/unifly-app/unifly/internal/database"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Role      string    `gorm:"column:role"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName sets the GORM table name.
func (UserModel) TableName() string { return "users" }

// userMapper maps between account.User and UserModel.
type userMapper struct{}

func (userMapper) ToDomain(e UserModel) account.User {
	return account.NewUser(e.UserID, e.Email, e.Name, account.Role(e.Role), account.Status(e.Status)).
		WithTimestamps(e.CreatedAt, e.UpdatedAt)
}

func (userMapper) ToModel(u account.User) UserModel {
	return UserModel{
		UserID:    u.UserID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      string(u.Role()),
		Status:    string(u.Status()),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

// AccountStore persists user accounts in the relational database.
type AccountStore struct {
	database.Repository[account.User, UserModel]
	db     database.Database
	logger *slog.Logger
}

// NewAccountStore creates an AccountStore and migrates the users table.
func NewAccountStore(db database.Database, logger *slog.Logger) (*AccountStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := db.GORM().AutoMigrate(&UserModel{}); err != nil {
		return nil, fmt.Errorf("migrate users table: %w", err)
	}
	return &AccountStore{
		Repository: database.NewRepository[account.User, UserModel](db, userMapper{}, "user"),
		db:         db,
		logger:     logger,
	}, nil
}

// Save upserts a user keyed on user_id.
func (s *AccountStore) Save(ctx context.Context, user account.User) error {
	model := s.Mapper().ToModel(user)
	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "name", "role", "status", "updated_at",
			}),
		}).Create(&model).Error
	})
}

// Get returns the user with the given application-level user ID.
func (s *AccountStore) Get(ctx context.Context, userID int64) (account.User, error) {
	return s.FindOne(ctx, repository.WithUserID(userID))
}

// GetByEmail returns the user with the given email.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (account.User, error) {
	return s.FindOne(ctx, repository.WithEmail(email))
}

// List returns users matching the given options, newest first.
func (s *AccountStore) List(ctx context.Context, options ...repository.Option) ([]account.User, error) {
	options = append(options, repository.WithOrderDesc("created_at"))
	return s.Find(ctx, options...)
}

// Delete removes the user with the given application-level user ID.
func (s *AccountStore) Delete(ctx context.Context, userID int64) error {
	return s.DeleteBy(ctx, repository.WithUserID(userID))
}
