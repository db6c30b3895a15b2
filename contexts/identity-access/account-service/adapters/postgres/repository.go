package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus/contexts/identity-access/account-service/domain/entities"
	domainerrors "campus/contexts/identity-access/account-service/domain/errors"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

type userModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	FullName     string    `gorm:"column:full_name"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.UserID,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Role:         authzentities.Role(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

// Repository is the Postgres account adapter.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModel{
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("created_at, user_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&userModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteAdminGuarded locks all admin rows FOR UPDATE inside one transaction,
// so two concurrent deletes of the last two admins serialize and the second
// observes the reduced count.
func (r *Repository) DeleteAdminGuarded(ctx context.Context, userID string) (bool, bool, error) {
	var deleted, lastAdmin bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admins []userModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("role = ?", string(authzentities.RoleAdmin)).
			Find(&admins).Error; err != nil {
			return err
		}

		found := false
		for _, admin := range admins {
			if admin.UserID == userID {
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		if len(admins) <= 1 {
			lastAdmin = true
			return nil
		}

		result := tx.Where("user_id = ?", userID).Delete(&userModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return deleted, lastAdmin, nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("role = ?", string(authzentities.RoleAdmin)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
