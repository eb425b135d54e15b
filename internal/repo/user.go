package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/models"
)

const bootstrapAttempts = 3

// CreateUserBootstrap assigns the role inside the same transaction as the
// insert: the first user ever stored becomes Superadmin, everyone after that
// a Customer. Count and insert run under SERIALIZABLE isolation; READ
// COMMITTED would let two concurrent first registrations both count an empty
// table and both commit as Superadmin. The losing transaction aborts with a
// serialization failure and is retried.
func (r *GormRepo) CreateUserBootstrap(ctx context.Context, user *models.User) error {
	var err error
	for attempt := 0; attempt < bootstrapAttempts; attempt++ {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
				return err
			}
			user.Role = models.RoleCustomer
			if count == 0 {
				user.Role = models.RoleSuperadmin
			}
			return tx.Create(user).Error
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// isSerializationFailure reports SQLSTATE 40001, the retryable abort a
// SERIALIZABLE transaction fails with when it loses a concurrent conflict.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) UpdateUserProfile(ctx context.Context, id, firstName, lastName, email string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) UpdateUserRole(ctx context.Context, id, role string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
