package repositories

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx).Model(&models.User{})
}

// FindByEmail looks up a user by exact email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.query(ctx).Where("email = ?", email).First(&user)
	return user, translate("find user by email", err)
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.query(ctx).Where("id = ?", id).First(&user)
	return user, translate("find user", err)
}

// EmailExists reports whether any account already uses email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.query(ctx).Where("email = ?", email).Count()
	if err != nil {
		return false, translate("count users", err)
	}
	return n > 0, nil
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate("create user", orm.New(r.db).WithContext(ctx).Create(user))
}

// SetRole changes the role of the account registered under email.
func (r *UserRepository) SetRole(ctx context.Context, email string, role models.Role) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("role", role)
	if res.Error != nil {
		return translate("set role", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
