package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jobfair/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByIdentifier resolves a login identifier that may be either a name
	// or an email. A name match wins over an email match.
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetInformation(ctx context.Context, id string, information bool) error
	SetLastLogout(ctx context.Context, id string, at time.Time) error
	LastLogout(ctx context.Context, id string) (*time.Time, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// profileColumns are the columns Update writes. The information flag and the
// last logout have their own setters and must not be overwritten by a stale copy.
var profileColumns = []string{"name", "email", "password_hash", "company", "cif", "dni", "studies", "updated_at"}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Model(user).Select(profileColumns).Updates(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("name = ? OR email = ?", identifier, identifier).
		Order("created_at").
		Limit(2).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range users {
		if users[i].Name == identifier {
			return &users[i], nil
		}
	}
	return &users[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetInformation does not report a missing user: MySQL counts an update that
// leaves the value unchanged as zero affected rows.
func (r *userRepository) SetInformation(ctx context.Context, id string, information bool) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("information", information).Error
}

func (r *userRepository) SetLastLogout(ctx context.Context, id string, at time.Time) error {
	return r.updateColumn(ctx, id, "last_logout", at)
}

func (r *userRepository) LastLogout(ctx context.Context, id string) (*time.Time, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Select("id", "last_logout").
		Where("id = ?", id).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	return user.LastLogout, nil
}

func (r *userRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
