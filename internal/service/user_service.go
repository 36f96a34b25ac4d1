package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobfair/internal/auth"
	"jobfair/internal/cache"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository"
)

// CreateUserInput is the data accepted when an admin creates an account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
	Company  string
	CIF      string
	DNI      string
	Studies  string
}

// UpdateUserInput holds the mutable user fields. Nil fields are left
// unchanged; the role cannot be changed.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Company  *string
	CIF      *string
	DNI      *string
	Studies  *string
}

// UserService exposes domain operations.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo       repository.UserRepository
	hasher     auth.Hasher
	identities cache.IdentityCache
	logger     logrus.FieldLogger
}

// NewUserService builds a UserService. identities is the login cache that
// must forget a user whenever its credentials change.
func NewUserService(repo repository.UserRepository, hasher auth.Hasher, identities cache.IdentityCache, logger logrus.FieldLogger) UserService {
	return &userService{repo: repo, hasher: hasher, identities: identities, logger: logger}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, apperrors.Validation(apperrors.MsgMissingFields)
	}
	if !in.Role.Valid() {
		return nil, apperrors.Validation(apperrors.MsgInvalidRole)
	}
	if err := checkName(in.Name); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}
	switch in.Role {
	case model.RoleCompany:
		if in.Company == "" || in.CIF == "" {
			return nil, apperrors.Validation(apperrors.MsgMissingFields)
		}
		user.Company = in.Company
		user.CIF = in.CIF
		user.StandID = uuid.NewString()
	case model.RoleVisitor:
		if in.DNI == "" || in.Studies == "" {
			return nil, apperrors.Validation(apperrors.MsgMissingFields)
		}
		user.DNI = in.DNI
		user.Studies = in.Studies
	}

	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Dependency("hash password", err)
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation(apperrors.MsgEmailInUse)
		}
		return nil, apperrors.Dependency("create user", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user created")
	return user, nil
}

// checkName rejects names that could shadow another user's email at login,
// where a name match wins over an email match.
func checkName(name string) error {
	if strings.Contains(name, "@") {
		return apperrors.Validation(apperrors.MsgInvalidName)
	}
	return nil
}

// ensureEmailFree fails when email belongs to a user other than selfID.
func (s *userService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.Validation(apperrors.MsgEmailInUse)
	case err != nil && !isNotFound(err):
		return apperrors.Dependency("check email", err)
	}
	return nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find user", err, MsgUserNotFound)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Dependency("list users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find user", err, MsgUserNotFound)
	}
	oldName, oldEmail := user.Name, user.Email

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.Validation(apperrors.MsgMissingFields)
		}
		if err := checkName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, apperrors.Validation(apperrors.MsgMissingFields)
		}
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, apperrors.Validation(apperrors.MsgMissingFields)
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperrors.Dependency("hash password", err)
		}
		user.PasswordHash = hash
	}
	setIf(&user.Company, in.Company)
	setIf(&user.CIF, in.CIF)
	setIf(&user.DNI, in.DNI)
	setIf(&user.Studies, in.Studies)

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation(apperrors.MsgEmailInUse)
		}
		return nil, apperrors.Dependency("update user", err)
	}

	s.forget(oldName, oldEmail, user.Name, user.Email)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeError("find user", err, MsgUserNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("delete user", err, MsgUserNotFound)
	}
	s.forget(user.Name, user.Email)
	s.logger.WithField("user_id", id).Info("user deleted")
	return nil
}

// forget drops every login identifier of a user from the identity cache.
func (s *userService) forget(keys ...string) {
	for _, k := range keys {
		if k != "" {
			s.identities.Delete(k)
		}
	}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
