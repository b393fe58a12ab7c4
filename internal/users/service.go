package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/userdesk/userdesk-backend/pkg/db"
	"github.com/userdesk/userdesk-backend/pkg/db/models"
	pkgerrors "github.com/userdesk/userdesk-backend/pkg/errors"
	"github.com/userdesk/userdesk-backend/pkg/pagination"
)

type userRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
	SetDeleted(ctx context.Context, id uint, deleted bool) (*models.User, error)
	ListWithCount(ctx context.Context, filter ListFilter) ([]models.User, int64, error)
}

// Service exposes user operations.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	GetByID(ctx context.Context, id uint, includeDeleted bool) (*UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*UserDTO, error)
	SoftDelete(ctx context.Context, id uint) (*UserDTO, error)
	Restore(ctx context.Context, id uint) (*UserDTO, error)
}

type service struct {
	repo userRepository
}

// NewService builds a user service with the provided repository.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

// List runs the validated filter through the store and assembles the page.
func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	records, total, err := s.repo.ListWithCount(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return &ListResult{
		Users:      FromModelList(records),
		Pagination: pagination.NewPageInfo(filter.Page, filter.Limit, total),
	}, nil
}

// GetByID loads one user. A record that exists but is soft-deleted is reported
// as not found unless includeDeleted is set; callers cannot tell "never
// existed" from "hidden".
func (s *service) GetByID(ctx context.Context, id uint, includeDeleted bool) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted && !includeDeleted {
		return nil, notFound(id)
	}
	return FromModel(user), nil
}

// Create persists a new user after checking email uniqueness across the whole
// store, deleted records included. The unique index backstops the check under
// concurrent creates.
func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, input.toModel())
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, emailExists()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

// Update applies a partial overwrite. Soft-deleted records are not updatable;
// they must be restored first. The email uniqueness re-check only runs when
// the email actually changes.
func (s *service) Update(ctx context.Context, id uint, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, notFound(id)
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
	}

	if input.empty() {
		return FromModel(user), nil
	}

	fields := map[string]any{}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.ContactNumber != nil {
		fields["contact_number"] = *input.ContactNumber
	}
	if input.Gender != nil {
		fields["gender"] = *input.Gender
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, emailExists()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(updated), nil
}

// SoftDelete marks the record deleted. Deleting an already-deleted record is a
// conflict, not a no-op.
func (s *service) SoftDelete(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "User is already deleted")
	}

	updated, err := s.repo.SetDeleted(ctx, id, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete user")
	}
	return FromModel(updated), nil
}

// Restore clears the deleted flag. Restoring an active record is a conflict.
func (s *service) Restore(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "User is not deleted")
	}

	updated, err := s.repo.SetDeleted(ctx, id, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore user")
	}
	return FromModel(updated), nil
}

func (s *service) findUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return user, nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return emailExists()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email uniqueness")
}

func notFound(id uint) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("User with ID %d not found", id))
}

func emailExists() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "A user with this email already exists")
}
