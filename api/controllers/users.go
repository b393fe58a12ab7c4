package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/userdesk/userdesk-backend/api/responses"
	"github.com/userdesk/userdesk-backend/api/validators"
	usersvc "github.com/userdesk/userdesk-backend/internal/users"
	"github.com/userdesk/userdesk-backend/pkg/enums"
	pkgerrors "github.com/userdesk/userdesk-backend/pkg/errors"
	"github.com/userdesk/userdesk-backend/pkg/logger"
)

// ListUsers handles the filtered, paginated user listing.
func ListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		filter, err := usersvc.ParseListFilter(r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetUser returns a single user by ID. Soft-deleted records stay hidden
// unless includeDeleted=true is passed.
func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		includeDeleted := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("includeDeleted")), "true")

		ctx := userContext(r, logg, id)
		user, err := svc.GetByID(ctx, id, includeDeleted)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// CreateUser handles user creation.
func CreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// UpdateUser applies a partial update to an existing user.
func UpdateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := userContext(r, logg, id)

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// SoftDeleteUser marks a user as deleted without removing the row.
func SoftDeleteUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := userContext(r, logg, id)
		user, err := svc.SoftDelete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, user, "User soft deleted successfully")
	}
}

// RestoreUser clears the deleted flag on a soft-deleted user.
func RestoreUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := userContext(r, logg, id)
		user, err := svc.Restore(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, user, "User restored successfully")
	}
}

// userContext scopes the request logger to the target user so error logs
// carry the id.
func userContext(r *http.Request, logg *logger.Logger, id uint) context.Context {
	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithUserID(ctx, id)
	}
	return ctx
}

type createUserRequest struct {
	FullName      string  `json:"fullName" validate:"required,max=255"`
	Email         string  `json:"email" validate:"required,email,max=255"`
	ContactNumber *string `json:"contactNumber,omitempty" validate:"omitempty,max=50"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}

func (r createUserRequest) toInput() (usersvc.CreateUserInput, error) {
	input := usersvc.CreateUserInput{
		FullName: strings.TrimSpace(r.FullName),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
	}

	// The required tag only catches the empty string; a whitespace-only name
	// must also be rejected once trimmed.
	if input.FullName == "" {
		return usersvc.CreateUserInput{}, pkgerrors.Validation([]pkgerrors.FieldError{
			{Field: "fullName", Message: "fullName is required"},
		})
	}

	if r.ContactNumber != nil {
		if contact := strings.TrimSpace(*r.ContactNumber); contact != "" {
			input.ContactNumber = &contact
		}
	}

	if r.Gender != nil {
		gender, err := enums.ParseGender(*r.Gender)
		if err != nil {
			return usersvc.CreateUserInput{}, pkgerrors.Validation([]pkgerrors.FieldError{
				{Field: "gender", Message: "Gender must be one of: " + strings.Join(enums.GenderValues(), ", ")},
			})
		}
		input.Gender = &gender
	}

	return input, nil
}

type updateUserRequest struct {
	FullName      *string `json:"fullName,omitempty" validate:"omitempty,max=255"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	ContactNumber *string `json:"contactNumber,omitempty" validate:"omitempty,max=50"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}

func (r updateUserRequest) toInput() (usersvc.UpdateUserInput, error) {
	var input usersvc.UpdateUserInput

	if r.FullName != nil {
		name := strings.TrimSpace(*r.FullName)
		if name == "" {
			return usersvc.UpdateUserInput{}, pkgerrors.Validation([]pkgerrors.FieldError{
				{Field: "fullName", Message: "fullName must not be empty"},
			})
		}
		input.FullName = &name
	}

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		if email == "" {
			return usersvc.UpdateUserInput{}, pkgerrors.Validation([]pkgerrors.FieldError{
				{Field: "email", Message: "Email must be a valid email address"},
			})
		}
		input.Email = &email
	}

	if r.ContactNumber != nil {
		contact := strings.TrimSpace(*r.ContactNumber)
		input.ContactNumber = &contact
	}

	if r.Gender != nil {
		gender, err := enums.ParseGender(*r.Gender)
		if err != nil {
			return usersvc.UpdateUserInput{}, pkgerrors.Validation([]pkgerrors.FieldError{
				{Field: "gender", Message: "Gender must be one of: " + strings.Join(enums.GenderValues(), ", ")},
			})
		}
		input.Gender = &gender
	}

	return input, nil
}
