package users

import (
	"time"

	"github.com/userdesk/userdesk-backend/pkg/db/models"
	"github.com/userdesk/userdesk-backend/pkg/enums"
	"github.com/userdesk/userdesk-backend/pkg/pagination"
)

// UserDTO is the transport shape of a user record.
type UserDTO struct {
	ID            uint      `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	ContactNumber *string   `json:"contactNumber"`
	Gender        *string   `json:"gender"`
	IsDeleted     bool      `json:"isDeleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListResult pairs one page of users with its pagination metadata.
type ListResult struct {
	Users      []UserDTO           `json:"users"`
	Pagination pagination.PageInfo `json:"pagination"`
}

// CreateUserInput holds the normalized fields required to persist a new user.
type CreateUserInput struct {
	FullName      string
	Email         string
	ContactNumber *string
	Gender        *enums.Gender
}

// UpdateUserInput holds the optional fields of a partial update. Nil means
// absent: the stored value is left untouched.
type UpdateUserInput struct {
	FullName      *string
	Email         *string
	ContactNumber *string
	Gender        *enums.Gender
}

func (u UpdateUserInput) empty() bool {
	return u.FullName == nil && u.Email == nil && u.ContactNumber == nil && u.Gender == nil
}

// FromModel maps a stored user to its DTO.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	var gender *string
	if u.Gender != nil {
		value := u.Gender.String()
		gender = &value
	}

	return &UserDTO{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		Gender:        gender,
		IsDeleted:     u.IsDeleted,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// FromModelList maps a slice of stored users to DTOs. The result is never nil
// so an empty page serializes as [] rather than null.
func FromModelList(records []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out
}

func (c CreateUserInput) toModel() *models.User {
	return &models.User{
		FullName:      c.FullName,
		Email:         c.Email,
		ContactNumber: c.ContactNumber,
		Gender:        c.Gender,
	}
}
