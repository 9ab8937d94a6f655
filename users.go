package onsocial

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// UserPayload is the write shape for self-service profile updates.
// There is no role field: accounts cannot change their own role and
// no endpoint promotes users.
type UserPayload struct {
	Alias          string `json:"alias"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
}

func (p UserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Alias,
			validation.Required,
			validation.Length(3, 50),
		),
		validation.Field(&p.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(&p.FirstName,
			validation.Required,
			validation.Length(2, 50),
		),
		validation.Field(&p.LastName,
			validation.Required,
			validation.Length(2, 50),
		),
	)
}

// UserResponse is the read shape for an account. The password hash
// never leaves the model layer.
type UserResponse struct {
	ID             string     `json:"id"`
	Alias          string     `json:"alias"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Role           string     `json:"role"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

func newUserResponse(user *User) UserResponse {
	user.EnsureRole()
	return UserResponse{
		ID:             user.ID.String(),
		Alias:          user.Alias,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		ProfilePicture: user.ProfilePicture,
		Role:           string(user.Role),
		CreatedAt:      user.CreatedAt,
	}
}

// UserService implements account operations over the repository.
type UserService struct {
	repo   RepositoryManager
	logger Logger
}

func NewUserService(repo RepositoryManager) *UserService {
	return &UserService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	if l != nil {
		s.logger = l
	}
	return s
}

// List returns every account, oldest first.
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	records, err := s.repo.Users().ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}

	out := make([]UserResponse, 0, len(records))
	for _, record := range records {
		out = append(out, newUserResponse(record))
	}
	return out, nil
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id string) (UserResponse, error) {
	record, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return UserResponse{}, NewUserNotFound(id)
		}
		return UserResponse{}, errors.Wrap(err, errors.CategoryInternal, "failed to get user")
	}
	return newUserResponse(record), nil
}

// Update rewrites the profile fields of an account. The role column is
// left untouched regardless of input.
func (s *UserService) Update(ctx context.Context, id string, payload UserPayload) (UserResponse, error) {
	if err := payload.Validate(); err != nil {
		return UserResponse{}, err
	}

	alias := strings.TrimSpace(payload.Alias)
	email := strings.TrimSpace(payload.Email)

	var updated *User
	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// every read inside the tx must use the tx connection; a pool
		// read would wait on the connection the tx already holds
		record, err := s.repo.Users().GetByIDTx(ctx, tx, id)
		if err != nil {
			if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
				return NewUserNotFound(id)
			}
			return errors.Wrap(err, errors.CategoryInternal, "failed to load user")
		}

		if alias != record.Alias {
			if taken, err := s.repo.Users().ExistsByAliasTx(ctx, tx, alias); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to check alias")
			} else if taken {
				return ErrAliasTaken
			}
		}

		if email != record.Email {
			if taken, err := s.repo.Users().ExistsByEmailTx(ctx, tx, email); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to check email")
			} else if taken {
				return ErrEmailTaken
			}
		}

		record.Alias = alias
		record.Email = email
		record.FirstName = strings.TrimSpace(payload.FirstName)
		record.LastName = strings.TrimSpace(payload.LastName)
		record.ProfilePicture = payload.ProfilePicture

		updated, err = s.repo.Users().UpdateTx(ctx, tx, record)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to update user")
		}
		return nil
	})

	if err != nil {
		return UserResponse{}, err
	}

	return newUserResponse(updated), nil
}

// Delete removes an account; its posts cascade away with it.
func (s *UserService) Delete(ctx context.Context, id string) error {
	record, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return NewUserNotFound(id)
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}

	if err := s.repo.Users().DeleteByID(ctx, record.ID.String()); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	return nil
}
