package onsocial

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	Alias          string `json:"alias"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
	Password       string `json:"password"`
	UseHashid      bool   `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate checks the registration payload against the account rules:
// alias 3-50, valid email, names 2-50, password 8-22 with at least one
// upper case letter and one digit.
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Alias,
			validation.Required,
			validation.Length(3, 50),
		),
		validation.Field(&e.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(&e.FirstName,
			validation.Required,
			validation.Length(2, 50),
		),
		validation.Field(&e.LastName,
			validation.Required,
			validation.Length(2, 50),
		),
		validation.Field(&e.Password,
			validation.Required,
			validation.Length(8, 22),
			validation.By(passwordStrength),
		),
	)
}

func passwordStrength(value any) error {
	password, _ := value.(string)

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return errors.New("must contain at least one upper case letter")
	}

	if !hasDigit {
		return errors.New("must contain at least one digit")
	}

	return nil
}

// RegisterUserHandler runs account registration inside a transaction.
// The account role is always USER; the payload cannot grant itself
// anything else.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	alias := strings.TrimSpace(event.Alias)
	email := strings.TrimSpace(event.Email)

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if taken, err := h.repo.Users().ExistsByAliasTx(ctx, tx, alias); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check alias")
		} else if taken {
			return ErrAliasTaken
		}

		if taken, err := h.repo.Users().ExistsByEmailTx(ctx, tx, email); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email")
		} else if taken {
			return ErrEmailTaken
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.PasswordHash = hash
		user.Alias = alias
		user.Email = email
		user.FirstName = strings.TrimSpace(event.FirstName)
		user.LastName = strings.TrimSpace(event.LastName)
		user.ProfilePicture = event.ProfilePicture
		user.Role = RoleUser
		if event.UseHashid {
			if id, err := hashid.NewUUID(email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, err
	}

	return user, nil
}
