package onsocial

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// UserStore is the narrow persistence surface the identity resolver
// needs. The concrete implementation lives in repo_users.go.
type UserStore interface {
	GetByAlias(ctx context.Context, alias string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByAlias(ctx context.Context, alias string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserProvider resolves identifiers to identities and verifies
// credentials. It is read-only over the user store.
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity resolves the identifier, compares the password, and
// returns the verified identity. The identifier can be either an
// alias or an email; alias is tried first, then email.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identifier without checking
// credentials, e.g. to rehydrate an identity from validated claims.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return identityFromUser(user), nil
}

// AliasAvailable reports whether no account currently holds the alias.
func (u *UserProvider) AliasAvailable(ctx context.Context, alias string) (bool, error) {
	taken, err := u.store.ExistsByAlias(ctx, strings.TrimSpace(alias))
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check alias availability")
	}
	return !taken, nil
}

// EmailAvailable reports whether no account currently holds the email.
func (u *UserProvider) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := u.store.ExistsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check email availability")
	}
	return !taken, nil
}

func (u *UserProvider) findByIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrMissingIdentifier
	}

	user, err := u.store.GetByAlias(ctx, identifier)
	if err == nil {
		return user, nil
	}

	if !isNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	user, err = u.store.GetByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}

	if isNotFound(err) {
		return nil, NewIdentityNotFound(identifier)
	}

	return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
}

func isNotFound(err error) bool {
	return errors.IsNotFound(err) || repository.IsRecordNotFound(err)
}

func identityFromUser(user *User) Identity {
	user.EnsureRole()
	return authIdentity{
		id:    user.ID.String(),
		alias: user.Alias,
		email: user.Email,
		role:  string(user.Role),
	}
}

type authIdentity struct {
	id    string
	alias string
	email string
	role  string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Alias() string {
	return a.alias
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Role() string {
	return a.role
}

var _ Identity = authIdentity{}
