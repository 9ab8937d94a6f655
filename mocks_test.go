package onsocial_test

import (
	"context"

	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements onsocial.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByAlias(ctx context.Context, alias string) (*onsocial.User, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onsocial.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*onsocial.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onsocial.User), args.Error(1)
}

func (m *MockUserStore) ExistsByAlias(ctx context.Context, alias string) (bool, error) {
	args := m.Called(ctx, alias)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockOwnerLookup provides the single column owner read for the posts
// ownership resolver.
type MockOwnerLookup struct {
	mock.Mock
}

func (m *MockOwnerLookup) OwnerID(ctx context.Context, postID string) (string, error) {
	args := m.Called(ctx, postID)
	return args.String(0), args.Error(1)
}

// testIdentity is a plain value identity for token tests
type testIdentity struct {
	id    string
	alias string
	email string
	role  string
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Alias() string { return t.alias }
func (t testIdentity) Email() string { return t.email }
func (t testIdentity) Role() string  { return t.role }
