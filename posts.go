package onsocial

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/goliatone/go-repository-bun"
)

// PostPayload is the write shape for creating or updating a post.
type PostPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks the payload: title 3-100, content 10-5000.
func (p PostPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title,
			validation.Required,
			validation.Length(3, 100),
		),
		validation.Field(&p.Content,
			validation.Required,
			validation.Length(10, 5000),
		),
	)
}

// PostResponse is the read shape for a post, with the author alias
// joined in.
type PostResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserID    string     `json:"user_id"`
	UserAlias string     `json:"user_alias,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func newPostResponse(post *Post) PostResponse {
	out := PostResponse{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   post.Content,
		UserID:    post.UserID.String(),
		CreatedAt: post.CreatedAt,
	}
	if post.User != nil {
		out.UserAlias = post.User.Alias
	}
	return out
}

// PostService implements the post operations over the repository.
type PostService struct {
	repo   RepositoryManager
	logger Logger
}

func NewPostService(repo RepositoryManager) *PostService {
	return &PostService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *PostService) WithLogger(l Logger) *PostService {
	if l != nil {
		s.logger = l
	}
	return s
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]PostResponse, error) {
	records, err := s.repo.Posts().ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list posts")
	}
	return mapPosts(records), nil
}

// ListByUser returns the posts authored by a given user.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]PostResponse, error) {
	records, err := s.repo.Posts().ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list posts by user")
	}
	return mapPosts(records), nil
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id string) (PostResponse, error) {
	record, err := s.repo.Posts().GetWithAuthor(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return PostResponse{}, NewPostNotFound(id)
		}
		return PostResponse{}, errors.Wrap(err, errors.CategoryInternal, "failed to get post")
	}
	return newPostResponse(record), nil
}

// Create stores a new post owned by the session subject.
func (s *PostService) Create(ctx context.Context, authorID string, payload PostPayload) (PostResponse, error) {
	if err := payload.Validate(); err != nil {
		return PostResponse{}, err
	}

	uid, err := uuid.Parse(authorID)
	if err != nil {
		return PostResponse{}, errors.Wrap(err, errors.CategoryBadInput, "invalid author id").
			WithCode(errors.CodeBadRequest)
	}

	record, err := s.repo.Posts().Create(ctx, &Post{
		Title:   payload.Title,
		Content: payload.Content,
		UserID:  uid,
	})
	if err != nil {
		return PostResponse{}, errors.Wrap(err, errors.CategoryInternal, "failed to create post")
	}

	return newPostResponse(record), nil
}

// Update rewrites the title and content of an existing post.
func (s *PostService) Update(ctx context.Context, id string, payload PostPayload) (PostResponse, error) {
	if err := payload.Validate(); err != nil {
		return PostResponse{}, err
	}

	record, err := s.repo.Posts().GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return PostResponse{}, NewPostNotFound(id)
		}
		return PostResponse{}, errors.Wrap(err, errors.CategoryInternal, "failed to load post")
	}

	record.Title = payload.Title
	record.Content = payload.Content

	record, err = s.repo.Posts().Update(ctx, record)
	if err != nil {
		return PostResponse{}, errors.Wrap(err, errors.CategoryInternal, "failed to update post")
	}

	return newPostResponse(record), nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	record, err := s.repo.Posts().GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return NewPostNotFound(id)
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load post")
	}

	if err := s.repo.Posts().DeleteByID(ctx, record.ID.String()); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete post")
	}

	return nil
}

func mapPosts(records []*Post) []PostResponse {
	out := make([]PostResponse, 0, len(records))
	for _, record := range records {
		out = append(out, newPostResponse(record))
	}
	return out
}
