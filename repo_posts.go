package onsocial

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Posts exposes the post repository surface.
type Posts interface {
	repository.Repository[*Post]

	Create(ctx context.Context, record *Post, criteria ...repository.InsertCriteria) (*Post, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Post, criteria ...repository.InsertCriteria) (*Post, error)

	ListAll(ctx context.Context) ([]*Post, error)
	ListByUserID(ctx context.Context, userID string) ([]*Post, error)
	GetWithAuthor(ctx context.Context, id string) (*Post, error)

	// OwnerID reads only the owning user id for a post. Missing posts
	// surface as record-not-found.
	OwnerID(ctx context.Context, postID string) (string, error)

	DeleteByID(ctx context.Context, id string) error
}

type posts struct {
	repository.Repository[*Post]
	db *bun.DB
}

var (
	_ Posts                        = (*posts)(nil)
	_ repository.Repository[*Post] = (*posts)(nil)
	_ postOwnerLookup              = (*posts)(nil)
)

func NewPostsRepository(db *bun.DB) Posts {
	repo := repository.NewRepository[*Post](db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &posts{
		Repository: repo,
		db:         db,
	}
}

func (a *posts) Create(ctx context.Context, record *Post, criteria ...repository.InsertCriteria) (*Post, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *posts) CreateTx(ctx context.Context, tx bun.IDB, record *Post, criteria ...repository.InsertCriteria) (*Post, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *posts) ListAll(ctx context.Context) ([]*Post, error) {
	var records []*Post
	err := a.db.NewSelect().
		Model(&records).
		Relation("User").
		Order("pst.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *posts) ListByUserID(ctx context.Context, userID string) ([]*Post, error) {
	var records []*Post
	err := a.db.NewSelect().
		Model(&records).
		Relation("User").
		Where("?TableAlias.user_id = ?", userID).
		Order("pst.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *posts) GetWithAuthor(ctx context.Context, id string) (*Post, error) {
	record := &Post{}
	err := a.db.NewSelect().
		Model(record).
		Relation("User").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *posts) DeleteByID(ctx context.Context, id string) error {
	_, err := a.db.NewDelete().
		Model((*Post)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	return err
}

func (a *posts) OwnerID(ctx context.Context, postID string) (string, error) {
	var ownerID string
	err := a.db.NewSelect().
		Model((*Post)(nil)).
		Column("pst.user_id").
		Where("?TableAlias.id = ?", postID).
		Limit(1).
		Scan(ctx, &ownerID)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return "", repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": postID,
				})
		}
		return "", err
	}

	return ownerID, nil
}
