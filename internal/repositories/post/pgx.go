package post

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/repositories"
	"github.com/socialvibe/feedcore/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const postColumns = "id, author_id, created_at, visibility, hashtags, expires_at"

type Pgx struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pool *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pool:   pool,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// notExpired excludes ephemeral content past its expiry from every query.
var notExpired = sq.Expr("(expires_at IS NULL OR expires_at > now())")

// visibleTo is the privacy predicate for a viewer: own posts, public posts,
// friends posts on mutual follow, close-friends posts on an explicit
// membership row. No membership row means no close-friends access.
func visibleTo(viewerID string) sq.Sqlizer {
	return sq.Or{
		sq.Eq{"author_id": viewerID},
		sq.Eq{"visibility": domain.VisibilityPublic},
		sq.Expr(
			`(visibility = 'friends'
				AND EXISTS (SELECT 1 FROM follows f1 WHERE f1.follower_id = ? AND f1.followee_id = posts.author_id)
				AND EXISTS (SELECT 1 FROM follows f2 WHERE f2.follower_id = posts.author_id AND f2.followee_id = ?))`,
			viewerID, viewerID,
		),
		sq.Expr(
			`(visibility = 'close_friends'
				AND EXISTS (SELECT 1 FROM close_friends cf WHERE cf.owner_id = posts.author_id AND cf.member_id = ?))`,
			viewerID,
		),
	}
}

func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"id": id}).
		Where(notExpired).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	row := p.pool.QueryRow(ctx, query, args...)
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (p *Pgx) ListFollowing(ctx context.Context, viewerID, before string, limit int) ([]*domain.Post, error) {
	builder := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(notExpired).
		Where(sq.Or{
			sq.Expr(`author_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)`, viewerID),
			sq.Eq{"author_id": viewerID},
			sq.Eq{"visibility": domain.VisibilityPublic},
		}).
		Where(visibleTo(viewerID)).
		OrderBy("id DESC").
		Limit(uint64(limit))

	if before != "" {
		builder = builder.Where(sq.Lt{"id": before})
	}

	return p.list(ctx, builder)
}

func (p *Pgx) ListLatest(ctx context.Context, viewerID, before string, limit int) ([]*domain.Post, error) {
	builder := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(notExpired).
		Where(visibleTo(viewerID)).
		OrderBy("id DESC").
		Limit(uint64(limit))

	if before != "" {
		builder = builder.Where(sq.Lt{"id": before})
	}

	return p.list(ctx, builder)
}

func (p *Pgx) ListRecentPublic(ctx context.Context, since time.Time, limit int) ([]*domain.Post, error) {
	builder := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(notExpired).
		Where(sq.Eq{"visibility": domain.VisibilityPublic}).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	return p.list(ctx, builder)
}

func (p *Pgx) ListByHashtags(ctx context.Context, tags []string, limit int) ([]*domain.Post, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	builder := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(notExpired).
		Where(sq.Eq{"visibility": domain.VisibilityPublic}).
		Where(sq.Expr("hashtags && ?", tags)).
		OrderBy("id DESC").
		Limit(uint64(limit))

	return p.list(ctx, builder)
}

func (p *Pgx) list(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Post, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.CreatedAt,
		&post.Visibility,
		&post.Hashtags,
		&post.ExpiresAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}
