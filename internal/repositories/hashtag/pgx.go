package hashtag

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/socialvibe/feedcore/internal/domain"
	"github.com/socialvibe/feedcore/internal/repositories"
	"github.com/socialvibe/feedcore/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pool *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pool:   pool,
		logger: logger.WithComponent("HashtagRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func trackUsageSQL(tag string) (string, []any, error) {
	return repositories.SqBuilder.
		Insert("hashtags").
		Columns("tag", "count", "last_used").
		Values(tag, 1, sq.Expr("now()")).
		Suffix("ON CONFLICT (tag) DO UPDATE SET count = hashtags.count + 1, last_used = now()").
		ToSql()
}

// topByRecencySQL orders trending candidates by recency first and count
// second, so a tag used moments ago outranks an all-time-popular stale one.
func topByRecencySQL(limit int) (string, []any, error) {
	return repositories.SqBuilder.
		Select("tag", "count", "last_used").
		From("hashtags").
		OrderBy("last_used DESC", "count DESC").
		Limit(uint64(limit)).
		ToSql()
}

func (r *Pgx) TrackUsage(ctx context.Context, tag string) error {
	query, args, err := trackUsageSQL(tag)
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return err
}

func (r *Pgx) TopByRecency(ctx context.Context, limit int) ([]domain.TagUsage, error) {
	query, args, err := topByRecencySQL(limit)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.TagUsage
	for rows.Next() {
		var usage domain.TagUsage
		if err := rows.Scan(&usage.Tag, &usage.Count, &usage.LastUsed); err != nil {
			return nil, err
		}
		tags = append(tags, usage)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
