package follow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
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
		logger: logger.WithComponent("FollowRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (r *Pgx) Following(ctx context.Context, userID string) ([]string, error) {
	query, args, err := repositories.SqBuilder.
		Select("followee_id").
		From("follows").
		Where(sq.Eq{"follower_id": userID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *Pgx) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From("follows").
		Where(sq.Eq{"follower_id": followerID, "followee_id": followeeID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *Pgx) IsCloseFriend(ctx context.Context, ownerID, memberID string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From("close_friends").
		Where(sq.Eq{"owner_id": ownerID, "member_id": memberID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *Pgx) FollowerCount(ctx context.Context, userID string) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("COUNT(*)").
		From("follows").
		Where(sq.Eq{"followee_id": userID}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
