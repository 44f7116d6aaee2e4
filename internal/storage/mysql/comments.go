package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
)

func scanComment(s rowScanner, seq *int64) (domain.Comment, error) {
	var c domain.Comment
	var destID, userID sql.NullInt64
	var text sql.NullString
	dest := []any{&c.ID, &destID, &userID, &text}
	if seq != nil {
		dest = append([]any{seq}, dest...)
	}
	if err := s.Scan(dest...); err != nil {
		return c, err
	}
	c.DestinationID, c.UserID, c.Text = ptrInt64(destID), ptrInt64(userID), ptrStr(text)
	return c, nil
}

func (r *Repo) ListComments(ctx context.Context, q domain.CommentsQuery) ([]domain.Comment, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if q.DestinationID != nil {
		rows, err = r.db.QueryContext(ctx, listCommentsByDestinationSQL, *q.DestinationID)
	} else {
		rows, err = r.db.QueryContext(ctx, listCommentsSQL)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	var seq int64
	c, err := scanComment(r.db.QueryRowContext(ctx, getCommentSQL, id), &seq)
	if errors.Is(err, sql.ErrNoRows) {
		return c, notFound("comment", id)
	}
	return c, err
}

func (r *Repo) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		id, err := nextID(ctx, tx, countCommentsForUpdateSQL)
		if err != nil {
			return err
		}
		c.ID = id
		_, err = tx.ExecContext(ctx, insertCommentSQL, c.ID, valInt64(c.DestinationID), valInt64(c.UserID), valStr(c.Text))
		return err
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	observability.ObserveStore("mysql", "comment", "create")
	return c, nil
}

func (r *Repo) UpdateComment(ctx context.Context, id int64, p domain.CommentPatch) (domain.Comment, error) {
	var c domain.Comment
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		var err error
		c, err = scanComment(tx.QueryRowContext(ctx, getCommentSQL+" FOR UPDATE", id), &seq)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("comment", id)
		}
		if err != nil {
			return err
		}
		p.Apply(&c)
		_, err = tx.ExecContext(ctx, updateCommentSQL, valStr(c.Text), seq)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	observability.ObserveStore("mysql", "comment", "update")
	return c, nil
}

func (r *Repo) DeleteComment(ctx context.Context, id int64) error {
	return r.deleteFirst(ctx, deleteCommentSQL, "comment", id)
}
