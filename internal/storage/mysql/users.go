package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
)

func scanUser(s rowScanner, seq *int64) (domain.User, error) {
	var u domain.User
	var username, email sql.NullString
	dest := []any{&u.ID, &username, &email}
	if seq != nil {
		dest = append([]any{seq}, dest...)
	}
	if err := s.Scan(dest...); err != nil {
		return u, err
	}
	u.Username, u.Email = ptrStr(username), ptrStr(email)
	return u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var seq int64
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserSQL, id), &seq)
	if errors.Is(err, sql.ErrNoRows) {
		return u, notFound("user", id)
	}
	return u, err
}

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		id, err := nextID(ctx, tx, countUsersForUpdateSQL)
		if err != nil {
			return err
		}
		u.ID = id
		_, err = tx.ExecContext(ctx, insertUserSQL, u.ID, valStr(u.Username), valStr(u.Email))
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	observability.ObserveStore("mysql", "user", "create")
	return u, nil
}

func (r *Repo) UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (domain.User, error) {
	var u domain.User
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		var err error
		u, err = scanUser(tx.QueryRowContext(ctx, getUserSQL+" FOR UPDATE", id), &seq)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("user", id)
		}
		if err != nil {
			return err
		}
		p.Apply(&u)
		_, err = tx.ExecContext(ctx, updateUserSQL, valStr(u.Username), valStr(u.Email), seq)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	observability.ObserveStore("mysql", "user", "update")
	return u, nil
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	return r.deleteFirst(ctx, deleteUserSQL, "user", id)
}
