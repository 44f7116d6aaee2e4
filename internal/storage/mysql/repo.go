package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func ptrStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
func ptrInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// likeContains builds a case-insensitive LIKE pattern matching q anywhere.
func likeContains(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}

type Repo struct{ db *sql.DB }

var _ domain.Repository = (*Repo)(nil)

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// nextID returns count+1 for the table counted by countSQL, locking it for the tx.
func nextID(ctx context.Context, tx *sql.Tx, countSQL string) (int64, error) {
	var n int64
	if err := tx.QueryRowContext(ctx, countSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n + 1, nil
}

func notFound(collection string, id int64) error {
	observability.ObserveStore("mysql", collection, "miss")
	return fmt.Errorf("%s %d: %w", collection, id, domain.ErrNotFound)
}

// deleteFirst removes the first row with id and reports a miss as ErrNotFound.
func (r *Repo) deleteFirst(ctx context.Context, q, collection string, id int64) error {
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(collection, id)
	}
	observability.ObserveStore("mysql", collection, "delete")
	return nil
}

// Seed loads data into every table that is still empty, keeping the given ids.
func (r *Repo) Seed(ctx context.Context, data domain.SeedData) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if n, err := nextID(ctx, tx, countDestinationsForUpdateSQL); err != nil {
			return err
		} else if n == 1 {
			for _, d := range data.Destinations {
				if _, err := tx.ExecContext(ctx, insertDestinationSQL, d.ID, valStr(d.Name), valStr(d.Description), valStr(d.Image)); err != nil {
					return fmt.Errorf("seed destination %d: %w", d.ID, err)
				}
			}
		}
		if n, err := nextID(ctx, tx, countUsersForUpdateSQL); err != nil {
			return err
		} else if n == 1 {
			for _, u := range data.Users {
				if _, err := tx.ExecContext(ctx, insertUserSQL, u.ID, valStr(u.Username), valStr(u.Email)); err != nil {
					return fmt.Errorf("seed user %d: %w", u.ID, err)
				}
			}
		}
		if n, err := nextID(ctx, tx, countCommentsForUpdateSQL); err != nil {
			return err
		} else if n == 1 {
			for _, c := range data.Comments {
				if _, err := tx.ExecContext(ctx, insertCommentSQL, c.ID, valInt64(c.DestinationID), valInt64(c.UserID), valStr(c.Text)); err != nil {
					return fmt.Errorf("seed comment %d: %w", c.ID, err)
				}
			}
		}
		return nil
	})
}

// ---- destinations ----

type rowScanner interface{ Scan(dest ...any) error }

func scanDestination(s rowScanner, seq *int64) (domain.Destination, error) {
	var d domain.Destination
	var name, desc, img sql.NullString
	dest := []any{&d.ID, &name, &desc, &img}
	if seq != nil {
		dest = append([]any{seq}, dest...)
	}
	if err := s.Scan(dest...); err != nil {
		return d, err
	}
	d.Name, d.Description, d.Image = ptrStr(name), ptrStr(desc), ptrStr(img)
	return d, nil
}

func (r *Repo) ListDestinations(ctx context.Context, name string) ([]domain.Destination, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if name == "" {
		rows, err = r.db.QueryContext(ctx, listDestinationsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, listDestinationsByNameSQL, likeContains(name))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	var seq int64
	d, err := scanDestination(r.db.QueryRowContext(ctx, getDestinationSQL, id), &seq)
	if errors.Is(err, sql.ErrNoRows) {
		return d, notFound("destination", id)
	}
	return d, err
}

func (r *Repo) CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		id, err := nextID(ctx, tx, countDestinationsForUpdateSQL)
		if err != nil {
			return err
		}
		d.ID = id
		_, err = tx.ExecContext(ctx, insertDestinationSQL, d.ID, valStr(d.Name), valStr(d.Description), valStr(d.Image))
		return err
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("create destination: %w", err)
	}
	observability.ObserveStore("mysql", "destination", "create")
	return d, nil
}

func (r *Repo) UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	var d domain.Destination
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		var err error
		d, err = scanDestination(tx.QueryRowContext(ctx, getDestinationSQL+" FOR UPDATE", id), &seq)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("destination", id)
		}
		if err != nil {
			return err
		}
		p.Apply(&d)
		_, err = tx.ExecContext(ctx, updateDestinationSQL, valStr(d.Name), valStr(d.Description), valStr(d.Image), seq)
		return err
	})
	if err != nil {
		return domain.Destination{}, err
	}
	observability.ObserveStore("mysql", "destination", "update")
	return d, nil
}

func (r *Repo) DeleteDestination(ctx context.Context, id int64) error {
	return r.deleteFirst(ctx, deleteDestinationSQL, "destination", id)
}
