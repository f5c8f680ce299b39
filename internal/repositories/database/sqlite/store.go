// Package sqlite implements the repository ports on an embedded SQLite database.
// The store keeps a single connection, and every unit of work is an immediate
// write transaction, so units of work never interleave.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

// Store implements the group and ledger repositories over one *sql.DB.
type Store struct {
	db *sql.DB
}

// New wraps an open database. The schema must already be migrated.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// NewRepositoryProvider wires the store into every repository port.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	s := New(db)
	return portsrepo.RepositoryProvider{GroupRepo: s, Ledger: s, Close: s.Close}
}

var (
	_ portsrepo.GroupRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerStore           = (*Store)(nil)
)

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func toUnix(t time.Time) int64 { return t.UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n).UTC() }

// --- groups ---

func (s *Store) SaveGroup(ctx context.Context, group domain.Group) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO ledger_groups (group_id, created_at, created_by) VALUES (?, ?, ?)`,
			group.GroupID, toUnix(group.CreatedAt), group.CreatedBy)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, group.GroupID)
			}
			return apperrors.NewAppError(500, "failed to insert group "+group.GroupID, err)
		}
		for i, m := range group.Members {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO group_members (group_id, account_id, position, added_at) VALUES (?, ?, ?, ?)`,
				group.GroupID, m, i, toUnix(group.CreatedAt)); err != nil {
				return apperrors.NewAppError(500, "failed to insert group member", err)
			}
		}
		return nil
	})
}

func (s *Store) AddGroupMembers(ctx context.Context, groupID string, accountIDs []string, addedAt time.Time) ([]string, error) {
	var added []string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var next sql.NullInt64
		err := tx.QueryRowContext(ctx, `
			SELECT (SELECT MAX(position) + 1 FROM group_members WHERE group_id = g.group_id)
			FROM ledger_groups g WHERE g.group_id = ?`, groupID).Scan(&next)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrGroupNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to read member positions", err)
		}
		position := next.Int64

		for _, id := range accountIDs {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO group_members (group_id, account_id, position, added_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (group_id, account_id) DO NOTHING`,
				groupID, id, position, toUnix(addedAt))
			if err != nil {
				return apperrors.NewAppError(500, "failed to add group member", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				continue
			}
			added = append(added, id)
			position++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	var (
		group     domain.Group
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT group_id, created_at, created_by FROM ledger_groups WHERE group_id = ?`, groupID,
	).Scan(&group.GroupID, &createdAt, &group.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrGroupNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query group", err)
	}
	group.CreatedAt = fromUnix(createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id FROM group_members WHERE group_id = ? ORDER BY position`, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query group members", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group member", err)
		}
		group.Members = append(group.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read group members", err)
	}
	return &group, nil
}

func (s *Store) ListGroupsByAccountID(ctx context.Context, accountID string) ([]domain.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id FROM group_members WHERE account_id = ? ORDER BY seq`, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query groups for account", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan group id", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read groups for account", err)
	}

	groups := make([]domain.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.FindGroupByID(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, nil
}
