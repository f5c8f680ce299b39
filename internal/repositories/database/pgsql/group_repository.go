package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for groups and their membership index.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

type groupRow struct {
	GroupID   string    `db:"group_id"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
	Members   []string  `db:"members"`
}

func (g groupRow) toDomain() domain.Group {
	return domain.Group{
		GroupID: g.GroupID,
		Members: g.Members,
		AuditFields: domain.AuditFields{
			CreatedAt: g.CreatedAt.UTC(),
			CreatedBy: g.CreatedBy,
		},
	}
}

func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	return r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO ledger_groups (group_id, created_at, created_by) VALUES ($1, $2, $3);`,
			group.GroupID, group.CreatedAt, group.CreatedBy)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, group.GroupID)
			}
			return apperrors.NewAppError(500, "failed to insert group "+group.GroupID, err)
		}

		batch := &pgx.Batch{}
		for i, m := range group.Members {
			batch.Queue(`INSERT INTO group_members (group_id, account_id, position, added_at) VALUES ($1, $2, $3, $4);`,
				group.GroupID, m, i, group.CreatedAt)
		}
		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for range group.Members {
			if _, err := br.Exec(); err != nil {
				return apperrors.NewAppError(500, "failed to insert group member", err)
			}
		}
		return nil
	})
}

func (r *PgxGroupRepository) AddGroupMembers(ctx context.Context, groupID string, accountIDs []string, addedAt time.Time) ([]string, error) {
	var added []string
	err := r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		// Lock the group row so concurrent additions get contiguous positions.
		var locked string
		err := tx.QueryRow(ctx, `SELECT group_id FROM ledger_groups WHERE group_id = $1 FOR UPDATE;`, groupID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrGroupNotFound
			}
			return apperrors.NewAppError(500, "failed to lock group "+groupID, err)
		}

		var next int
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM group_members WHERE group_id = $1;`, groupID).Scan(&next); err != nil {
			return apperrors.NewAppError(500, "failed to read member positions", err)
		}

		for _, id := range accountIDs {
			var inserted string
			err := tx.QueryRow(ctx, `
				INSERT INTO group_members (group_id, account_id, position, added_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (group_id, account_id) DO NOTHING
				RETURNING account_id;`,
				groupID, id, next, addedAt).Scan(&inserted)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				return apperrors.NewAppError(500, "failed to add group member", err)
			}
			added = append(added, inserted)
			next++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

const groupSelect = `
SELECT g.group_id, g.created_at, g.created_by,
	array_agg(m.account_id ORDER BY m.position) AS members
FROM ledger_groups g
JOIN group_members m ON m.group_id = g.group_id
`

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	rows, err := r.Pool.Query(ctx, groupSelect+`WHERE g.group_id = $1 GROUP BY g.group_id;`, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query group", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[groupRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan group", err)
	}
	group := row.toDomain()
	return &group, nil
}

func (r *PgxGroupRepository) ListGroupsByAccountID(ctx context.Context, accountID string) ([]domain.Group, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT g.group_id, g.created_at, g.created_by,
			array_agg(m.account_id ORDER BY m.position) AS members
		FROM group_members mine
		JOIN ledger_groups g ON g.group_id = mine.group_id
		JOIN group_members m ON m.group_id = g.group_id
		WHERE mine.account_id = $1
		GROUP BY g.group_id, mine.seq
		ORDER BY mine.seq;`, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query groups for account", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[groupRow])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect group rows", err)
	}

	groups := make([]domain.Group, 0, len(found))
	for _, g := range found {
		groups = append(groups, g.toDomain())
	}
	return groups, nil
}
