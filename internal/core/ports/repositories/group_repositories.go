package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group with its members in join order.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByAccountID retrieves all groups an account belongs to.
	ListGroupsByAccountID(ctx context.Context, accountID string) ([]domain.Group, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a new group and indexes it under every member.
	// Returns apperrors.ErrAlreadyExists if the group id is taken.
	SaveGroup(ctx context.Context, group domain.Group) error

	// AddGroupMembers appends accounts that are not yet members and returns the
	// ones that were actually added.
	AddGroupMembers(ctx context.Context, groupID string, accountIDs []string, addedAt time.Time) ([]string, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
