package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroup retrieves a group with its members.
	GetGroup(ctx context.Context, groupID string) (*domain.Group, error)

	// ListUserGroups retrieves every group accountID belongs to.
	ListUserGroups(ctx context.Context, accountID string) ([]domain.Group, error)

	// IsMember is a pure membership predicate. An unknown group has no members.
	IsMember(ctx context.Context, groupID, accountID string) (bool, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup registers a new group. The creator must be among members.
	CreateGroup(ctx context.Context, groupID string, members []string, creatorID string) (*domain.Group, error)

	// EnsureGroupExists creates the group if absent and waits, with bounded retries,
	// until it is visible. Calling it again for an existing group is a no-op.
	EnsureGroupExists(ctx context.Context, groupID string, members []string, creatorID string) (*domain.Group, error)

	// AddMembers appends new members. The caller must already be a member.
	AddMembers(ctx context.Context, groupID string, accountIDs []string, callerID string) (*domain.Group, error)
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
}
