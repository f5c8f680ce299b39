package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// ConfirmPolicy bounds how long EnsureGroupExists waits for a new group to become visible.
type ConfirmPolicy struct {
	Attempts int
	Interval time.Duration
}

// DefaultConfirmPolicy polls up to 10 times, 2 seconds apart.
var DefaultConfirmPolicy = ConfirmPolicy{Attempts: 10, Interval: 2 * time.Second}

// groupService implements the GroupSvcFacade interface
type groupService struct {
	BaseService
	groupRepo portsrepo.GroupRepositoryFacade
	confirm   ConfirmPolicy
}

// NewGroupService creates a new group service with the provided dependencies
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade, confirm ConfirmPolicy, options ...ServiceOption) portssvc.GroupSvcFacade {
	if confirm.Attempts < 1 {
		confirm.Attempts = 1
	}
	return &groupService{
		BaseService: newBaseService(options),
		groupRepo:   groupRepo,
		confirm:     confirm,
	}
}

// Ensure groupService implements the GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*groupService)(nil)

func (s *groupService) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group by ID", slog.String("group_id", groupID))
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListUserGroups(ctx context.Context, accountID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByAccountID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups for account", slog.String("account_id", accountID))
		return nil, err
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	s.LogDebug(ctx, "Groups listed successfully", slog.String("account_id", accountID), slog.Int("count", len(groups)))
	return groups, nil
}

func (s *groupService) IsMember(ctx context.Context, groupID, accountID string) (bool, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to check membership", slog.String("group_id", groupID), slog.String("account_id", accountID))
		return false, err
	}
	return group.HasMember(accountID), nil
}

func (s *groupService) CreateGroup(ctx context.Context, groupID string, members []string, creatorID string) (*domain.Group, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, fmt.Errorf("%w: group id is required", apperrors.ErrValidation)
	}

	cleaned, err := normalizeMembers(members)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(cleaned, creatorID) {
		return nil, fmt.Errorf("%w: creator %s is not among the members", apperrors.ErrInvalidMembers, creatorID)
	}

	group := domain.Group{
		GroupID: groupID,
		Members: cleaned,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: creatorID,
		},
	}
	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyExists) {
			s.LogError(ctx, err, "Failed to save group", slog.String("group_id", groupID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Group created successfully", slog.String("group_id", groupID), slog.Int("members", len(cleaned)))
	s.Track(creatorID, "group_created", map[string]any{"group_id": groupID, "members": len(cleaned)})
	return &group, nil
}

func (s *groupService) EnsureGroupExists(ctx context.Context, groupID string, members []string, creatorID string) (*domain.Group, error) {
	existing, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check group existence", slog.String("group_id", groupID))
		return nil, err
	}

	if _, err := s.CreateGroup(ctx, groupID, members, creatorID); err != nil && !errors.Is(err, apperrors.ErrAlreadyExists) {
		return nil, err
	}
	return s.awaitGroup(ctx, groupID)
}

// awaitGroup polls until the group is readable or the confirm policy runs out.
func (s *groupService) awaitGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	for attempt := 1; attempt <= s.confirm.Attempts; attempt++ {
		group, err := s.groupRepo.FindGroupByID(ctx, groupID)
		if err == nil {
			s.Metrics.GroupConfirmed(attempt)
			return group, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to confirm group", slog.String("group_id", groupID), slog.Int("attempt", attempt))
			return nil, err
		}
		s.LogDebug(ctx, "Group not visible yet", slog.String("group_id", groupID), slog.Int("attempt", attempt))
		if attempt == s.confirm.Attempts {
			break
		}
		if err := sleepCtx(ctx, s.confirm.Interval); err != nil {
			return nil, err
		}
	}

	s.LogWarn(ctx, "Group creation not confirmed", slog.String("group_id", groupID), slog.Int("attempts", s.confirm.Attempts))
	return nil, fmt.Errorf("%w: group %s after %d attempts", apperrors.ErrCreationTimedOut, groupID, s.confirm.Attempts)
}

func (s *groupService) AddMembers(ctx context.Context, groupID string, accountIDs []string, callerID string) (*domain.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(callerID) {
		s.LogWarn(ctx, "Non-member tried to add members", slog.String("group_id", groupID), slog.String("account_id", callerID))
		return nil, fmt.Errorf("%w: %s in group %s", apperrors.ErrNotAMember, callerID, groupID)
	}

	cleaned, err := normalizeMembers(accountIDs)
	if err != nil {
		return nil, err
	}
	added, err := s.groupRepo.AddGroupMembers(ctx, groupID, cleaned, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to add group members", slog.String("group_id", groupID))
		return nil, err
	}

	s.LogInfo(ctx, "Group members added", slog.String("group_id", groupID), slog.Int("added", len(added)))
	return s.GetGroup(ctx, groupID)
}

// normalizeMembers trims ids and drops duplicates, keeping first-seen order.
func normalizeMembers(members []string) ([]string, error) {
	out := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" {
			return nil, fmt.Errorf("%w: blank account id", apperrors.ErrInvalidMembers)
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one member is required", apperrors.ErrInvalidMembers)
	}
	return out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
