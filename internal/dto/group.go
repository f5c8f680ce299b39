package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/identity"
)

// --- Group DTOs ---

// CreateGroupRequest defines data for registering a group.
// Members are full addresses and must include the caller.
type CreateGroupRequest struct {
	GroupID string   `json:"groupID" binding:"required,max=128"`
	Members []string `json:"members" binding:"required,min=1,dive,account_id"`
}

// AddMembersRequest defines data for growing a group.
type AddMembersRequest struct {
	Members []string `json:"members" binding:"required,min=1,dive,account_id"`
}

// GroupResponse defines data returned for a group. Members are shown in checksum form.
type GroupResponse struct {
	GroupID   string    `json:"groupID"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToGroupResponse converts domain.Group to DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	members := make([]string, len(g.Members))
	for i, m := range g.Members {
		members[i] = identity.Checksum(m)
	}
	return GroupResponse{
		GroupID:   g.GroupID,
		Members:   members,
		CreatedAt: g.CreatedAt,
		CreatedBy: identity.Checksum(g.CreatedBy),
	}
}

// ListGroupsResponse wraps a list of groups.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ToListGroupsResponse converts a slice of domain.Group to DTO.
func ToListGroupsResponse(gs []domain.Group) ListGroupsResponse {
	list := make([]GroupResponse, len(gs))
	for i := range gs {
		list[i] = ToGroupResponse(&gs[i])
	}
	return ListGroupsResponse{Groups: list}
}

// MembershipResponse answers an is-member query.
type MembershipResponse struct {
	GroupID   string `json:"groupID"`
	AccountID string `json:"accountID"`
	IsMember  bool   `json:"isMember"`
}
