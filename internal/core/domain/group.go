package domain

import "slices"

// Group is a set of accounts that share expenses and debts.
// Membership is append-only: members can be added but never removed.
type Group struct {
	GroupID string   `json:"groupID"` // Opaque identifier chosen by the caller (e.g. chat id)
	Members []string `json:"members"` // Canonical account ids in join order
	AuditFields
}

// HasMember reports whether accountID belongs to the group.
func (g *Group) HasMember(accountID string) bool {
	return slices.Contains(g.Members, accountID)
}

// ParticipantsFor returns the current members minus the payer, preserving join order.
func (g *Group) ParticipantsFor(payer string) []string {
	participants := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if m != payer {
			participants = append(participants, m)
		}
	}
	return participants
}

// GroupMembership is one row of the "groups I belong to" index.
type GroupMembership struct {
	GroupID   string `json:"groupID"`
	AccountID string `json:"accountID"`
	Position  int    `json:"position"` // Join order within the group, starting at 0
}
