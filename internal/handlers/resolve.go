package handlers

import (
	"context"
	"strings"

	"github.com/SscSPs/splitledger/internal/core/identity"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// memberResolver turns user supplied account identifiers into canonical ids.
// Full addresses resolve on their own; shortened ones against the group's members.
type memberResolver struct {
	groups portssvc.GroupReaderSvc
}

func (r memberResolver) resolve(ctx context.Context, groupID string, inputs ...string) ([]string, error) {
	var members []string
	for _, in := range inputs {
		if len(strings.TrimSpace(in)) != 42 {
			group, err := r.groups.GetGroup(ctx, groupID)
			if err != nil {
				return nil, err
			}
			members = group.Members
			break
		}
	}
	return identity.ResolveAll(inputs, members)
}

func (r memberResolver) resolveOne(ctx context.Context, groupID, input string) (string, error) {
	ids, err := r.resolve(ctx, groupID, input)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}
