package identity

import (
	"fmt"
	"strings"

	"github.com/SscSPs/splitledger/internal/apperrors"
)

// Separators accepted between the head and tail of a shortened address.
var shortSeparators = []string{"…", "..."}

// Resolve maps input to a canonical account id. Full addresses are validated on
// their own; shortened forms such as 0xAbCd…1234 are matched against candidates,
// which must be canonical ids (usually the members of a group).
func Resolve(input string, candidates []string) (string, error) {
	s := strings.TrimSpace(input)
	if len(s) == addressHexLen+2 {
		return Canonical(s)
	}

	head, tail, ok := splitShort(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnresolvedAccount, input)
	}

	var match string
	for _, c := range candidates {
		if !strings.HasPrefix(c, head) || !strings.HasSuffix(c, tail) {
			continue
		}
		if match != "" && match != c {
			return "", fmt.Errorf("%w: %q is ambiguous", apperrors.ErrUnresolvedAccount, input)
		}
		match = c
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q matches no member", apperrors.ErrUnresolvedAccount, input)
	}
	return match, nil
}

// ResolveAll resolves every input, failing on the first that cannot be resolved.
// Duplicates are dropped and the first-seen order is kept.
func ResolveAll(inputs []string, candidates []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		id, err := Resolve(in, candidates)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// LooksLikeAccount reports whether s has the shape of a full or shortened address.
// It does not check the checksum or resolve the short form.
func LooksLikeAccount(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == addressHexLen+2 {
		_, err := Canonical(s)
		return err == nil
	}
	_, _, ok := splitShort(s)
	return ok
}

func splitShort(s string) (head, tail string, ok bool) {
	if !has0xPrefix(s) {
		return "", "", false
	}
	for _, sep := range shortSeparators {
		h, t, found := strings.Cut(s, sep)
		if !found {
			continue
		}
		h, t = strings.ToLower(h), strings.ToLower(t)
		if len(h) < 3 || len(t) < 1 || !isHex(h[2:]) || !isHex(t) {
			return "", "", false
		}
		if len(h)-2+len(t) >= addressHexLen {
			return "", "", false
		}
		return "0x" + h[2:], t, true
	}
	return "", "", false
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
