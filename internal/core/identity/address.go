// Package identity turns human-entered account references into canonical account ids.
package identity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/SscSPs/splitledger/internal/apperrors"
)

const addressHexLen = 40

// Canonical validates a full address and returns it in lower case.
// All-lower and all-upper inputs are accepted as is; mixed case must carry a valid checksum.
func Canonical(input string) (string, error) {
	s := strings.TrimSpace(input)
	if !has0xPrefix(s) || len(s) != addressHexLen+2 {
		return "", fmt.Errorf("%w: %q is not an address", apperrors.ErrUnresolvedAccount, input)
	}
	body := s[2:]
	if _, err := hex.DecodeString(body); err != nil {
		return "", fmt.Errorf("%w: %q is not hex", apperrors.ErrUnresolvedAccount, input)
	}
	lower := strings.ToLower(body)
	if body != lower && body != strings.ToUpper(body) {
		if Checksum("0x"+lower) != "0x"+body {
			return "", fmt.Errorf("%w: %q has a bad checksum", apperrors.ErrUnresolvedAccount, input)
		}
	}
	return "0x" + lower, nil
}

// IsCanonical reports whether s is already a lower-case address.
func IsCanonical(s string) bool {
	c, err := Canonical(s)
	return err == nil && c == s
}

// Checksum renders an address in mixed-case checksum form. The input must be a valid
// address; anything else is returned unchanged.
func Checksum(address string) string {
	if !has0xPrefix(address) || len(address) != addressHexLen+2 {
		return address
	}
	lower := strings.ToLower(address[2:])
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return "0x" + string(out)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
