// Package pagination encodes the opaque cursors handed out by paginated listings.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeToken creates a base64 encoded cursor pointing after lastID in the listing named kind.
func EncodeToken(kind string, lastID int64) string {
	return EncodeMultiFieldToken(kind, strconv.FormatInt(lastID, 10))
}

// DecodeToken parses a cursor produced by EncodeToken. A cursor issued for another
// listing is rejected.
func DecodeToken(kind, token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != kind {
		return 0, fmt.Errorf("invalid pagination token format (kind)")
	}
	lastID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || lastID < 0 {
		return 0, fmt.Errorf("invalid pagination token format (id parse)")
	}
	return lastID, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
