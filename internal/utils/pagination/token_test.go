package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	token := EncodeToken("expenses", 42)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "42", "token should be opaque")

	lastID, err := DecodeToken("expenses", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), lastID)

	zero, err := DecodeToken("expenses", EncodeToken("expenses", 0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), zero)
}

func TestDecodeToken_Rejects(t *testing.T) {
	for name, token := range map[string]string{
		"not base64":     "%%%",
		"other listing":  EncodeToken("payments", 7),
		"missing id":     EncodeMultiFieldToken("expenses"),
		"non-numeric id": EncodeMultiFieldToken("expenses", "seven"),
		"negative id":    EncodeMultiFieldToken("expenses", "-1"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeToken("expenses", token)
			assert.Error(t, err)
		})
	}
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}
