package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/identity"
)

var checksummed = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksum(t *testing.T) {
	for _, want := range checksummed {
		assert.Equal(t, want, identity.Checksum(strings.ToLower(want)))
	}
	assert.Equal(t, "nonsense", identity.Checksum("nonsense"))
}

func TestCanonical(t *testing.T) {
	for _, addr := range checksummed {
		got, err := identity.Canonical(addr)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(addr), got)
	}

	upper := "0x" + strings.ToUpper(checksummed[0][2:])
	got, err := identity.Canonical(upper)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(checksummed[0]), got)

	// flip the case of one letter to break the checksum
	bad := "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	_, err = identity.Canonical(bad)
	assert.ErrorIs(t, err, apperrors.ErrUnresolvedAccount)

	for _, in := range []string{"", "0x123", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0xZZaeb6053f3e94c9b9a09f33669435e7ef1beaed"} {
		_, err := identity.Canonical(in)
		assert.ErrorIs(t, err, apperrors.ErrUnresolvedAccount, in)
	}
}

func TestResolve(t *testing.T) {
	alice := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	bob := "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
	bobTwin := "0xfb6900000000000000000000000000000000d359"
	members := []string{alice, bob}

	tests := []struct {
		name    string
		input   string
		members []string
		want    string
		wantErr bool
	}{
		{name: "full address", input: checksummed[0], members: nil, want: alice},
		{name: "ellipsis", input: "0x5aAe…BeAed", members: members, want: alice},
		{name: "three dots", input: "0xfb69...d359", members: members, want: bob},
		{name: "padded", input: "  0xfb69...d359 ", members: members, want: bob},
		{name: "ambiguous", input: "0xfb69...d359", members: []string{alice, bob, bobTwin}, wantErr: true},
		{name: "unknown", input: "0xabcd...0000", members: members, wantErr: true},
		{name: "not an address", input: "alice", members: members, wantErr: true},
		{name: "no head digits", input: "0x...d359", members: members, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := identity.Resolve(tc.input, tc.members)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnresolvedAccount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveAll(t *testing.T) {
	alice := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	bob := "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"

	got, err := identity.ResolveAll([]string{checksummed[1], alice, "0x5aae...beaed"}, []string{alice})
	require.NoError(t, err)
	assert.Equal(t, []string{bob, alice}, got)

	_, err = identity.ResolveAll([]string{alice, "0x1234...5678"}, []string{alice})
	assert.ErrorIs(t, err, apperrors.ErrUnresolvedAccount)
}

func TestLooksLikeAccount(t *testing.T) {
	assert.True(t, identity.LooksLikeAccount(checksummed[2]))
	assert.True(t, identity.LooksLikeAccount("0xdbF0…C6FB"))
	assert.False(t, identity.LooksLikeAccount("0xdbF0"))
	assert.False(t, identity.LooksLikeAccount("bob"))
}
