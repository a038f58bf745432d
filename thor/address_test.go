// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", false},
		{"7567d83b7b8d80addcb281a71d54fc7b3364ffed", false},
		{"1x7567d83b7b8d80addcb281a71d54fc7b3364ffed", true},
		{"0x7567d83b", true},
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffzz", true},
	}
	for _, tt := range tests {
		_, err := ParseAddress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("user1"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestNativeAsset(t *testing.T) {
	assert.True(t, NativeAsset.IsZero())
	assert.Equal(t, "0x0000000000000000000000000000000000000000", NativeAsset.String())
	assert.False(t, BytesToAddress([]byte("token")).IsZero())
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "100000000000000000000", Tokens(100).String())
	assert.Equal(t, Tokens(1_000_000), InitialTokenSupply)
	assert.Equal(t, Tokens(100), DefaultRatePerTick)
}
