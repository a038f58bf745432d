// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package thor

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalUnmarshall(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var unmarshaledValue Bytes32
	err := json.Unmarshal([]byte(originalHex), &unmarshaledValue)
	assert.NoError(t, err)

	marshalVal, err := json.Marshal(&unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalVal))
}

func TestBytes32Numbers(t *testing.T) {
	b := Uint64ToBytes32(1234)
	assert.Equal(t, uint64(1234), b.Uint64())
	assert.Equal(t, big.NewInt(1234), b.Big())

	amount := Tokens(100)
	assert.Equal(t, amount, BigToBytes32(amount).Big())
	assert.True(t, BigToBytes32(new(big.Int)).IsZero())
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32("0x1234")
	assert.Error(t, err)

	_, err = ParseBytes32("zz00000000000000000000000000000000000000000000000000006d6173746572")
	assert.Error(t, err)

	b := MustParseBytes32("0x00000000000000000000000000000000000000000000000000000000000000ff")
	assert.Equal(t, uint64(255), b.Uint64())
}
