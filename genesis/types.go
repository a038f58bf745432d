// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakeledger/thor"
)

// Address is a thor.Address read from a YAML scalar.
type Address thor.Address

func (a *Address) UnmarshalYAML(n *yaml.Node) error {
	addr, err := thor.ParseAddress(strings.TrimSpace(n.Value))
	if err != nil {
		return err
	}
	*a = Address(addr)
	return nil
}

func (a Address) MarshalYAML() (any, error) {
	return thor.Address(a).String(), nil
}

// Amount is a quantity of token units. It is written as decimal or 0x-hex
// units, or as whole tokens followed by the token symbol, e.g. "100 RTK".
type Amount big.Int

// NewAmount wraps v.
func NewAmount(v *big.Int) *Amount {
	return (*Amount)(new(big.Int).Set(v))
}

func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	return a.UnmarshalText([]byte(n.Value))
}

func (a *Amount) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	multiplier := big.NewInt(1)
	if whole, ok := strings.CutSuffix(s, thor.TokenSymbol); ok {
		s = strings.TrimSpace(whole)
		multiplier = thor.UnitsPerToken
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return errors.Errorf("invalid amount %q", string(text))
	}
	v.Mul(v, multiplier)
	if v.BitLen() > 256 {
		return errors.Errorf("amount %q overflows 256 bits", string(text))
	}
	*a = Amount(*v)
	return nil
}

func (a *Amount) MarshalYAML() (any, error) {
	return a.Int().String(), nil
}

// Int returns a copy of the amount, zero for nil.
func (a *Amount) Int() *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(a))
}
