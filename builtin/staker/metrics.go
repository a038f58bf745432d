// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/metrics"
	"github.com/vechain/stakeledger/thor"
)

var (
	metricOperations      = metrics.LazyLoadCounterVec("staker_operations_count", []string{"op", "status"})
	metricTotalPrincipal  = metrics.LazyLoadGauge("staker_total_principal_tokens")
	metricTotalShares     = metrics.LazyLoadGauge("staker_total_shares_tokens")
	metricUndistributed   = metrics.LazyLoadGauge("staker_undistributed_tokens")
	metricLastTick        = metrics.LazyLoadGauge("staker_last_distribution_tick")
	metricDistributedTo   = metrics.LazyLoadHistogram("staker_distribution_participants", metrics.BucketParticipants)
	metricMintedTokens    = metrics.LazyLoadCounter("staker_minted_tokens_count")
	metricParticipantSize = metrics.LazyLoadGauge("staker_participants")
)

// opStatus labels the outcome of an operation.
func opStatus(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := reverts.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}

// wholeTokens truncates units to whole tokens so they fit a gauge.
func wholeTokens(units *big.Int) int64 {
	return new(big.Int).Quo(units, thor.UnitsPerToken).Int64()
}
