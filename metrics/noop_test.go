// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	noop := defaultNoopMetrics()
	require.Nil(t, noop.GetOrCreateHandler())

	noop.GetOrCreateCountMeter("count1").Add(1)
	noop.GetOrCreateCountVecMeter("countVec1", []string{"zeroOrOne"}).
		AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	noop.GetOrCreateGaugeMeter("gauge1").Set(5)
	noop.GetOrCreateGaugeVecMeter("gaugeVec1", nil).SetWithLabel(1, nil)
	noop.GetOrCreateHistogramMeter("hist1", nil).Observe(10)
	noop.GetOrCreateHistogramVecMeter("histVec1", nil, nil).ObserveWithLabels(10, nil)
}
