package meter

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-costtables/metrics"
)

const subsystem = "meter"

var (
	chargedGas = metrics.NewCounter(
		"charged_gas",
		subsystem,
		"Internal gas charged, by cost component",
		[]string{"dimension"},
	)
	tierMoves = metrics.NewCounter(
		"tier_moves",
		subsystem,
		"Number of times a counter left its cached tier",
		[]string{"dimension"},
	)
	chargeSize = metrics.NewHistogramWithBuckets(
		"charge_size",
		subsystem,
		"Internal gas deducted by a single charge",
		[]string{},
		prometheus.ExponentialBuckets(1, 4, 16),
	)
	outOfGas = metrics.NewCounter(
		"out_of_gas",
		subsystem,
		"Number of charges rejected for exceeding the remaining budget",
		[]string{},
	)
)
