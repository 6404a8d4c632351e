// Package metrics exposes prometheus counters for the acquisition and
// upload flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AcquisitionAttempts counts download strategy attempts by strategy
	// name and outcome.
	AcquisitionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directtoyt_acquisition_attempts_total",
			Help: "Download strategy attempts by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	// Uploads counts upload attempts by target and outcome.
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directtoyt_uploads_total",
			Help: "Upload attempts by target and outcome.",
		},
		[]string{"target", "outcome"},
	)

	// Probes counts metadata probe calls by outcome.
	Probes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directtoyt_metadata_probes_total",
			Help: "Metadata probe calls by outcome.",
		},
		[]string{"outcome"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
