package optimizer

import "time"

// Parameters is the enumerated options struct of spec.md §6. Unknown keys
// have no representation here by design: a host decoding an open map into
// this struct MUST reject unrecognized fields rather than silently drop
// them (see internal/service for the boundary check).
type Parameters struct {
	Variant Variant

	MaxIterations     int
	TabuTenure        int
	MinTabuTenure     int
	MaxTabuTenure     int
	TenureAdaptationFactor float64

	MaxNoImprovement int
	TimeLimit        time.Duration

	MaxNeighbors     int
	MaxShiftMinutes  int

	Weights Weights

	DiversificationThreshold int
	DiversificationStrength  float64
	ReactiveWindow           int
	DeadendLimit             int

	ProgressInterval time.Duration
	CacheResults     bool

	Seed *int64
}

// DefaultParameters returns the table of spec.md §6.
func DefaultParameters() Parameters {
	return Parameters{
		Variant:                  VariantBasic,
		MaxIterations:            100,
		TabuTenure:               10,
		MinTabuTenure:            5,
		MaxTabuTenure:            20,
		TenureAdaptationFactor:   1.2,
		MaxNoImprovement:         20,
		TimeLimit:                300 * time.Second,
		MaxNeighbors:             200,
		MaxShiftMinutes:          0,
		Weights:                  DefaultWeights(),
		DiversificationThreshold: 50,
		DiversificationStrength:  0.3,
		ReactiveWindow:           25,
		DeadendLimit:             5,
		ProgressInterval:         200 * time.Millisecond,
		CacheResults:             true,
	}
}

// Validate checks the structural constraints the driver relies on,
// surfacing violations as InvalidInputError before any iteration runs
// (spec.md §7).
func (p Parameters) Validate() error {
	switch {
	case p.MaxIterations <= 0:
		return &InvalidInputError{Reason: "max_iterations must be positive"}
	case p.TabuTenure <= 0:
		return &InvalidInputError{Reason: "tabu_tenure must be positive"}
	case p.MinTabuTenure <= 0 || p.MaxTabuTenure < p.MinTabuTenure:
		return &InvalidInputError{Reason: "min_tabu_tenure/max_tabu_tenure must satisfy 0 < min <= max"}
	case p.TenureAdaptationFactor <= 1.0:
		return &InvalidInputError{Reason: "tenure_adaptation_factor must be greater than 1.0"}
	case p.MaxNoImprovement <= 0:
		return &InvalidInputError{Reason: "max_no_improvement must be positive"}
	case p.TimeLimit <= 0:
		return &InvalidInputError{Reason: "time_limit_ms must be positive"}
	case p.MaxNeighbors <= 0:
		return &InvalidInputError{Reason: "max_neighbors must be positive"}
	case p.MaxShiftMinutes < 0:
		return &InvalidInputError{Reason: "max_shift_minutes must be non-negative"}
	case p.DiversificationThreshold <= 0:
		return &InvalidInputError{Reason: "diversification_threshold must be positive"}
	case p.DiversificationStrength <= 0 || p.DiversificationStrength > 1:
		return &InvalidInputError{Reason: "diversification_strength must be in (0, 1]"}
	case p.ReactiveWindow <= 0:
		return &InvalidInputError{Reason: "reactive_window must be positive"}
	case p.DeadendLimit <= 0:
		return &InvalidInputError{Reason: "deadend_limit must be positive"}
	case p.ProgressInterval <= 0:
		return &InvalidInputError{Reason: "progress_interval_ms must be positive"}
	}
	return nil
}
