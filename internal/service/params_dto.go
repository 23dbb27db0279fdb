package service

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/schedcu/orsched/internal/optimizer"
)

// OptimizationParamsDTO is the wire representation of optimizer.Parameters
// at the API/persistence boundary (spec.md §6's parameter table). Durations
// travel as milliseconds, matching the field names params.go's own
// validation error Reasons use (time_limit_ms, progress_interval_ms), so a
// client reading a 422 response recognizes the field it needs to fix.
type OptimizationParamsDTO struct {
	Variant string `json:"variant"`

	MaxIterations          int     `json:"max_iterations"`
	TabuTenure             int     `json:"tabu_tenure"`
	MinTabuTenure          int     `json:"min_tabu_tenure"`
	MaxTabuTenure          int     `json:"max_tabu_tenure"`
	TenureAdaptationFactor float64 `json:"tenure_adaptation_factor"`

	MaxNoImprovement int   `json:"max_no_improvement"`
	TimeLimitMS      int64 `json:"time_limit_ms"`

	MaxNeighbors    int `json:"max_neighbors"`
	MaxShiftMinutes int `json:"max_shift_minutes"`

	Weights WeightsDTO `json:"weights"`

	DiversificationThreshold int     `json:"diversification_threshold"`
	DiversificationStrength  float64 `json:"diversification_strength"`
	ReactiveWindow           int     `json:"reactive_window"`
	DeadendLimit             int     `json:"deadend_limit"`

	ProgressIntervalMS int64  `json:"progress_interval_ms"`
	CacheResults       bool   `json:"cache_results"`
	Seed               *int64 `json:"seed,omitempty"`
}

// WeightsDTO mirrors optimizer.Weights for JSON transport.
type WeightsDTO struct {
	Makespan          int `json:"makespan"`
	TotalSDST         int `json:"total_sdst"`
	IdleTime          int `json:"idle_time"`
	Overtime          int `json:"overtime"`
	UrgencyViolation  int `json:"urgency_violation"`
	SurgeonPreference int `json:"surgeon_preference"`
}

// DefaultOptimizationParamsDTO mirrors optimizer.DefaultParameters for
// clients that omit the parameters field entirely.
func DefaultOptimizationParamsDTO() OptimizationParamsDTO {
	return FromParameters(optimizer.DefaultParameters())
}

// UnmarshalJSON decodes onto DefaultOptimizationParamsDTO, so an option or
// weight absent from the JSON keeps its default (weights default to 1),
// and rejects keys that name no field.
func (d *OptimizationParamsDTO) UnmarshalJSON(b []byte) error {
	type plain OptimizationParamsDTO
	p := plain(DefaultOptimizationParamsDTO())
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*d = OptimizationParamsDTO(p)
	return nil
}

// ToParameters converts the wire DTO to the optimizer's internal type.
func (d OptimizationParamsDTO) ToParameters() optimizer.Parameters {
	return optimizer.Parameters{
		Variant:                optimizer.Variant(d.Variant),
		MaxIterations:          d.MaxIterations,
		TabuTenure:             d.TabuTenure,
		MinTabuTenure:          d.MinTabuTenure,
		MaxTabuTenure:          d.MaxTabuTenure,
		TenureAdaptationFactor: d.TenureAdaptationFactor,
		MaxNoImprovement:       d.MaxNoImprovement,
		TimeLimit:              time.Duration(d.TimeLimitMS) * time.Millisecond,
		MaxNeighbors:           d.MaxNeighbors,
		MaxShiftMinutes:        d.MaxShiftMinutes,
		Weights: optimizer.Weights{
			Makespan:          d.Weights.Makespan,
			TotalSDST:         d.Weights.TotalSDST,
			IdleTime:          d.Weights.IdleTime,
			Overtime:          d.Weights.Overtime,
			UrgencyViolation:  d.Weights.UrgencyViolation,
			SurgeonPreference: d.Weights.SurgeonPreference,
		},
		DiversificationThreshold: d.DiversificationThreshold,
		DiversificationStrength:  d.DiversificationStrength,
		ReactiveWindow:           d.ReactiveWindow,
		DeadendLimit:             d.DeadendLimit,
		ProgressInterval:         time.Duration(d.ProgressIntervalMS) * time.Millisecond,
		CacheResults:             d.CacheResults,
		Seed:                     d.Seed,
	}
}

// FromParameters converts the optimizer's internal type to the wire DTO.
func FromParameters(p optimizer.Parameters) OptimizationParamsDTO {
	return OptimizationParamsDTO{
		Variant:                string(p.Variant),
		MaxIterations:          p.MaxIterations,
		TabuTenure:             p.TabuTenure,
		MinTabuTenure:          p.MinTabuTenure,
		MaxTabuTenure:          p.MaxTabuTenure,
		TenureAdaptationFactor: p.TenureAdaptationFactor,
		MaxNoImprovement:       p.MaxNoImprovement,
		TimeLimitMS:            p.TimeLimit.Milliseconds(),
		MaxNeighbors:           p.MaxNeighbors,
		MaxShiftMinutes:        p.MaxShiftMinutes,
		Weights: WeightsDTO{
			Makespan:          p.Weights.Makespan,
			TotalSDST:         p.Weights.TotalSDST,
			IdleTime:          p.Weights.IdleTime,
			Overtime:          p.Weights.Overtime,
			UrgencyViolation:  p.Weights.UrgencyViolation,
			SurgeonPreference: p.Weights.SurgeonPreference,
		},
		DiversificationThreshold: p.DiversificationThreshold,
		DiversificationStrength:  p.DiversificationStrength,
		ReactiveWindow:           p.ReactiveWindow,
		DeadendLimit:             p.DeadendLimit,
		ProgressIntervalMS:       p.ProgressInterval.Milliseconds(),
		CacheResults:             p.CacheResults,
		Seed:                     p.Seed,
	}
}

// MarshalParameters serializes params the way entity.OptimizationRun stores
// them, using the wire DTO so a stored run's parameters JSON always reads
// back in the shape the API accepts.
func MarshalParameters(p optimizer.Parameters) (string, error) {
	b, err := json.Marshal(FromParameters(p))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalParameters parses a stored parameters JSON string back into
// optimizer.Parameters.
func UnmarshalParameters(s string) (optimizer.Parameters, error) {
	var dto OptimizationParamsDTO
	if err := json.Unmarshal([]byte(s), &dto); err != nil {
		return optimizer.Parameters{}, err
	}
	return dto.ToParameters(), nil
}
