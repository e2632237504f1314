package analyzer

import (
	"errors"
	"fmt"
	"math"
)

// ConfidenceParams are the calibration constants of the confidence formula
type ConfidenceParams struct {
	Base         float64 // starting confidence for any match
	ScoreWeight  float64 // added per point of the winning score
	LengthWeight float64 // bonus for long input, scaled by the length factor
	LengthNorm   float64 // rune count at which the length factor saturates
	Jitter       float64 // half-width of the symmetric random perturbation
	Floor        float64
	Ceiling      float64
	NeutralMin   float64 // neutral results are drawn from [NeutralMin, NeutralMax)
	NeutralMax   float64
}

// DefaultConfidenceParams returns the stock calibration
func DefaultConfidenceParams() ConfidenceParams {
	return ConfidenceParams{
		Base:         0.4,
		ScoreWeight:  0.15,
		LengthWeight: 0.1,
		LengthNorm:   100,
		Jitter:       0.05,
		Floor:        0.3,
		Ceiling:      0.95,
		NeutralMin:   0.3,
		NeutralMax:   0.5,
	}
}

// Validate checks the bounds are ordered and usable
func (p ConfidenceParams) Validate() error {
	var errs []error

	if p.Floor < 0 || p.Ceiling > 1 || p.Floor > p.Ceiling {
		errs = append(errs, fmt.Errorf("confidence floor/ceiling must satisfy 0 <= floor <= ceiling <= 1, got %.3f/%.3f", p.Floor, p.Ceiling))
	}
	if p.NeutralMin < p.Floor || p.NeutralMax > p.Ceiling || p.NeutralMin > p.NeutralMax {
		errs = append(errs, fmt.Errorf("neutral range [%.3f, %.3f] must lie within [floor, ceiling]", p.NeutralMin, p.NeutralMax))
	}
	if p.LengthNorm <= 0 {
		errs = append(errs, errors.New("confidence length_norm must be positive"))
	}
	if p.Jitter < 0 {
		errs = append(errs, errors.New("confidence jitter must not be negative"))
	}
	if p.ScoreWeight < 0 || p.LengthWeight < 0 {
		errs = append(errs, errors.New("confidence weights must not be negative"))
	}

	return errors.Join(errs...)
}

// ConfidenceEstimator turns a winning score into a bounded confidence
type ConfidenceEstimator struct {
	params ConfidenceParams
	rand   Rand
}

// NewConfidenceEstimator creates an estimator using r for jitter
func NewConfidenceEstimator(params ConfidenceParams, r Rand) *ConfidenceEstimator {
	return &ConfidenceEstimator{params: params, rand: r}
}

// Estimate computes confidence for a matched category.
// textLen is the rune count of the trimmed input.
func (e *ConfidenceEstimator) Estimate(maxScore float64, textLen int) float64 {
	p := e.params

	base := math.Min(p.Ceiling, p.Base+maxScore*p.ScoreWeight)
	lengthFactor := math.Min(1.0, float64(textLen)/p.LengthNorm)
	confidence := math.Min(p.Ceiling, base+lengthFactor*p.LengthWeight)

	if p.Jitter > 0 {
		confidence += uniform(e.rand, -p.Jitter, p.Jitter)
	}

	return clamp(confidence, p.Floor, p.Ceiling)
}

// Neutral draws the weak confidence used when no keyword matched
func (e *ConfidenceEstimator) Neutral() float64 {
	p := e.params
	return clamp(uniform(e.rand, p.NeutralMin, p.NeutralMax), p.NeutralMin, p.NeutralMax)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round3 rounds to three decimals, the precision reported to clients
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
