package analysis

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Siteline-Labs/Siteline/internal/engine"
)

// ErrNoValidSimulations is returned when every trial failed and there is
// nothing to summarize.
var ErrNoValidSimulations = errors.New("no valid simulations")

const (
	osmVariation      = 0.2 // ±20% perturbation on feature counts
	categoryVariation = 0.3 // ±30% perturbation on competitor counts

	// DefaultSuccessThreshold is the score at or above which a simulated
	// outcome counts as a success.
	DefaultSuccessThreshold = 60.0
)

// MonteCarloOptions tunes a simulation run. Zero values take defaults:
// 1000 simulations, one worker per CPU, a time-based seed, and the default
// success threshold. A non-zero Seed makes the run reproducible.
type MonteCarloOptions struct {
	Simulations      int
	Workers          int
	Seed             int64
	SuccessThreshold float64
}

func (o *MonteCarloOptions) normalize() {
	if o.Simulations <= 0 {
		o.Simulations = 1000
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Workers > o.Simulations {
		o.Workers = o.Simulations
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.SuccessThreshold == 0 {
		o.SuccessThreshold = DefaultSuccessThreshold
	}
}

// MonteCarloStats is the distribution summary of the simulated scores.
type MonteCarloStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P5     float64 `json:"percentile_5"`
	P25    float64 `json:"percentile_25"`
	P75    float64 `json:"percentile_75"`
	P95    float64 `json:"percentile_95"`
}

// RiskAssessment classifies the simulated distribution against the baseline.
type RiskAssessment struct {
	RiskLevel       string  `json:"risk_level"`
	Volatility      float64 `json:"volatility"`
	DownsideRisk    float64 `json:"downside_risk"`
	UpsidePotential float64 `json:"upside_potential"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
}

// MonteCarloResult is the full simulation output.
type MonteCarloResult struct {
	Statistics               MonteCarloStats `json:"statistics"`
	BaselineScore            float64         `json:"baseline_score"`
	ProbabilityBelowBaseline float64         `json:"probability_below_baseline"`
	ProbabilitySuccess       float64         `json:"probability_success"`
	ConfidenceInterval90     [2]float64      `json:"confidence_interval_90"`
	Risk                     RiskAssessment  `json:"risk_assessment"`
	NumSimulations           int             `json:"num_simulations"`
}

// RunMonteCarlo perturbs the context randomly per trial (feature counts by
// ±20%, competitor counts by ±30%), rescores, and summarizes the resulting
// score distribution. Trials are independent and run across a worker pool;
// each worker owns its RNG so the run is reproducible for a fixed seed and
// worker count.
func (p *Planner) RunMonteCarlo(businessID string, ctx *engine.MarketContext, opts MonteCarloOptions) (*MonteCarloResult, error) {
	opts.normalize()

	baseline := p.engine.ScoreBusiness(businessID, baselineInputs, ctx)

	perWorker := make([][]float64, opts.Workers)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		trials := opts.Simulations / opts.Workers
		if w < opts.Simulations%opts.Workers {
			trials++
		}

		wg.Add(1)
		go func(idx, trials int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(opts.Seed + int64(idx)))
			scores := make([]float64, 0, trials)
			for t := 0; t < trials; t++ {
				if s, ok := p.runTrial(businessID, ctx, rng); ok {
					scores = append(scores, s)
				}
			}
			perWorker[idx] = scores
		}(w, trials)
	}
	wg.Wait()

	var scores []float64
	for _, s := range perWorker {
		scores = append(scores, s...)
	}
	if len(scores) == 0 {
		return nil, ErrNoValidSimulations
	}

	sort.Float64s(scores)
	stats := summarizeScores(scores)

	below, success := 0, 0
	for _, s := range scores {
		if s < baseline.Score {
			below++
		}
		if s >= opts.SuccessThreshold {
			success++
		}
	}
	n := float64(len(scores))

	return &MonteCarloResult{
		Statistics:               stats,
		BaselineScore:            baseline.Score,
		ProbabilityBelowBaseline: float64(below) / n,
		ProbabilitySuccess:       float64(success) / n,
		ConfidenceInterval90:     [2]float64{stats.P5, stats.P95},
		Risk:                     assessRisk(stats, baseline.Score),
		NumSimulations:           len(scores),
	}, nil
}

// runTrial scores one independently perturbed copy of the context. A panic in
// the trial invalidates only that trial.
func (p *Planner) runTrial(businessID string, ctx *engine.MarketContext, rng *rand.Rand) (score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("simulation trial failed", "business", businessID)
			ok = false
		}
	}()

	trial := ctx.Clone()
	for tag, n := range trial.OSM {
		variation := (rng.Float64()*2 - 1) * osmVariation
		scaled := int(float64(n) * (1 + variation))
		if scaled < 0 {
			scaled = 0
		}
		trial.OSM[tag] = scaled
	}
	for category, n := range trial.CategoryCounts {
		variation := (rng.Float64()*2 - 1) * categoryVariation
		scaled := int(float64(n) * (1 + variation))
		if scaled < 0 {
			scaled = 0
		}
		trial.CategoryCounts[category] = scaled
	}

	result := p.engine.ScoreBusiness(businessID, baselineInputs, trial)
	return result.Score, true
}

// summarizeScores expects scores sorted ascending. Percentiles use the
// sorted-index convention: p-th percentile = scores[int(n*p)].
func summarizeScores(scores []float64) MonteCarloStats {
	n := len(scores)

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(n)

	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	stdDev := math.Sqrt(variance / float64(n))

	at := func(p float64) float64 {
		i := int(float64(n) * p)
		if i >= n {
			i = n - 1
		}
		return scores[i]
	}

	return MonteCarloStats{
		Mean:   mean,
		Median: scores[n/2],
		StdDev: stdDev,
		Min:    scores[0],
		Max:    scores[n-1],
		P5:     at(0.05),
		P25:    at(0.25),
		P75:    at(0.75),
		P95:    at(0.95),
	}
}

// assessRisk buckets volatility (coefficient of variation) into risk tiers
// and derives the downside/upside asymmetry around the baseline.
func assessRisk(stats MonteCarloStats, baseline float64) RiskAssessment {
	volatility := 1.0
	if stats.Mean > 0 {
		volatility = stats.StdDev / stats.Mean
	}

	var level string
	switch {
	case volatility < 0.1:
		level = "very_low"
	case volatility < 0.2:
		level = "low"
	case volatility < 0.3:
		level = "medium"
	case volatility < 0.5:
		level = "high"
	default:
		level = "very_high"
	}

	downside := math.Max(0, baseline-stats.P5)
	upside := math.Max(0, stats.P95-baseline)
	ratio := math.Inf(1)
	if downside > 0 {
		ratio = upside / downside
	}

	return RiskAssessment{
		RiskLevel:       level,
		Volatility:      volatility,
		DownsideRisk:    downside,
		UpsidePotential: upside,
		RiskRewardRatio: ratio,
	}
}
