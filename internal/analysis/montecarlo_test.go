package analysis

import (
	"math"
	"testing"
)

func TestMonteCarloReproducibleWithSeed(t *testing.T) {
	p := newPlanner()
	opts := MonteCarloOptions{Simulations: 200, Workers: 4, Seed: 42}

	a, err := p.RunMonteCarlo("cafe", sampleContext(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.RunMonteCarlo("cafe", sampleContext(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Statistics.Mean != b.Statistics.Mean || a.Statistics.StdDev != b.Statistics.StdDev {
		t.Errorf("seeded runs differ: mean %f vs %f, stddev %f vs %f",
			a.Statistics.Mean, b.Statistics.Mean, a.Statistics.StdDev, b.Statistics.StdDev)
	}
}

func TestMonteCarloStatisticsConsistent(t *testing.T) {
	p := newPlanner()
	res, err := p.RunMonteCarlo("milk_tea", sampleContext(), MonteCarloOptions{Simulations: 500, Seed: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := res.Statistics
	if s.Min > s.P5 || s.P5 > s.P25 || s.P25 > s.Median || s.Median > s.P75 || s.P75 > s.P95 || s.P95 > s.Max {
		t.Errorf("percentiles not monotonic: %+v", s)
	}
	if s.Mean < s.Min || s.Mean > s.Max {
		t.Errorf("mean %f outside [min,max] [%f,%f]", s.Mean, s.Min, s.Max)
	}
	if s.Min < 0 || s.Max > 100 {
		t.Errorf("scores escaped [0,100]: min %f max %f", s.Min, s.Max)
	}
	if res.NumSimulations != 500 {
		t.Errorf("num simulations = %d, want 500", res.NumSimulations)
	}
	if res.ProbabilityBelowBaseline < 0 || res.ProbabilityBelowBaseline > 1 {
		t.Errorf("probability below baseline = %f", res.ProbabilityBelowBaseline)
	}
	if res.ProbabilitySuccess < 0 || res.ProbabilitySuccess > 1 {
		t.Errorf("probability success = %f", res.ProbabilitySuccess)
	}
	if res.ConfidenceInterval90[0] != s.P5 || res.ConfidenceInterval90[1] != s.P95 {
		t.Errorf("confidence interval %v does not match p5/p95", res.ConfidenceInterval90)
	}
}

func TestMonteCarloRiskAssessment(t *testing.T) {
	t.Run("volatility tiers", func(t *testing.T) {
		tests := []struct {
			stdDev float64
			mean   float64
			want   string
		}{
			{5, 100, "very_low"},
			{15, 100, "low"},
			{25, 100, "medium"},
			{40, 100, "high"},
			{60, 100, "very_high"},
		}
		for _, tt := range tests {
			risk := assessRisk(MonteCarloStats{Mean: tt.mean, StdDev: tt.stdDev}, 50)
			if risk.RiskLevel != tt.want {
				t.Errorf("stddev %f: risk %s, want %s", tt.stdDev, risk.RiskLevel, tt.want)
			}
		}
	})

	t.Run("zero downside means infinite ratio", func(t *testing.T) {
		risk := assessRisk(MonteCarloStats{Mean: 60, StdDev: 5, P5: 55, P95: 70}, 50)
		if risk.DownsideRisk != 0 {
			t.Errorf("downside = %f, want 0", risk.DownsideRisk)
		}
		if !math.IsInf(risk.RiskRewardRatio, 1) {
			t.Errorf("risk reward = %f, want +Inf", risk.RiskRewardRatio)
		}
	})

	t.Run("zero mean counts as full volatility", func(t *testing.T) {
		risk := assessRisk(MonteCarloStats{Mean: 0, StdDev: 0}, 0)
		if risk.RiskLevel != "very_high" {
			t.Errorf("risk level = %s, want very_high", risk.RiskLevel)
		}
	})
}

func TestSummarizeScoresSingleValue(t *testing.T) {
	s := summarizeScores([]float64{42})
	if s.Mean != 42 || s.Median != 42 || s.Min != 42 || s.Max != 42 || s.P5 != 42 || s.P95 != 42 {
		t.Errorf("degenerate summary wrong: %+v", s)
	}
	if s.StdDev != 0 {
		t.Errorf("stddev of one sample = %f, want 0", s.StdDev)
	}
}

func TestMonteCarloOptionsDefaults(t *testing.T) {
	var opts MonteCarloOptions
	opts.normalize()
	if opts.Simulations != 1000 {
		t.Errorf("default simulations = %d, want 1000", opts.Simulations)
	}
	if opts.Workers <= 0 {
		t.Errorf("default workers = %d, want > 0", opts.Workers)
	}
	if opts.Seed == 0 {
		t.Error("default seed must be non-zero")
	}
	if opts.SuccessThreshold != DefaultSuccessThreshold {
		t.Errorf("default success threshold = %f", opts.SuccessThreshold)
	}
}
