package analysis

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/Siteline-Labs/Siteline/internal/engine"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPlanner() *Planner {
	return NewPlanner(engine.New(discardLogger()), discardLogger())
}

func sampleContext() *engine.MarketContext {
	return &engine.MarketContext{
		OSM: map[string]int{
			engine.TagPolice: 1, engine.TagHospital: 1, engine.TagBusStop: 3,
			engine.TagSubway: 1, engine.TagSchool: 2, engine.TagOffice: 2,
			engine.TagPark: 1, engine.TagResidential: 5,
		},
		CategoryCounts:    map[string]int{"milk_tea": 3, "cafe": 2},
		PopulationDensity: 2000,
		IncomeLevel:       engine.IncomeMedium,
		FootTraffic:       0.6,
		RentLevel:         2,
		SeasonalFactor:    1.0,
	}
}

func TestRunScenariosCoversCatalog(t *testing.T) {
	p := newPlanner()
	results := p.RunScenarios("milk_tea", sampleContext(), nil)
	if len(results) != len(BaseScenarios()) {
		t.Fatalf("got %d results, want %d", len(results), len(BaseScenarios()))
	}

	// sorted by impact magnitude, largest first
	for i := 1; i < len(results); i++ {
		if math.Abs(results[i].ScoreChange) > math.Abs(results[i-1].ScoreChange)+1e-9 {
			t.Errorf("results not sorted by impact: %s (%f) after %s (%f)",
				results[i].ScenarioName, results[i].ScoreChange,
				results[i-1].ScenarioName, results[i-1].ScoreChange)
		}
	}

	for _, r := range results {
		if len(r.KeyImpacts) == 0 || len(r.KeyImpacts) > 3 {
			t.Errorf("%s: %d key impacts, want 1-3", r.ScenarioName, len(r.KeyImpacts))
		}
		if r.RiskLevelChange == "" {
			t.Errorf("%s: missing risk level change", r.ScenarioName)
		}
	}
}

func TestRunScenariosDoesNotMutateContext(t *testing.T) {
	p := newPlanner()
	ctx := sampleContext()
	p.RunScenarios("cafe", ctx, nil)
	want := sampleContext()
	for tag, n := range want.OSM {
		if ctx.OSM[tag] != n {
			t.Errorf("OSM[%s] mutated: %d, want %d", tag, ctx.OSM[tag], n)
		}
	}
	for cat, n := range want.CategoryCounts {
		if ctx.CategoryCounts[cat] != n {
			t.Errorf("CategoryCounts[%s] mutated: %d, want %d", cat, ctx.CategoryCounts[cat], n)
		}
	}
}

func TestEmptyScenarioLeavesScoreUnchanged(t *testing.T) {
	p := newPlanner()
	noop := ScenarioDefinition{Name: "noop", Modifications: map[engine.Factor]float64{}}
	results := p.RunScenarios("cafe", sampleContext(), []ScenarioDefinition{noop})

	for _, r := range results {
		if r.ScenarioName == "noop" {
			if math.Abs(r.ScoreChange) > 1e-9 {
				t.Errorf("noop scenario changed score by %f", r.ScoreChange)
			}
			if r.RiskLevelChange != "risk unchanged" {
				t.Errorf("noop risk change = %q", r.RiskLevelChange)
			}
			return
		}
	}
	t.Fatal("custom scenario missing from results")
}

func TestBusinessSpecificOverridesWin(t *testing.T) {
	sc := ScenarioDefinition{
		Modifications: map[engine.Factor]float64{
			engine.FactorCustomer:    0.3,
			engine.FactorCompetition: 0.1,
		},
		BusinessSpecific: map[string]map[engine.Factor]float64{
			"milk_tea": {engine.FactorCustomer: 0.5},
		},
	}
	mods := effectiveModifications(sc, "milk_tea")
	if mods[engine.FactorCustomer] != 0.5 {
		t.Errorf("customer delta = %f, want override 0.5", mods[engine.FactorCustomer])
	}
	if mods[engine.FactorCompetition] != 0.1 {
		t.Errorf("competition delta = %f, want general 0.1", mods[engine.FactorCompetition])
	}

	other := effectiveModifications(sc, "cafe")
	if other[engine.FactorCustomer] != 0.3 {
		t.Errorf("non-matching business got override: %f", other[engine.FactorCustomer])
	}
}

func TestApplyModificationsScalesCounts(t *testing.T) {
	ctx := sampleContext()
	applyModifications(ctx, map[engine.Factor]float64{
		engine.FactorCompetition: 1.0, // double competitors
		engine.FactorTransport:   -1.0,
	})
	if ctx.CategoryCounts["milk_tea"] != 6 {
		t.Errorf("milk_tea count = %d, want 6", ctx.CategoryCounts["milk_tea"])
	}
	if ctx.OSM[engine.TagBusStop] != 0 || ctx.OSM[engine.TagSubway] != 0 {
		t.Errorf("transit counts not floored at 0: bus=%d subway=%d",
			ctx.OSM[engine.TagBusStop], ctx.OSM[engine.TagSubway])
	}
	// non-transit features untouched
	if ctx.OSM[engine.TagSchool] != 2 {
		t.Errorf("school count mutated: %d", ctx.OSM[engine.TagSchool])
	}
}

func TestRiskLevelChangeThresholds(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{25, "risk reduced significantly"},
		{15, "risk reduced slightly"},
		{0, "risk unchanged"},
		{-15, "risk increased slightly"},
		{-25, "risk increased significantly"},
	}
	for _, tt := range tests {
		if got := riskLevelChange(tt.pct); got != tt.want {
			t.Errorf("riskLevelChange(%f) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
