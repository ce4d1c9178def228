package engine

import (
	"math"
	"testing"
)

func testContext() *MarketContext {
	return &MarketContext{
		OSM: map[string]int{
			TagPolice: 1, TagHospital: 1, TagBusStop: 3, TagSubway: 1,
			TagSchool: 2, TagOffice: 2, TagPark: 1, TagResidential: 4,
		},
		CategoryCounts:    map[string]int{"milk_tea": 2, "cafe": 3, "grocery": 1},
		PopulationDensity: 2000,
		IncomeLevel:       IncomeMedium,
		FootTraffic:       0.6,
		RentLevel:         2,
		SeasonalFactor:    1.0,
	}
}

func TestScoreComponentsBounds(t *testing.T) {
	ctx := testContext()
	for _, id := range append(KnownBusinesses(), "unicorn_shop") {
		scores := ScoreComponents(id, Inputs{CustomerTarget: "student"}, ctx)
		if len(scores) != len(AllFactors) {
			t.Errorf("%s: got %d components, want %d", id, len(scores), len(AllFactors))
		}
		for f, s := range scores {
			if s < 0 || s > 1 {
				t.Errorf("%s/%s: score %f out of [0,1]", id, f, s)
			}
		}
	}
}

func TestCompetitionScoreMonotonic(t *testing.T) {
	ctx := testContext()
	prev := 1.1
	for n := 0; n <= 20; n += 4 {
		ctx.CategoryCounts["cafe"] = n
		s := competitionScore("cafe", ctx)
		if s > prev+1e-9 {
			t.Errorf("competition score rose from %f to %f when competitors grew to %d", prev, s, n)
		}
		prev = s
	}
}

func TestCompetitionCurveMidpoint(t *testing.T) {
	// 3 competitors against capacity 6*1.0*1.0 puts saturation exactly on the
	// logistic midpoint
	ctx := &MarketContext{
		CategoryCounts:    map[string]int{"grocery": 3},
		PopulationDensity: 1000,
		IncomeLevel:       IncomeMedium,
	}
	got := competitionScore("grocery", ctx)
	want := 0.5 * competitionIntensity[CategoryOf("grocery")]
	if math.Abs(got-want) > 0.001 {
		t.Errorf("midpoint competition score = %f, want %f", got, want)
	}
}

func TestSafetyTransportLandmarkFormulas(t *testing.T) {
	ctx := &MarketContext{OSM: map[string]int{
		TagPolice: 2, TagHospital: 2, TagBusStop: 2, TagSubway: 2,
		TagSchool: 4, TagOffice: 4, TagPark: 4,
	}}
	if got := safetyScore(ctx); got != 1.0 {
		t.Errorf("safety capped score = %f, want 1.0", got)
	}
	if got := transportScore(ctx); got != 1.0 {
		t.Errorf("transport capped score = %f, want 1.0", got)
	}
	if got := landmarkScore(ctx); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("landmark score = %f, want 1.0", got)
	}

	empty := &MarketContext{}
	if got := safetyScore(empty); got != 0 {
		t.Errorf("safety with no features = %f, want 0", got)
	}
	partial := &MarketContext{OSM: map[string]int{TagBusStop: 1, TagSubway: 1}}
	if got := transportScore(partial); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("transport (1 bus + 1 subway) = %f, want 0.6", got)
	}
}

func TestCustomerMatchFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		business string
		target   string
		want     float64
	}{
		{"matrix hit", "milk_tea", "student", 1.0},
		{"known segment unlisted pair", "pharmacy", "student", 0.4},
		{"unknown segment general default", "cafe", "astronaut", generalDefaults["cafe"]},
		{"unknown segment unknown business", "unicorn_shop", "astronaut", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerMatch(tt.business, tt.target); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CustomerMatch(%s, %s) = %f, want %f", tt.business, tt.target, got, tt.want)
			}
		})
	}
}

func TestSeasonalFactorClamped(t *testing.T) {
	for _, id := range KnownBusinesses() {
		for month := 1; month <= 12; month++ {
			f := SeasonalFactor(id, "student", month)
			if f < 0.3 || f > 2.0 {
				t.Errorf("%s month %d: seasonal factor %f out of [0.3,2.0]", id, month, f)
			}
		}
	}
}

func TestSeasonalFactorInvalidMonthUsesCurrent(t *testing.T) {
	// must not panic and must stay in range
	for _, month := range []int{0, -3, 13} {
		f := SeasonalFactor("cafe", "student", month)
		if f < 0.3 || f > 2.0 {
			t.Errorf("month %d: seasonal factor %f out of range", month, f)
		}
	}
}

func TestCategoryOfUnknownIsService(t *testing.T) {
	if got := CategoryOf("unicorn_shop"); got != CategoryService {
		t.Errorf("unknown business category = %s, want %s", got, CategoryService)
	}
}
