// Package analyze orchestrates a full site analysis: resolve the location,
// gather area signals from the data providers, build a market context, and
// rank every known business category at that site.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Siteline-Labs/Siteline/internal/analysis"
	"github.com/Siteline-Labs/Siteline/internal/engine"
	"github.com/Siteline-Labs/Siteline/internal/events"
	"github.com/Siteline-Labs/Siteline/internal/providers"
	"github.com/Siteline-Labs/Siteline/internal/providers/areafeatures"
	"github.com/Siteline-Labs/Siteline/internal/providers/geocode"
	"github.com/Siteline-Labs/Siteline/internal/providers/places"
	"github.com/Siteline-Labs/Siteline/internal/rules"
)

// Request describes one analysis. Either Address or explicit coordinates must
// be set; explicit coordinates win when both are present.
type Request struct {
	Address        string   `json:"address,omitempty"`
	Lat            float64  `json:"lat,omitempty"`
	Lon            float64  `json:"lon,omitempty"`
	RadiusMeters   int      `json:"radius_meters,omitempty"`
	CustomerTarget string   `json:"customer_target,omitempty"`
	PriceLevel     int      `json:"price_level,omitempty"`
	Month          int      `json:"month,omitempty"`
	BusinessIDs    []string `json:"business_ids,omitempty"`
}

// Ranking pairs a scored business with its rule evaluation.
type Ranking struct {
	Result      *engine.ScoringResult `json:"result"`
	RuleResults []rules.Result        `json:"rule_results,omitempty"`
	RuleSummary rules.Summary         `json:"rule_summary"`
}

// Analysis is the complete output for one site.
type Analysis struct {
	ID          string                            `json:"id"`
	Address     string                            `json:"address,omitempty"`
	Lat         float64                           `json:"lat"`
	Lon         float64                           `json:"lon"`
	Context     *engine.MarketContext             `json:"context"`
	DataQuality map[string]providers.DataQuality  `json:"data_quality"`
	Rankings    []Ranking                         `json:"rankings"`
	Market      *engine.MarketInsights            `json:"market"`
	Clusters    []VenueCluster                    `json:"clusters,omitempty"`
	CreatedAt   time.Time                         `json:"created_at"`
}

// Service wires the engine, the rule engine, and the data providers together.
type Service struct {
	engine   *engine.Engine
	rules    *rules.Engine
	geocoder geocode.Client
	places   places.Client
	features areafeatures.Client
	events   events.Client // optional; nil disables publishing
	radius   int
	logger   *slog.Logger
}

func NewService(eng *engine.Engine, ruleEngine *rules.Engine,
	geocoder geocode.Client, placesClient places.Client, features areafeatures.Client,
	eventsClient events.Client, radiusMeters int, logger *slog.Logger) *Service {
	if radiusMeters <= 0 {
		radiusMeters = 1000
	}
	return &Service{
		engine:   eng,
		rules:    ruleEngine,
		geocoder: geocoder,
		places:   placesClient,
		features: features,
		events:   eventsClient,
		radius:   radiusMeters,
		logger:   logger,
	}
}

// Run executes an analysis end to end. Provider failures degrade the data
// quality record instead of failing the run; only an unresolvable location is
// a hard error.
func (s *Service) Run(ctx context.Context, req Request) (*Analysis, error) {
	started := time.Now()
	id := uuid.New().String()

	radius := req.RadiusMeters
	if radius <= 0 {
		radius = s.radius
	}

	lat, lon := req.Lat, req.Lon
	if lat == 0 && lon == 0 {
		if req.Address == "" {
			return nil, fmt.Errorf("analysis needs an address or coordinates")
		}
		loc, err := s.geocoder.Geocode(ctx, req.Address)
		if err != nil {
			s.publishFailed(id, "geocode", err)
			return nil, fmt.Errorf("geocode: %w", err)
		}
		lat, lon = loc.Lat, loc.Lon
	}

	s.publish(events.SubjectAnalysisStarted(id), events.AnalysisStartedEvent{
		AnalysisID: id, Address: req.Address, Lat: lat, Lon: lon,
		Radius: radius, Timestamp: started,
	})

	quality := map[string]providers.DataQuality{}

	venues, err := s.places.Search(ctx, places.Query{Lat: lat, Lon: lon, Radius: radius})
	if err != nil {
		s.logger.Warn("place search failed", "analysis", id, "error", err)
		quality["places"] = providers.QualityMissing
		venues = nil
	} else {
		quality["places"] = providers.QualityLive
	}

	counts, err := s.features.Counts(ctx, lat, lon, radius)
	if err != nil {
		s.logger.Warn("area feature lookup failed", "analysis", id, "error", err)
		quality["area_features"] = providers.QualityMissing
		counts = map[string]int{}
	} else if !anyPositive(counts) {
		quality["area_features"] = providers.QualityDegraded
	} else {
		quality["area_features"] = providers.QualityLive
	}

	mktx := buildContext(venues, counts)

	in := engine.Inputs{
		CustomerTarget: req.CustomerTarget,
		PriceLevel:     req.PriceLevel,
		Month:          req.Month,
	}
	ids := req.BusinessIDs
	if len(ids) == 0 {
		ids = engine.KnownBusinesses()
	}

	rankings := make([]Ranking, 0, len(ids))
	for _, businessID := range ids {
		result := s.engine.ScoreBusiness(businessID, in, mktx)
		ruleResults := s.rules.Evaluate(businessID, mktx, result.Components)
		rankings = append(rankings, Ranking{
			Result:      result,
			RuleResults: ruleResults,
			RuleSummary: rules.Summarize(ruleResults),
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Result.Score > rankings[j].Result.Score
	})

	venueClusters, err := clusterVenues(venues)
	if err != nil {
		s.logger.Warn("venue clustering failed", "analysis", id, "error", err)
	}

	out := &Analysis{
		ID:          id,
		Address:     req.Address,
		Lat:         lat,
		Lon:         lon,
		Context:     mktx,
		DataQuality: quality,
		Rankings:    rankings,
		Market:      engine.AnalyzeMarket(mktx),
		Clusters:    venueClusters,
		CreatedAt:   started,
	}

	if len(rankings) > 0 {
		top := rankings[0]
		s.publish(events.SubjectAnalysisCompleted(id), events.AnalysisCompletedEvent{
			AnalysisID:  id,
			TopBusiness: top.Result.BusinessID,
			TopScore:    top.Result.Score,
			RankedCount: len(rankings),
			OverallRisk: top.RuleSummary.OverallRisk,
			DurationMs:  float64(time.Since(started).Milliseconds()),
			Timestamp:   time.Now(),
		})
	}
	return out, nil
}

// RunMonteCarlo wraps the planner's simulation with event publication.
func (s *Service) RunMonteCarlo(planner *analysis.Planner, businessID string,
	mktx *engine.MarketContext, opts analysis.MonteCarloOptions) (*analysis.MonteCarloResult, error) {
	result, err := planner.RunMonteCarlo(businessID, mktx, opts)
	if err != nil {
		return nil, err
	}

	simID := uuid.New().String()
	s.publish(events.SubjectSimulationCompleted(simID), events.SimulationCompletedEvent{
		AnalysisID:  simID,
		BusinessID:  businessID,
		Simulations: result.NumSimulations,
		MeanScore:   result.Statistics.Mean,
		RiskLevel:   result.Risk.RiskLevel,
		Timestamp:   time.Now(),
	})
	return result, nil
}

func (s *Service) publish(subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func (s *Service) publishFailed(id, stage string, cause error) {
	s.publish(events.SubjectAnalysisFailed(id), events.AnalysisFailedEvent{
		AnalysisID: id, Stage: stage, Error: cause.Error(), Timestamp: time.Now(),
	})
}

func anyPositive(counts map[string]int) bool {
	for _, n := range counts {
		if n > 0 {
			return true
		}
	}
	return false
}

// buildContext derives a MarketContext from raw provider output. The derived
// signals are coarse heuristics: population density from housing counts, foot
// traffic from venue density, rent level from office concentration.
func buildContext(venues []places.Venue, counts map[string]int) *engine.MarketContext {
	categoryCounts := map[string]int{}
	for _, v := range venues {
		categoryCounts[normalizeCategory(v.Category)]++
	}

	osm := make(map[string]int, len(engine.FeatureTags))
	for _, tag := range engine.FeatureTags {
		osm[tag] = counts[tag]
	}

	mktx := &engine.MarketContext{
		OSM:               osm,
		CategoryCounts:    categoryCounts,
		PopulationDensity: float64(osm[engine.TagResidential]) * 300,
		FootTraffic:       math.Min(float64(len(venues))/50, 1.0),
		RentLevel:         rentLevelFor(osm),
	}
	mktx.IncomeLevel = engine.EstimateIncomeLevel(mktx)
	return mktx
}

func rentLevelFor(osm map[string]int) int {
	commercial := osm[engine.TagOffice] + 2*osm[engine.TagSubway]
	switch {
	case commercial > 15:
		return 4
	case commercial > 8:
		return 3
	case commercial > 3:
		return 2
	default:
		return 1
	}
}
