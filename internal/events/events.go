package events

import "time"

type AnalysisStartedEvent struct {
	AnalysisID string    `json:"analysis_id"`
	Address    string    `json:"address,omitempty"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Radius     int       `json:"radius_meters"`
	Timestamp  time.Time `json:"timestamp"`
}

type AnalysisCompletedEvent struct {
	AnalysisID    string    `json:"analysis_id"`
	TopBusiness   string    `json:"top_business"`
	TopScore      float64   `json:"top_score"`
	RankedCount   int       `json:"ranked_count"`
	OverallRisk   string    `json:"overall_risk,omitempty"`
	DurationMs    float64   `json:"duration_ms"`
	Timestamp     time.Time `json:"timestamp"`
}

type AnalysisFailedEvent struct {
	AnalysisID string    `json:"analysis_id"`
	Stage      string    `json:"stage"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}

type SimulationCompletedEvent struct {
	AnalysisID  string    `json:"analysis_id"`
	BusinessID  string    `json:"business_id"`
	Simulations int       `json:"simulations"`
	MeanScore   float64   `json:"mean_score"`
	RiskLevel   string    `json:"risk_level"`
	Timestamp   time.Time `json:"timestamp"`
}
