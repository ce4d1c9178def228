// Package providers defines the shared data-quality vocabulary for the
// external data sources feeding an analysis.
package providers

// DataQuality states how trustworthy a collaborator's response was. The
// analysis layer records one per source instead of silently substituting
// defaults; callers see exactly which inputs were degraded.
type DataQuality string

const (
	// QualityLive means the source answered and the data is fresh.
	QualityLive DataQuality = "live"
	// QualityDegraded means the source answered partially or with stale data.
	QualityDegraded DataQuality = "degraded"
	// QualityMissing means the source failed and defaults were used.
	QualityMissing DataQuality = "missing"
)
