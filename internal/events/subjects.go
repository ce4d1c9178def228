package events

const (
	StreamName   = "SITELINE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectAnalysisStarted(analysisID string) string {
	return "siteline.analysis." + analysisID + ".started"
}
func SubjectAnalysisCompleted(analysisID string) string {
	return "siteline.analysis." + analysisID + ".completed"
}
func SubjectAnalysisFailed(analysisID string) string {
	return "siteline.analysis." + analysisID + ".failed"
}
func SubjectSimulationCompleted(analysisID string) string {
	return "siteline.simulation." + analysisID + ".completed"
}
