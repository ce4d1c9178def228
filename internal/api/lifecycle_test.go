package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Siteline-Labs/Siteline/internal/analysis"
	"github.com/Siteline-Labs/Siteline/internal/analyze"
)

// Full flow: analyze a site, then drill into the top-ranked business with
// scenarios and a simulation, the way a client walks the API.
func TestAnalysisLifecycle(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/api/v1/analyses", `{"lat":10.7769,"lon":106.7009}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var a analyze.Analysis
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&a))
	assert.NotEmpty(t, a.Rankings)
	assert.NotNil(t, a.Context)

	top := a.Rankings[0].Result.BusinessID
	ctxJSON, err := json.Marshal(a.Context)
	assert.NoError(t, err)

	body := fmt.Sprintf(`{"business_id":%q,"context":%s}`, top, ctxJSON)
	w = postJSON(t, router, "/api/v1/scenarios", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var scenarios struct {
		Scenarios []analysis.ScenarioResult `json:"scenarios"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&scenarios))
	assert.NotEmpty(t, scenarios.Scenarios)

	body = fmt.Sprintf(`{"business_id":%q,"simulations":100,"seed":3,"context":%s}`, top, ctxJSON)
	w = postJSON(t, router, "/api/v1/montecarlo", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var sim analysis.MonteCarloResult
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&sim))
	assert.Equal(t, 100, sim.NumSimulations)
	assert.NotEmpty(t, sim.Risk.RiskLevel)
}
