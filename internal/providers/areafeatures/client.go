// Package areafeatures counts points of interest around a coordinate through
// an Overpass-compatible OpenStreetMap query service.
package areafeatures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Siteline-Labs/Siteline/internal/engine"
)

type Client interface {
	// Counts returns a feature-tag → count map covering every tag in
	// engine.FeatureTags; absent features count 0.
	Counts(ctx context.Context, lat, lon float64, radiusMeters int) (map[string]int, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		// Overpass queries routinely run long; the server-side timeout below
		// is 25s, so the client allows slightly more.
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func buildQuery(lat, lon float64, radius int) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", radius, lat, lon)
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	b.WriteString(`node["amenity"~"^(school|hospital|pharmacy|police)$"]` + around + ";")
	b.WriteString(`node["public_transport"="stop_position"]` + around + ";")
	b.WriteString(`node["railway"="subway"]` + around + ";")
	b.WriteString(`node["leisure"="park"]` + around + ";")
	b.WriteString(`node["office"]` + around + ";")
	b.WriteString(`way["building"="residential"]` + around + ";")
	b.WriteString(");out center;")
	return b.String()
}

func (c *HTTPClient) Counts(ctx context.Context, lat, lon float64, radiusMeters int) (map[string]int, error) {
	form := url.Values{}
	form.Set("data", buildQuery(lat, lon, radiusMeters))

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/interpreter",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("area features: %d %s", resp.StatusCode, string(body))
	}

	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(engine.FeatureTags))
	for _, tag := range engine.FeatureTags {
		counts[tag] = 0
	}
	for _, el := range parsed.Elements {
		if tag := classify(el.Tags); tag != "" {
			counts[tag]++
		}
	}
	return counts, nil
}

// classify maps an element's OSM tags onto one of the engine's feature tags.
func classify(tags map[string]string) string {
	switch tags["amenity"] {
	case "school", "hospital", "pharmacy", "police":
		return tags["amenity"]
	}
	if tags["public_transport"] == "stop_position" {
		return engine.TagBusStop
	}
	if tags["railway"] == "subway" {
		return engine.TagSubway
	}
	if tags["leisure"] == "park" {
		return engine.TagPark
	}
	if _, ok := tags["office"]; ok {
		return engine.TagOffice
	}
	if tags["building"] == "residential" {
		return engine.TagResidential
	}
	return ""
}
