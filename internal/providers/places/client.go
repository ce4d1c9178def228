// Package places searches venues around a coordinate through a
// Foursquare-style place-search API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Venue is one existing business near the analyzed site.
type Venue struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Query bounds a venue search. Radius is in meters; MinPrice/MaxPrice follow
// the provider's 1-4 price tiers, zero meaning unset.
type Query struct {
	Lat      float64
	Lon      float64
	Radius   int
	MinPrice int
	MaxPrice int
	Limit    int
}

type Client interface {
	Search(ctx context.Context, q Query) ([]Venue, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Results []struct {
		Name       string `json:"name"`
		Categories []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"categories"`
		Geocodes struct {
			Main struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"main"`
		} `json:"geocodes"`
	} `json:"results"`
}

// Search returns venues around the query point. Venues without a category
// come back with Category "unknown" rather than being dropped.
func (c *HTTPClient) Search(ctx context.Context, q Query) ([]Venue, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", q.Lat, q.Lon))
	params.Set("radius", strconv.Itoa(q.Radius))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.MinPrice > 0 {
		params.Set("min_price", strconv.Itoa(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		params.Set("max_price", strconv.Itoa(q.MaxPrice))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/places/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)

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
		return nil, fmt.Errorf("places search: %d %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	venues := make([]Venue, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		category := "unknown"
		if len(r.Categories) > 0 {
			category = r.Categories[0].Name
		}
		venues = append(venues, Venue{
			Name:     r.Name,
			Category: category,
			Lat:      r.Geocodes.Main.Latitude,
			Lon:      r.Geocodes.Main.Longitude,
		})
	}
	return venues, nil
}
