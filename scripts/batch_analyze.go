// batch_analyze.go — standalone script that reads candidate sites from a file
// and runs each through the Siteline API, printing the top-ranked businesses.
//
// The sites file holds one site per line, either an address or "lat,lon":
//
//	145 Le Loi, District 1
//	10.7769,106.7009
//
// Usage:
//
//	go run scripts/batch_analyze.go -sites sites.txt -api http://localhost:8700 -top 3
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type analysisRequest struct {
	Address        string  `json:"address,omitempty"`
	Lat            float64 `json:"lat,omitempty"`
	Lon            float64 `json:"lon,omitempty"`
	CustomerTarget string  `json:"customer_target,omitempty"`
}

type analysisResponse struct {
	ID       string `json:"id"`
	Rankings []struct {
		Result struct {
			BusinessID string  `json:"business_id"`
			Score      float64 `json:"score"`
			Confidence float64 `json:"confidence"`
		} `json:"result"`
		RuleSummary struct {
			OverallRisk string `json:"overall_risk"`
		} `json:"rule_summary"`
	} `json:"rankings"`
}

func main() {
	sitesPath := flag.String("sites", "sites.txt", "path to sites file")
	apiURL := flag.String("api", "http://localhost:8700", "Siteline API base URL")
	target := flag.String("target", "", "customer target segment")
	top := flag.Int("top", 3, "number of top businesses to print per site")
	dryRun := flag.Bool("dry-run", false, "print requests without posting")
	flag.Parse()

	f, err := os.Open(*sitesPath)
	if err != nil {
		log.Fatalf("open sites file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		req := parseSite(line)
		req.CustomerTarget = *target

		if *dryRun {
			b, _ := json.Marshal(req)
			fmt.Printf("%s\n", b)
			continue
		}

		resp, err := analyze(*apiURL, req)
		if err != nil {
			log.Printf("site %q: %v", line, err)
			continue
		}

		fmt.Printf("\n%s\n", line)
		n := *top
		if n > len(resp.Rankings) {
			n = len(resp.Rankings)
		}
		for i := 0; i < n; i++ {
			r := resp.Rankings[i]
			fmt.Printf("  %d. %-16s score=%5.1f confidence=%.2f risk=%s\n",
				i+1, r.Result.BusinessID, r.Result.Score, r.Result.Confidence,
				r.RuleSummary.OverallRisk)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read sites file: %v", err)
	}
}

// parseSite treats a "lat,lon" pair of numbers as coordinates and anything
// else as an address.
func parseSite(line string) analysisRequest {
	parts := strings.Split(line, ",")
	if len(parts) == 2 {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat == nil && errLon == nil {
			return analysisRequest{Lat: lat, Lon: lon}
		}
	}
	return analysisRequest{Address: line}
}

func analyze(apiURL string, req analysisRequest) (*analysisResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpResp, err := http.Post(apiURL+"/api/v1/analyses", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	var resp analysisResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
