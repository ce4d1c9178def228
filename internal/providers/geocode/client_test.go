package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeParsesFirstMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "145 Le Loi" {
			t.Errorf("query = %q", got)
		}
		if r.Header.Get("User-Agent") != "siteline-test" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{"lat":"10.7769","lon":"106.7009","display_name":"Le Loi, District 1"}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "siteline-test")
	loc, err := c.Geocode(context.Background(), "145 Le Loi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Lat != 10.7769 || loc.Lon != 106.7009 {
		t.Errorf("coordinates = (%f, %f)", loc.Lat, loc.Lon)
	}
	if loc.DisplayName != "Le Loi, District 1" {
		t.Errorf("display name = %q", loc.DisplayName)
	}
}

func TestGeocodeNoMatchIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "siteline-test")
	if _, err := c.Geocode(context.Background(), "nowhere at all"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "siteline-test")
	if _, err := c.Geocode(context.Background(), "145 Le Loi"); err == nil {
		t.Fatal("expected error for 429")
	}
}
