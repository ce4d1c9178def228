package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesVenues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		q := r.URL.Query()
		if q.Get("radius") != "1000" || q.Get("limit") != "50" {
			t.Errorf("params = %v", q)
		}
		w.Write([]byte(`{"results":[
			{"name":"Highlands Coffee","categories":[{"id":13032,"name":"cafe"}],
			 "geocodes":{"main":{"latitude":10.77,"longitude":106.70}}},
			{"name":"Mystery Spot","categories":[],
			 "geocodes":{"main":{"latitude":10.78,"longitude":106.71}}}
		]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	venues, err := c.Search(context.Background(), Query{Lat: 10.7769, Lon: 106.7009, Radius: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("got %d venues, want 2", len(venues))
	}
	if venues[0].Category != "cafe" {
		t.Errorf("category = %q, want cafe", venues[0].Category)
	}
	if venues[1].Category != "unknown" {
		t.Errorf("uncategorized venue = %q, want unknown", venues[1].Category)
	}
}

func TestSearchPriceFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("min_price") != "2" || q.Get("max_price") != "3" {
			t.Errorf("price params = %v", q)
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	venues, err := c.Search(context.Background(), Query{Radius: 500, MinPrice: 2, MaxPrice: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(venues) != 0 {
		t.Errorf("got %d venues, want 0", len(venues))
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "bad-key")
	if _, err := c.Search(context.Background(), Query{Radius: 1000}); err == nil {
		t.Fatal("expected error for 401")
	}
}
