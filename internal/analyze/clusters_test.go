package analyze

import (
	"testing"

	"github.com/Siteline-Labs/Siteline/internal/providers/places"
)

func TestClusterVenuesTooFew(t *testing.T) {
	got, err := clusterVenues([]places.Venue{{Name: "solo", Lat: 10.77, Lon: 106.70}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("single venue should not cluster, got %v", got)
	}
}

func TestClusterVenuesCapsK(t *testing.T) {
	venues := []places.Venue{
		{Name: "a", Lat: 10.770, Lon: 106.700},
		{Name: "b", Lat: 10.780, Lon: 106.710},
	}
	got, err := clusterVenues(venues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > len(venues) {
		t.Errorf("%d clusters from %d venues", len(got), len(venues))
	}
	named := 0
	for _, c := range got {
		named += len(c.Venues)
	}
	if named != len(venues) {
		t.Errorf("clusters name %d venues, want %d", named, len(venues))
	}
}

func TestClusterVenuesSpatialGrouping(t *testing.T) {
	// two tight groups far apart plus filler to reach k=4
	venues := []places.Venue{
		{Name: "n1", Lat: 10.700, Lon: 106.700},
		{Name: "n2", Lat: 10.701, Lon: 106.701},
		{Name: "s1", Lat: 10.900, Lon: 106.900},
		{Name: "s2", Lat: 10.901, Lon: 106.901},
		{Name: "w1", Lat: 10.800, Lon: 106.600},
		{Name: "e1", Lat: 10.800, Lon: 107.000},
	}
	got, err := clusterVenues(venues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 || len(got) > maxClusters {
		t.Fatalf("cluster count = %d", len(got))
	}
	for _, c := range got {
		if c.CenterLat < 10.6 || c.CenterLat > 11.0 || c.CenterLon < 106.5 || c.CenterLon > 107.1 {
			t.Errorf("cluster center (%f, %f) outside venue bounding box", c.CenterLat, c.CenterLon)
		}
	}
}
