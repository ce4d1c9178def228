package analyze

import (
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/Siteline-Labs/Siteline/internal/providers/places"
)

// VenueCluster is a geographic grouping of nearby venues, used to spot
// commercial hot spots inside the search radius.
type VenueCluster struct {
	CenterLat float64  `json:"center_lat"`
	CenterLon float64  `json:"center_lon"`
	Venues    []string `json:"venues"`
}

const maxClusters = 4

// clusterVenues groups venues by coordinates with k-means, k capped at four.
// Fewer than two venues cannot be clustered and yield nil.
func clusterVenues(venues []places.Venue) ([]VenueCluster, error) {
	if len(venues) < 2 {
		return nil, nil
	}

	k := maxClusters
	if len(venues) < k {
		k = len(venues)
	}

	var obs clusters.Observations
	for _, v := range venues {
		obs = append(obs, clusters.Coordinates{v.Lat, v.Lon})
	}

	km := kmeans.New()
	partitioned, err := km.Partition(obs, k)
	if err != nil {
		return nil, err
	}

	out := make([]VenueCluster, 0, len(partitioned))
	for _, c := range partitioned {
		vc := VenueCluster{
			CenterLat: c.Center[0],
			CenterLon: c.Center[1],
		}
		for _, o := range c.Observations {
			coords := o.Coordinates()
			for _, v := range venues {
				if v.Lat == coords[0] && v.Lon == coords[1] {
					vc.Venues = append(vc.Venues, v.Name)
					break
				}
			}
		}
		out = append(out, vc)
	}
	return out, nil
}
