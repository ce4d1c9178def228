package analyze

import "strings"

// categoryAliases maps provider category names (lowercased) onto the engine's
// business ids. Venue categories the engine has no opinion on stay under
// their own name in the counts so saturation totals remain honest.
var categoryAliases = map[string]string{
	"cafe":             "cafe",
	"coffee shop":      "cafe",
	"coffee":           "cafe",
	"bubble tea shop":  "milk_tea",
	"bubble tea":       "milk_tea",
	"milk tea":         "milk_tea",
	"fast food":        "fast_food",
	"fast food restaurant": "fast_food",
	"burger joint":     "fast_food",
	"pharmacy":         "pharmacy",
	"drugstore":        "pharmacy",
	"grocery store":    "grocery",
	"supermarket":      "grocery",
	"convenience store": "grocery",
	"spa":              "spa",
	"massage clinic":   "spa",
	"clothing store":   "clothing",
	"boutique":         "clothing",
	"electronics store": "electronics",
	"mobile phone shop": "electronics",
	"bakery":           "bakery",
	"juice bar":        "drink_shop",
	"bookstore":        "bookstore",
	"arcade":           "gaming",
	"internet cafe":    "gaming",
	"nail salon":       "nail",
	"hair salon":       "hair_salon",
	"barbershop":       "barbershop",
	"laundromat":       "laundry",
	"laundry service":  "laundry",
	"pet store":        "pet_shop",
	"flower shop":      "flower_shop",
	"florist":          "flower_shop",
	"ice cream parlor": "ice_cream",
	"stationery store": "stationery",
	"toy store":        "toy_store",
}

// normalizeCategory maps a provider category name to a business id, falling
// back to a slug of the provider name when no alias matches.
func normalizeCategory(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := categoryAliases[key]; ok {
		return id
	}
	if key == "" {
		return "unknown"
	}
	return strings.ReplaceAll(key, " ", "_")
}
