package engine

// Category groups business types for modifier lookups.
type Category string

const (
	CategoryFoodBeverage  Category = "food_beverage"
	CategoryRetail        Category = "retail"
	CategoryService       Category = "service"
	CategoryEntertainment Category = "entertainment"
)

var businessCategories = map[string]Category{
	// Food & beverage
	"cafe":       CategoryFoodBeverage,
	"milk_tea":   CategoryFoodBeverage,
	"fast_food":  CategoryFoodBeverage,
	"bakery":     CategoryFoodBeverage,
	"ice_cream":  CategoryFoodBeverage,
	"drink_shop": CategoryFoodBeverage,

	// Service
	"spa":        CategoryService,
	"pharmacy":   CategoryService,
	"hair_salon": CategoryService,
	"nail":       CategoryService,
	"barbershop": CategoryService,
	"laundry":    CategoryService,
	"repair":     CategoryService,
	"printing":   CategoryService,

	// Retail
	"grocery":     CategoryRetail,
	"clothing":    CategoryRetail,
	"electronics": CategoryRetail,
	"bookstore":   CategoryRetail,
	"stationery":  CategoryRetail,
	"pet_shop":    CategoryRetail,
	"toy_store":   CategoryRetail,
	"flower_shop": CategoryRetail,
	"bike_shop":   CategoryRetail,

	// Entertainment
	"gaming": CategoryEntertainment,
	"tattoo": CategoryEntertainment,
}

// CategoryOf returns the grouping for a business id. Unknown ids (free-text
// categories are a normal case) fall back to service.
func CategoryOf(businessID string) Category {
	if c, ok := businessCategories[businessID]; ok {
		return c
	}
	return CategoryService
}

// KnownBusinesses returns every business id in the catalog, in a stable order.
// Used by the ranking flow to score all candidates at a site.
func KnownBusinesses() []string {
	return []string{
		"cafe", "milk_tea", "fast_food", "bakery", "ice_cream", "drink_shop",
		"spa", "pharmacy", "hair_salon", "nail", "barbershop", "laundry", "repair", "printing",
		"grocery", "clothing", "electronics", "bookstore", "stationery", "pet_shop",
		"toy_store", "flower_shop", "bike_shop",
		"gaming", "tattoo",
	}
}
