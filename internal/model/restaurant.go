package model

// Restaurant is a catalog record describing a venue users can book a
// table at. The catalog is read-only from this service's perspective:
// rows are seeded/managed externally and only ever queried here.
// Optional columns are pointers so that nil maps to an absent JSON
// field. Restaurants are returned to clients verbatim, so json tags
// live on the model itself.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – restaurant display name.
//  Location     – neighbourhood / city string used for searching.
//  Description  – free-text description.
//  Image        – cover image URL.
//  Cuisine      – cuisine label (nullable).
//  Rating       – average rating (nullable).
//  PriceRange   – price indicator such as "€€€" (nullable).
//  OpeningHours – human-readable opening hours (nullable).
//  Phone        – contact phone (nullable).
//  MenuItems    – ordered menu, populated on detail lookups only.
type Restaurant struct {
	ID           uint64     `json:"id"`           // restaurants.restaurant_id
	Name         string     `json:"name"`         // restaurants.name
	Location     string     `json:"location"`     // restaurants.location
	Description  string     `json:"description"`  // restaurants.description
	Image        string     `json:"image"`        // restaurants.image
	Cuisine      *string    `json:"cuisine,omitempty"`      // restaurants.cuisine (nullable)
	Rating       *float64   `json:"rating,omitempty"`       // restaurants.rating (nullable)
	PriceRange   *string    `json:"priceRange,omitempty"`   // restaurants.price_range (nullable)
	OpeningHours *string    `json:"openingHours,omitempty"` // restaurants.opening_hours (nullable)
	Phone        *string    `json:"phone,omitempty"`        // restaurants.phone (nullable)
	MenuItems    []MenuItem `json:"menuItems,omitempty"`
}

// MenuItem is a single dish on a restaurant's menu. Price is kept as
// the display string the catalog stores (e.g. "€14.99"); this service
// never computes with it.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant.
//  Name         – dish name.
//  Description  – dish description.
//  Price        – display price string.
//  Category     – menu section (e.g. "Pasta", "Dessert").
//  Image        – dish image URL (nullable).
type MenuItem struct {
	ID           uint64  `json:"id"`          // menu_items.menu_item_id
	RestaurantID uint64  `json:"-"`           // menu_items.restaurant_id
	Name         string  `json:"name"`        // menu_items.name
	Description  string  `json:"description"` // menu_items.description
	Price        string  `json:"price"`       // menu_items.price
	Category     string  `json:"category"`    // menu_items.category
	Image        *string `json:"image,omitempty"` // menu_items.image (nullable)
}
