// Package market serves the static marketplace and cold-storage catalogs.
// Listings are fixed for this version; there is no inventory backend.
package market

// Category of a marketplace listing.
type Category string

const (
	CategoryMedicine  Category = "MEDICINE"
	CategoryFeed      Category = "FEED"
	CategoryEquipment Category = "EQUIPMENT"
	CategorySeeds     Category = "SEEDS"
)

// Item is one marketplace listing.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    int      `json:"price"`
	Rating   float64  `json:"rating"`
	Image    string   `json:"image"`
}

// ColdStorage is one bookable cold-storage facility.
type ColdStorage struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Distance    string  `json:"distance"`
	Capacity    string  `json:"capacity"`
	PricePerDay int     `json:"pricePerDay"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
}

var items = []Item{
	{ID: "1", Name: "Premium Fish Feed", Category: CategoryFeed, Price: 1200, Rating: 4.8,
		Image: "https://images.unsplash.com/photo-1535591273668-578e31182c4f?q=80&w=800&auto=format&fit=crop"},
	{ID: "2", Name: "Water Test Kit Pro", Category: CategoryEquipment, Price: 850, Rating: 4.5,
		Image: "https://images.unsplash.com/photo-1583121274602-3e2820c69888?q=80&w=800&auto=format&fit=crop"},
	{ID: "3", Name: "Oxytetracycline Soluble", Category: CategoryMedicine, Price: 450, Rating: 4.2,
		Image: "https://images.unsplash.com/photo-1628771065518-0d82f159f96d?q=80&w=800&auto=format&fit=crop"},
	{ID: "4", Name: "High-Yield Rohu Seeds", Category: CategorySeeds, Price: 2500, Rating: 4.9,
		Image: "https://images.unsplash.com/photo-1522069169874-c58ec4b76be5?q=80&w=800&auto=format&fit=crop"},
}

var coldStorages = []ColdStorage{
	{ID: "1", Name: "Haldia Cold Chain", Distance: "12km", Capacity: "50 MT", PricePerDay: 45, Rating: 4.6,
		Image: "https://images.unsplash.com/photo-1586528116311-ad8dd3c8310d?q=80&w=800&auto=format&fit=crop"},
	{ID: "2", Name: "Coastal Freeze Services", Distance: "28km", Capacity: "120 MT", PricePerDay: 40, Rating: 4.8,
		Image: "https://images.unsplash.com/photo-1532634896-26909d0d4b89?q=80&w=800&auto=format&fit=crop"},
	{ID: "3", Name: "Barasat Agri-Freeze", Distance: "45km", Capacity: "30 MT", PricePerDay: 50, Rating: 4.1,
		Image: "https://images.unsplash.com/photo-1589793907316-f94025b46850?q=80&w=800&auto=format&fit=crop"},
}

// Items returns the marketplace catalog.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ColdStorages returns the cold-storage catalog.
func ColdStorages() []ColdStorage {
	out := make([]ColdStorage, len(coldStorages))
	copy(out, coldStorages)
	return out
}
