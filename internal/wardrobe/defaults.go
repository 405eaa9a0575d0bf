package wardrobe

// DefaultItems is the fixed garment set every session starts with.
func DefaultItems() []Item {
	return []Item{
		{
			ID:       "classic-white-tee",
			Name:     "Classic White Tee",
			URL:      "https://storage.googleapis.com/fitform-assets/garments/classic-white-tee.png",
			Category: CategoryShirt,
		},
		{
			ID:       "navy-crewneck",
			Name:     "Navy Crewneck Sweater",
			URL:      "https://storage.googleapis.com/fitform-assets/garments/navy-crewneck.png",
			Category: CategoryShirt,
		},
		{
			ID:       "denim-trucker-jacket",
			Name:     "Denim Trucker Jacket",
			URL:      "https://storage.googleapis.com/fitform-assets/garments/denim-trucker-jacket.png",
			Category: CategoryOuterwear,
		},
		{
			ID:       "charcoal-chinos",
			Name:     "Charcoal Chinos",
			URL:      "https://storage.googleapis.com/fitform-assets/garments/charcoal-chinos.png",
			Category: CategoryPants,
		},
		{
			ID:       "white-court-sneakers",
			Name:     "White Court Sneakers",
			URL:      "https://storage.googleapis.com/fitform-assets/garments/white-court-sneakers.png",
			Category: CategoryShoes,
		},
		{
			ID:       "black-beanie",
			Name:     "Black Beanie",
			URL:      "https://storage.googleapis.com/fitform-assets/garments/black-beanie.png",
			Category: CategoryHat,
		},
	}
}
