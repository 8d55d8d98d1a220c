// Package catalog holds the static combination source used by catalog mode:
// a fixed category/brand listing, a shared pool of candidate model names and
// the fuel variants. Cross-producting these trades accuracy for independence
// from the live form; most generated combinations resolve to empty pages and
// are filtered by the extractor's marker gate.
package catalog

import "batteryspec/worker/internal/scraper"

// Category groups the vehicle brands sold under one vehicle class.
type Category struct {
	Name   string
	Brands []string
}

// Categories lists the vehicle classes in the order the form presents them.
func Categories() []Category {
	return []Category{
		{
			Name: "Passengers",
			Brands: []string{
				"ASHOK LEYLAND", "TATA", "MARUTI SUZUKI", "HYUNDAI",
				"MAHINDRA", "TOYOTA", "HONDA", "KIA", "RENAULT", "FORD",
			},
		},
		{
			Name: "Two Wheelers",
			Brands: []string{
				"HERO", "HONDA", "BAJAJ", "TVS", "ROYAL ENFIELD",
				"YAMAHA", "SUZUKI",
			},
		},
		{
			Name: "Commercial",
			Brands: []string{
				"TATA", "ASHOK LEYLAND", "EICHER", "MAHINDRA", "BHARATBENZ",
			},
		},
		{
			Name: "Tractors",
			Brands: []string{
				"MAHINDRA", "SWARAJ", "SONALIKA", "JOHN DEERE", "ESCORTS",
			},
		},
		{
			Name: "Three Wheelers",
			Brands: []string{
				"BAJAJ", "PIAGGIO", "MAHINDRA", "ATUL",
			},
		},
	}
}

// ModelPool is the shared pool of candidate model names probed for every
// brand. The live form restricts models per brand; the static catalog
// cannot, so every name is tried and misses rely on the extraction gate.
func ModelPool() []string {
	return []string{
		"Stile", "Dost", "Alto", "Swift", "Dzire", "WagonR", "Baleno",
		"i10", "i20", "Creta", "Verna", "Nexon", "Tiago", "Altroz",
		"Harrier", "Safari", "Scorpio", "Bolero", "XUV300", "Thar",
		"Innova", "Fortuner", "City", "Amaze", "Seltos", "Sonet",
		"Kwid", "Triber", "EcoSport", "Figo",
		"Splendor", "Passion", "Activa", "Shine", "Pulsar", "Platina",
		"Apache", "Jupiter", "Classic 350", "Bullet 350", "FZ", "Access",
		"407", "709", "1109", "Ace", "Intra", "Pro 2049", "Blazo",
		"265 DI", "475 DI", "735 FE", "5050 D", "RE Compact", "Ape",
	}
}

// Fuels is the fixed variant list crossed against every model.
func Fuels() []string {
	return []string{"Petrol", "Diesel", "CNG", "Electric"}
}

// CrossProduct generates every candidate combination, ordered category then
// brand then model then fuel, feeding the same pipeline live discovery does.
func CrossProduct() []scraper.Combination {
	models := ModelPool()
	fuels := Fuels()

	var combos []scraper.Combination
	for _, cat := range Categories() {
		for _, brand := range cat.Brands {
			for _, model := range models {
				for _, fuel := range fuels {
					combos = append(combos, scraper.Combination{
						Category: cat.Name,
						Brand:    brand,
						Model:    model,
						Fuel:     fuel,
					})
				}
			}
		}
	}
	return combos
}
