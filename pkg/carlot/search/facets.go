package search

import (
	"slices"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// Facets summarizes the values present in a set of listings.
type Facets struct {
	Makes         []string   `json:"makes"`
	FuelTypes     []string   `json:"fuelTypes"`
	Transmissions []string   `json:"transmissions"`
	Years         []int      `json:"years"`
	PriceRange    PriceRange `json:"priceRange"`
}

// CollectFacets gathers sorted distinct values. Years are newest first.
func CollectFacets(cars []dal.Car) Facets {
	f := Facets{
		Makes:         []string{},
		FuelTypes:     []string{},
		Transmissions: []string{},
		Years:         []int{},
	}
	for i := range cars {
		c := cars[i]
		f.Makes = appendUnique(f.Makes, c.Make)
		f.FuelTypes = appendUnique(f.FuelTypes, c.FuelType)
		f.Transmissions = appendUnique(f.Transmissions, c.Transmission)
		if !slices.Contains(f.Years, c.Year) {
			f.Years = append(f.Years, c.Year)
		}
		if i == 0 || c.Price < f.PriceRange[0] {
			f.PriceRange[0] = c.Price
		}
		if i == 0 || c.Price > f.PriceRange[1] {
			f.PriceRange[1] = c.Price
		}
	}
	slices.Sort(f.Makes)
	slices.Sort(f.FuelTypes)
	slices.Sort(f.Transmissions)
	slices.Sort(f.Years)
	slices.Reverse(f.Years)
	return f
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
