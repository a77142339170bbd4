package services

import (
	"strings"

	"github.com/dykeinvestments/estate-backend/internal/models"
)

// ApplyFilters returns the subset of properties satisfying every supplied
// predicate of the filter, in the order they were given. Repositories hand
// over inventory newest-first, so filtered results stay newest-first
// without re-sorting. An empty filter returns the input unchanged; an
// inverted price range is simply unsatisfiable and yields nothing.
func ApplyFilters(properties []*models.Property, filter models.PropertyFilter) []*models.Property {
	result := make([]*models.Property, 0, len(properties))
	for _, p := range properties {
		if matchesFilter(p, filter) {
			result = append(result, p)
		}
	}
	return result
}

func matchesFilter(p *models.Property, f models.PropertyFilter) bool {
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.District != "" && p.LocationDistrict != f.District {
		return false
	}
	if f.MinPrice != nil && p.AskingPrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.AskingPrice > *f.MaxPrice {
		return false
	}
	// Utility flags are "must have" when set and "don't care" otherwise
	if f.HasWater && !p.HasWater {
		return false
	}
	if f.HasPower && !p.HasPower {
		return false
	}
	if f.HasInternet && !p.HasInternet {
		return false
	}
	if term := strings.TrimSpace(f.Search); term != "" && !matchesSearch(p, term) {
		return false
	}
	return true
}

// matchesSearch reports whether the term appears, case-insensitively, in
// the listing's title, description, district or town
func matchesSearch(p *models.Property, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.LocationDistrict), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.LocationTown), term) {
		return true
	}
	return false
}
