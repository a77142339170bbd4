package services

import (
	"github.com/dykeinvestments/estate-backend/internal/models"
)

// MatchProperties returns the candidates satisfying every criterion of the
// buyer request, preserving input order (newest-first inventory stays
// newest-first). Matching is a pure yes/no filter: no scoring, no partial
// matches, and no mutation of the request.
func MatchProperties(req *models.BuyerRequest, candidates []*models.Property) []*models.Property {
	matches := make([]*models.Property, 0)
	for _, p := range candidates {
		if MatchesRequest(req, p) {
			matches = append(matches, p)
		}
	}
	return matches
}

// MatchesRequest reports whether a single property satisfies all of the
// request's criteria. Only approved listings can match. A required utility
// must be present on the property; an unset requirement constrains nothing.
// A stated minimum fails against a property whose field is absent.
func MatchesRequest(req *models.BuyerRequest, p *models.Property) bool {
	if p.Status != models.PropertyStatusApproved {
		return false
	}
	if p.PropertyType != req.PropertyType {
		return false
	}
	if p.AskingPrice < req.BudgetMin || p.AskingPrice > req.BudgetMax {
		return false
	}
	if !containsDistrict(req.PreferredDistricts, p.LocationDistrict) {
		return false
	}
	if req.RequiresWater && !p.HasWater {
		return false
	}
	if req.RequiresPower && !p.HasPower {
		return false
	}
	if req.RequiresInternet && !p.HasInternet {
		return false
	}
	if req.MinBedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms < *req.MinBedrooms) {
		return false
	}
	if req.MinBathrooms != nil && (p.Bathrooms == nil || *p.Bathrooms < *req.MinBathrooms) {
		return false
	}
	if req.MinSizeAcres != nil && (p.SizeAcres == nil || *p.SizeAcres < *req.MinSizeAcres) {
		return false
	}
	if req.MinSizeSqft != nil && (p.SizeSqft == nil || *p.SizeSqft < *req.MinSizeSqft) {
		return false
	}
	return true
}

func containsDistrict(districts []string, district string) bool {
	for _, d := range districts {
		if d == district {
			return true
		}
	}
	return false
}
