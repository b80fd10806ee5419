package domain

import "regexp"

type FineSelector string

const (
	SelectByOwner   FineSelector = "owner"
	SelectByOfficer FineSelector = "officer"
	SelectByVehicle FineSelector = "vehicle"
)

// FineFilter selects fines by exactly one key plus optional refinements.
type FineFilter struct {
	Selector FineSelector
	Key      string
	Paid     *bool
	Reason   *regexp.Regexp
}

func (f FineFilter) Matches(fine *Fine) bool {
	switch f.Selector {
	case SelectByOwner:
		if fine.Owner.TaxID != f.Key {
			return false
		}
	case SelectByOfficer:
		if fine.Officer.ID != f.Key {
			return false
		}
	case SelectByVehicle:
		if fine.Vehicle.Plate != f.Key {
			return false
		}
	default:
		return false
	}
	if f.Paid != nil && fine.Paid != *f.Paid {
		return false
	}
	if f.Reason != nil && !f.Reason.MatchString(fine.Reason) {
		return false
	}
	return true
}

// FinePage is one page of a listing, newest first.
type FinePage struct {
	Docs          []FineSummary `json:"docs"`
	TotalDocs     int           `json:"totalDocs"`
	Limit         int           `json:"limit"`
	Page          int           `json:"page"`
	TotalPages    int           `json:"totalPages"`
	PagingCounter int           `json:"pagingCounter"`
	HasPrevPage   bool          `json:"hasPrevPage"`
	HasNextPage   bool          `json:"hasNextPage"`
	PrevPage      *int          `json:"prevPage"`
	NextPage      *int          `json:"nextPage"`
	NextPageURL   *string       `json:"nextPageUrl"`
	PrevPageURL   *string       `json:"prevPageUrl"`
}
