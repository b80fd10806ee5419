package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListQuery is one listing request. Paid and ReasonPattern are optional;
// RequestURL is the URL the page links are derived from.
type ListQuery struct {
	Selector      domain.FineSelector
	Key           string
	Paid          *bool
	ReasonPattern *string
	Page          int
	Limit         int
	RequestURL    string
}

type listingService struct {
	fineRepo repository.FineRepository
}

func NewListingService(fineRepo repository.FineRepository) ListingService {
	return &listingService{fineRepo: fineRepo}
}

func (s *listingService) List(ctx context.Context, q ListQuery) (*domain.FinePage, error) {
	if q.Key == "" {
		return nil, domain.NewValidationError(string(q.Selector), "key is required")
	}
	filter := domain.FineFilter{Selector: q.Selector, Key: q.Key, Paid: q.Paid}
	if q.ReasonPattern != nil {
		re, err := regexp.Compile("(?i)" + *q.ReasonPattern)
		if err != nil {
			return nil, domain.NewValidationError("reason", fmt.Sprintf("invalid pattern: %v", err))
		}
		filter.Reason = re
	}

	page, limit := q.Page, q.Limit
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page > math.MaxInt/limit {
		return nil, domain.NewValidationError("page", "out of range")
	}

	fines, total, err := s.fineRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.FineSummary, len(fines))
	for i := range fines {
		docs[i] = domain.NewFineSummary(&fines[i])
	}

	return buildPage(docs, total, page, limit, q.RequestURL), nil
}

// buildPage fills the page counters the way mongoose-paginate reports them.
func buildPage(docs []domain.FineSummary, total, page, limit int, requestURL string) *domain.FinePage {
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	p := &domain.FinePage{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page*limit < total,
	}
	if p.HasPrevPage {
		prev := page - 1
		url := buildPageURL(requestURL, prev, limit)
		p.PrevPage, p.PrevPageURL = &prev, &url
	}
	if p.HasNextPage {
		next := page + 1
		url := buildPageURL(requestURL, next, limit)
		p.NextPage, p.NextPageURL = &next, &url
	}
	return p
}

// buildPageURL keeps every query parameter of requestURL except page and
// limit, then appends the given page and limit.
func buildPageURL(requestURL string, page, limit int) string {
	base, query, _ := strings.Cut(requestURL, "?")
	var params []string
	if query != "" {
		for _, param := range strings.Split(query, "&") {
			if strings.HasPrefix(param, "page=") || strings.HasPrefix(param, "limit=") {
				continue
			}
			params = append(params, param)
		}
	}
	params = append(params, fmt.Sprintf("page=%d", page), fmt.Sprintf("limit=%d", limit))
	return base + "?" + strings.Join(params, "&")
}
