package models

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PageParams struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into their allowed ranges.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func NewPageInfo(p PageParams, total int) PageInfo {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (pi PageInfo) HasMore() bool {
	return pi.Page < pi.TotalPages
}
