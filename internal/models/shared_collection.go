package models

import "time"

// SharedCollection is a named, immutable snapshot of product IDs that can be
// opened by anyone holding its slug.
type SharedCollection struct {
	ID         int64
	Slug       string
	ProductIDs []int64
	CreatedBy  int64
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExpiredAt reports whether the collection's expiry lies strictly before now.
// A nil ExpiresAt never expires.
func (c *SharedCollection) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

type CreateSharedCollectionResult struct {
	ID           int64
	Slug         string
	ExpiresAt    *time.Time
	ProductCount int
}

type ResolvedCollection struct {
	*SharedCollection
	Products []*ProductDetail
}
