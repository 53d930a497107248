package models

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
	MediaTypePDF   MediaType = "PDF"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypePDF:
		return true
	}
	return false
}

type Media struct {
	ID        int64
	Name      string
	Type      MediaType
	ProductID int64
	Status    Status
	CreatedBy int64
	UpdatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaDetail carries the owning product's name for listings.
type MediaDetail struct {
	*Media
	ProductName *string
}

type CreateMediaRequest struct {
	Name      string
	Type      MediaType
	ProductID int64
	CreatedBy int64
}

type UpdateMediaRequest struct {
	ID        int64
	Name      *string
	Type      *MediaType
	ProductID *int64
	Status    *Status
	UpdatedBy int64
}

type ListMediaResult struct {
	Media []*MediaDetail
	Page  PageInfo
}
