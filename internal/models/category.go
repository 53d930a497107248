package models

import "time"

type Category struct {
	ID        int64
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UpdateCategoryRequest struct {
	ID     int64
	Name   *string
	Status *Status
}

type ListCategoriesFilter struct {
	PageParams
	Search string
}

type ListCategoriesResult struct {
	Categories []*Category
	Page       PageInfo
}
