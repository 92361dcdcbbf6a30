package models

import (
	"fmt"
	"math"
)

const (
	DefaultPageLimit     = 10
	MaxPaintingPageLimit = 50
	MaxUserPageLimit     = 100
)

type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

func (p Pagination) Validate(maxLimit int) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be at least 1")
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		return fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	// Offset must stay representable.
	if p.Page-1 > math.MaxInt/p.Limit {
		return fmt.Errorf("page is too large")
	}
	return nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages is ceil(total/limit).
func Pages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

type PaginatedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func NewPage[T any](items []T, total int, p Pagination) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: Pages(total, p.Limit),
	}
}
