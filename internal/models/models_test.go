package models_test

import (
	"math"
	"testing"

	"art-gallery-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 50, 2},
		{100, 50, 2},
		{101, 50, 3},
		{7, 1, 7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.Pages(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestPagination_Validate(t *testing.T) {
	assert.NoError(t, models.Pagination{Page: 1, Limit: 50}.Validate(models.MaxPaintingPageLimit))
	assert.Error(t, models.Pagination{Page: 0, Limit: 10}.Validate(models.MaxPaintingPageLimit))
	assert.Error(t, models.Pagination{Page: 1, Limit: 51}.Validate(models.MaxPaintingPageLimit))
	assert.NoError(t, models.Pagination{Page: 1, Limit: 100}.Validate(models.MaxUserPageLimit))
	assert.Equal(t, 20, models.Pagination{Page: 3, Limit: 10}.Offset())

	assert.Error(t, models.Pagination{Page: math.MaxInt, Limit: 10}.Validate(models.MaxPaintingPageLimit))
	assert.Error(t, models.Pagination{Page: math.MaxInt/100 + 2, Limit: 100}.Validate(models.MaxUserPageLimit))
	assert.NoError(t, models.Pagination{Page: math.MaxInt/100 + 1, Limit: 100}.Validate(models.MaxUserPageLimit))
}

func TestParseSortOption(t *testing.T) {
	opt, err := models.ParseSortOption("")
	require.NoError(t, err)
	assert.Equal(t, models.SortNewest, opt)

	opt, err = models.ParseSortOption("price_high")
	require.NoError(t, err)
	assert.Equal(t, models.SortPriceHigh, opt)

	_, err = models.ParseSortOption("cheapest")
	assert.Error(t, err)
}

func TestNewPage_EmptyItemsSerializeAsList(t *testing.T) {
	page := models.NewPage[models.PaintingResponse](nil, 0, models.Pagination{Page: 1, Limit: 10})
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Pages)
}

func TestStatusAndRoleValid(t *testing.T) {
	assert.True(t, models.StatusArchived.Valid())
	assert.False(t, models.PaintingStatus("sold").Valid())
	assert.True(t, models.RoleEnthusiast.Valid())
	assert.False(t, models.Role("admin").Valid())
}
