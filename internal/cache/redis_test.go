package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/stayfinder/internal/domain"
)

func TestSearchKey(t *testing.T) {
	minPrice, maxPrice := 100.0, 300.0

	testCases := []struct {
		name     string
		criteria domain.SearchCriteria
		expected string
	}{
		{
			name:     "empty criteria",
			criteria: domain.SearchCriteria{},
			expected: "cache:listings:search:|||0|",
		},
		{
			name: "all filters",
			criteria: domain.SearchCriteria{
				Location:      "Tahoe",
				MinPrice:      &minPrice,
				MaxPrice:      &maxPrice,
				Guests:        4,
				PropertyTypes: []string{"Entire cabin", "Entire home"},
			},
			expected: "cache:listings:search:tahoe|100|300|4|Entire cabin,Entire home",
		},
		{
			name:     "location is case-insensitive",
			criteria: domain.SearchCriteria{Location: "TAHOE"},
			expected: "cache:listings:search:tahoe|||0|",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, searchKey(tc.criteria))
		})
	}
}
