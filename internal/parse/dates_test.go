package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleDate(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  Date
		expectErr bool
	}{
		{
			name:     "Valid date",
			input:    "20250115",
			expected: Date{Year: 2025, Month: 1, Day: 15},
		},
		{
			name:     "Leap day in leap year",
			input:    "20240229",
			expected: Date{Year: 2024, Month: 2, Day: 29},
		},
		{
			name:      "Leap day in non-leap year",
			input:     "20250229",
			expectErr: true,
		},
		{
			name:      "February 30th",
			input:     "20250230",
			expectErr: true,
		},
		{
			name:      "Month 13",
			input:     "20251301",
			expectErr: true,
		},
		{
			name:      "Day zero",
			input:     "20250100",
			expectErr: true,
		},
		{
			name:      "Too short",
			input:     "2025011",
			expectErr: true,
		},
		{
			name:      "Too long",
			input:     "202501155",
			expectErr: true,
		},
		{
			name:      "Not digits",
			input:     "2025O115",
			expectErr: true,
		},
		{
			name:     "End of year",
			input:    "20251231",
			expected: Date{Year: 2025, Month: 12, Day: 31},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseSingleDate(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, d)
				assert.Equal(t, tc.input, d.String())
			}
		})
	}
}

func TestParseDateSpec(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []string
		expectErr bool
	}{
		{
			name:     "Single date",
			input:    "20250115",
			expected: []string{"20250115"},
		},
		{
			name:     "Comma list",
			input:    "20250115,20250116,20250117",
			expected: []string{"20250115", "20250116", "20250117"},
		},
		{
			name:     "Comma list with spaces",
			input:    "20250115, 20250116",
			expected: []string{"20250115", "20250116"},
		},
		{
			name:     "Comma list drops malformed tokens",
			input:    "20250101,bogus,20250103",
			expected: []string{"20250101", "20250103"},
		},
		{
			name:      "Comma list with no valid tokens",
			input:     "bogus,also-bogus",
			expectErr: true,
		},
		{
			name:     "Range is inclusive",
			input:    "20250115-20250117",
			expected: []string{"20250115", "20250116", "20250117"},
		},
		{
			name:     "Range across month boundary",
			input:    "20250130-20250202",
			expected: []string{"20250130", "20250131", "20250201", "20250202"},
		},
		{
			name:     "Reversed range yields zero dates",
			input:    "20250105-20250103",
			expected: nil,
		},
		{
			name:      "Range with invalid start",
			input:     "20250230-20250302",
			expectErr: true,
		},
		{
			name:      "Range with invalid end",
			input:     "20250101-20250230",
			expectErr: true,
		},
		{
			name:      "Range with three parts",
			input:     "20250101-20250102-20250103",
			expectErr: true,
		},
		{
			name:      "Garbage",
			input:     "tomorrow",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dates, err := ParseDateSpec(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got := make([]string, 0, len(dates))
			for _, d := range dates {
				got = append(got, d.String())
			}
			if tc.expected == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestRangeExpansionSingleDay(t *testing.T) {
	dates, err := ParseDateSpec("20250115-20250115")
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "20250115", dates[0].String())
}
