package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	header := []string{"Case Number", " Order # ", "Customer Name", "Sev", "Asset Serial"}
	idx := resolveColumns(sharedCaseColumns, header)

	row := []string{"70001", "ORD-9", "Acme", "S1", "SN-1"}

	assert.Equal(t, "70001", idx.get(row, "case_number"))
	assert.Equal(t, "ORD-9", idx.get(row, "order_number"))
	assert.Equal(t, "Acme", idx.get(row, "account_name"))
	assert.Equal(t, "S1", idx.get(row, "severity"))
	assert.Equal(t, "SN-1", idx.get(row, "serial_number"))
	assert.Equal(t, "", idx.get(row, "product_model"))
	assert.False(t, idx.has("product_model"))
}

func TestResolveColumnsPartialMatch(t *testing.T) {
	header := []string{"SFDC Case Number", "Related Order Number"}
	idx := resolveColumns(sharedCaseColumns, header)

	require.True(t, idx.has("case_number"))
	require.True(t, idx.has("order_number"))

	row := []string{"70001", "ORD-9"}
	assert.Equal(t, "70001", idx.get(row, "case_number"))
	assert.Equal(t, "ORD-9", idx.get(row, "order_number"))
}

func TestColumnIndexShortRow(t *testing.T) {
	idx := resolveColumns(sharedCaseColumns, []string{"Case Number", "Status"})
	assert.Equal(t, "", idx.get([]string{"70001"}, "status"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"120000", 120000},
		{"$120,000", 120000},
		{"$1,250,000.50", 1250000.50},
		{"not a number", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseAmount(tt.raw), 0.001, "raw=%q", tt.raw)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 0, parseInt(""))
	assert.Equal(t, 42, parseInt("42"))
	assert.Equal(t, 42, parseInt("42.0"))
	assert.Equal(t, 0, parseInt("n/a"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want *time.Time
	}{
		{"", nil},
		{"garbage", nil},
		{"2025-03-14", timePtr(2025, 3, 14)},
		{"03/14/2025", timePtr(2025, 3, 14)},
		{"3/14/2025", timePtr(2025, 3, 14)},
		{"2025-03-14 10:30:00", timePtr(2025, 3, 14)},
	}

	for _, tt := range tests {
		got := parseDate(tt.raw)
		if tt.want == nil {
			assert.Nil(t, got, "raw=%q", tt.raw)
			continue
		}
		require.NotNil(t, got, "raw=%q", tt.raw)
		assert.Equal(t, tt.want.Year(), got.Year(), "raw=%q", tt.raw)
		assert.Equal(t, tt.want.Month(), got.Month(), "raw=%q", tt.raw)
		assert.Equal(t, tt.want.Day(), got.Day(), "raw=%q", tt.raw)
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
