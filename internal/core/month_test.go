package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Month
		wantOK bool
	}{
		{"January", time.January, true},
		{"march", time.March, true},
		{"  DECEMBER ", time.December, true},
		{"9", time.September, true},
		{"12", time.December, true},
		{"0", 0, false},
		{"13", 0, false},
		{"Mar", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMonth(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaleMonth(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Month
		wantOK bool
	}{
		{"2021-11-27T20:29:54+05:30", time.November, true},
		{"2021-11-30T23:30:00-05:00", time.November, true},
		{"2022-03-05", time.March, true},
		{"2022-3", time.March, true},
		{"2022", 0, false},
		{"xxxx-03-05", 0, false},
		{"2022-00-05", 0, false},
		{"2022-ab-05", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SaleMonth(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "150", FormatPrice(150))
	assert.Equal(t, "329.85", FormatPrice(329.85))
	assert.Equal(t, "0.5", FormatPrice(0.5))
	assert.Equal(t, "0", FormatPrice(0))
	assert.Equal(t, "1234567", FormatPrice(1234567))
}
