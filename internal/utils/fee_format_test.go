package utils_test

import (
	"testing"

	"github.com/SscSPs/cabinet_contabil_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatFee(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150.5", "150.50"},
		{"99.999", "100.00"},
		{"0", "0.00"},
		{"1200", "1200.00"},
		{"12.345", "12.35"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := decimal.RequireFromString(tt.in)
			got := utils.FormatFee(&d)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, *got)
			}
		})
	}

	assert.Nil(t, utils.FormatFee(nil))
}
