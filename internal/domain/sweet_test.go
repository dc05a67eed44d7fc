package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSweet_TotalFor(t *testing.T) {
	s := &Sweet{Price: decimal.RequireFromString("2.50")}

	assert.Equal(t, "2.50", s.TotalFor(1).StringFixed(2))
	assert.Equal(t, "7.50", s.TotalFor(3).StringFixed(2))

	// 十进制运算不丢精度
	s = &Sweet{Price: decimal.RequireFromString("0.10")}
	assert.Equal(t, "0.30", s.TotalFor(3).StringFixed(2))
}
