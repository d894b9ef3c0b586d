package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$5.50", FormatPrice(5.5))
	assert.Equal(t, "$27.48", FormatPrice(27.48))
	assert.Equal(t, "$1,234.50", FormatPrice(1234.5))
	assert.Equal(t, "$1,234,567.89", FormatPrice(1234567.89))
	assert.Equal(t, "-$12.00", FormatPrice(-12))
}
