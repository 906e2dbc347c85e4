package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductOptions(t *testing.T) {
	p := Product{Colors: "black, white ,red", Sizes: "S,M,L"}

	assert.Equal(t, []string{"black", "white", "red"}, p.ColorOptions())
	assert.Equal(t, []string{"S", "M", "L"}, p.SizeOptions())
}

func TestProductOptions_Empty(t *testing.T) {
	p := Product{Colors: "  ", Sizes: ""}

	assert.Empty(t, p.ColorOptions())
	assert.Empty(t, p.SizeOptions())
}

// 余計なカンマは無視する
func TestProductOptions_SkipsEmptyParts(t *testing.T) {
	p := Product{Colors: ",black,,white,"}

	assert.Equal(t, []string{"black", "white"}, p.ColorOptions())
}
