package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`c("eggs", "cheddar cheese", "milk")`, []string{"eggs", "cheddar cheese", "milk"}},
		{`c("1, diced", NA, "2")`, []string{"1, diced", "2"}},
		{`"https://img.example/a.jpg"`, []string{"https://img.example/a.jpg"}},
		{`Breakfast`, []string{"Breakfast"}},
		{`c("say \"cheese\"")`, []string{`say "cheese"`}},
		{`character(0)`, nil},
		{`NA`, nil},
		{``, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRList(tt.in), tt.in)
	}
}

func TestParseEmbedding(t *testing.T) {
	v, err := ParseEmbedding(" [0.5, -1.25, 3e-2] ")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -1.25, 0.03}, v.Slice())

	_, err = ParseEmbedding("[]")
	assert.Error(t, err)

	_, err = ParseEmbedding("tensor([1, 2])")
	assert.Error(t, err)
}
