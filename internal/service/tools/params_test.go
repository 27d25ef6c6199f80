package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBookID(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int
		wantErr bool
	}{
		{"json number", float64(7), 7, false},
		{"go int", 7, 7, false},
		{"numeric string", "42", 42, false},
		{"numeric string with spaces", " 42 ", 42, false},
		{"negative", float64(-1), -1, false},
		{"largest exact float", float64(1 << 53), 1 << 53, false},
		{"too large", 1e20, 0, true},
		{"two to the 63", float64(1 << 63), 0, true},
		{"too small", -1e20, 0, true},
		{"too large string", "100000000000000000000", 0, true},
		{"fraction", 1.5, 0, true},
		{"word", "abc", 0, true},
		{"empty string", "", 0, true},
		{"bool", true, 0, true},
		{"object", map[string]any{"id": 1}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p bookIDParams
			err := decodeParams(map[string]any{"book_id": tt.input}, &p, "book_id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.BookID)
		})
	}
}

func TestDecodeParamsRequired(t *testing.T) {
	var p updateBookParams

	err := decodeParams(map[string]any{"book_id": 1}, &p, "book_id", "book_data")
	require.Error(t, err)
	assert.Equal(t, "missing required parameter 'book_data'", err.Error())

	err = decodeParams(map[string]any{"book_id": 1, "book_data": nil}, &p, "book_id", "book_data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "book_data")
}

func TestDecodeParamsIgnoresUnknown(t *testing.T) {
	var p createBookParams
	err := decodeParams(map[string]any{
		"book_data": map[string]any{"title": "Dune", "author": "Frank Herbert"},
		"verbose":   true,
	}, &p, "book_data")
	require.NoError(t, err)
	assert.Equal(t, "Dune", p.BookData["title"])
}

func TestDecodeParamsBookDataMustBeObject(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"string", "Dune"},
		{"number", float64(3)},
		{"bool", true},
		{"empty list", []any{}},
		{"list of objects", []any{map[string]any{"title": "a"}, map[string]any{"author": "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p createBookParams
			err := decodeParams(map[string]any{"book_data": tt.input}, &p, "book_data")
			require.Error(t, err)
			assert.NotContains(t, err.Error(), "\n")
			assert.Nil(t, p.BookData)
		})
	}
}

func TestDecodeParamsBookDataObject(t *testing.T) {
	var p updateBookParams
	err := decodeParams(map[string]any{
		"book_id":   float64(1),
		"book_data": map[string]any{},
	}, &p, "book_id", "book_data")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, p.BookData)
}
