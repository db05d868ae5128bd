package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceStream(t *testing.T) {
	pages := []PageID{1, 2, 3, 2, 1}
	stream, err := NewReferenceStream(pages, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, stream.Len())
	assert.Equal(t, PageID(5), stream.MaxPage())
	assert.Equal(t, PageID(3), stream.At(2))
	assert.Equal(t, 3, stream.Distinct())
	assert.Equal(t, "1, 2, 3, 2, 1", stream.String())
}

func TestReferenceStream_IsImmutable(t *testing.T) {
	pages := []PageID{1, 2, 3}
	stream, err := NewReferenceStream(pages, 5)
	require.NoError(t, err)

	pages[0] = 4
	assert.Equal(t, PageID(1), stream.At(0), "stream must not alias the input")

	out := stream.Pages()
	out[1] = 4
	assert.Equal(t, PageID(2), stream.At(1), "Pages must return a copy")
}

func TestNewReferenceStream_Empty(t *testing.T) {
	stream, err := NewReferenceStream(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, stream.Len())
	assert.Equal(t, 0, stream.Distinct())
	assert.Equal(t, "", stream.String())
}

func TestNewReferenceStream_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		pages   []PageID
		maxPage PageID
	}{
		{"zero page", []PageID{1, 0, 2}, 5},
		{"page above domain", []PageID{1, 6}, 5},
		{"empty domain", []PageID{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReferenceStream(tt.pages, tt.maxPage)
			require.Error(t, err)
			assert.True(t, IsErrorCode(err, ErrCodeInvalidPage))
			assert.True(t, IsConfigurationError(err))
		})
	}
}
