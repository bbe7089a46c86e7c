package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCursor_RoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC),
		ID:        uuid.New(),
	}

	decoded, err := DecodeCursor(original.Encode())
	assert.NoError(t, err)
	assert.True(t, decoded.CreatedAt.Equal(original.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestDecodeCursor_Empty(t *testing.T) {
	decoded, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeCursor_Malformed(t *testing.T) {
	for _, s := range []string{"not base64 !!!", "aGVsbG8", "MjAyNS0wMS0wMXxub3QtYS11dWlk"} {
		_, err := DecodeCursor(s)
		assert.ErrorIs(t, err, ErrInvalidFilter, "cursor %q", s)
	}
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, DefaultPageSize, ClampPageSize(-5))
	assert.Equal(t, 50, ClampPageSize(50))
	assert.Equal(t, MaxPageSize, ClampPageSize(1000))
}
