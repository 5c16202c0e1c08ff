package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotosRequired(t *testing.T) {
	assert.False(t, PhotosRequired(2, 2))
	assert.True(t, PhotosRequired(3, 0), "guest count alone triggers the gate")
	assert.True(t, PhotosRequired(0, 3), "room count alone triggers the gate")
	assert.False(t, PhotosRequired(0, 0))
}

func TestRequiredPhotoCount(t *testing.T) {
	testCases := []struct {
		name     string
		guests   int
		rooms    int
		expected int
	}{
		{name: "floor is two", guests: 0, rooms: 0, expected: 2},
		{name: "small booking", guests: 1, rooms: 1, expected: 3},
		{name: "four guests four rooms caps at four", guests: 4, rooms: 4, expected: 4},
		{name: "guest contribution caps at six guests", guests: 12, rooms: 0, expected: 4},
		{name: "room contribution caps at two", guests: 0, rooms: 20, expected: 4},
		{name: "negative inputs default to zero", guests: -1, rooms: -5, expected: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RequiredPhotoCount(tc.guests, tc.rooms))
		})
	}
}
