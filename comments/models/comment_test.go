package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusActive, StatusHidden, true},
		{StatusActive, StatusDeleted, true},
		{StatusHidden, StatusActive, true},
		{StatusHidden, StatusDeleted, true},
		{StatusDeleted, StatusActive, false},
		{StatusDeleted, StatusHidden, false},
		{StatusActive, StatusActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestNewPagination(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := NewPagination(2, 10, 35)
		assert.Equal(t, 2, p.CurrentPage)
		assert.Equal(t, 4, p.TotalPages)
		assert.Equal(t, int64(35), p.TotalItems)
		assert.Equal(t, 10, p.ItemsPerPage)
		assert.True(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("first page", func(t *testing.T) {
		p := NewPagination(1, 10, 35)
		assert.False(t, p.HasPrevPage)
		assert.True(t, p.HasNextPage)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPagination(4, 10, 35)
		assert.True(t, p.HasPrevPage)
		assert.False(t, p.HasNextPage)
	})

	t.Run("empty result", func(t *testing.T) {
		p := NewPagination(1, 20, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := NewPagination(2, 10, 20)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNextPage)
	})
}
