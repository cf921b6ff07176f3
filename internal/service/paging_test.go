package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		from, size int64
		limit      int64
		offset     int64
	}{
		{"defaults", 0, 10, 10, 0},
		{"from inside first page", 5, 10, 10, 0},
		{"from on page boundary", 20, 10, 10, 20},
		{"from past a boundary", 25, 10, 10, 20},
		{"single row pages", 3, 1, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageWindow(tt.from, tt.size)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}
