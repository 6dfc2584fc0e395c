package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructAssign(t *testing.T) {
	type src struct {
		Title     string
		Tags      []string
		Views     int64
		CreatedAt time.Time
	}
	type dst struct {
		Title     string    `json:"title"`
		Tags      []string  `json:"tags"`
		CreatedAt time.Time `json:"createdAt"`
	}

	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := src{Title: "T", Tags: []string{"go"}, Views: 3, CreatedAt: at}
	var d dst
	require.NoError(t, StructAssign(&s, &d))
	assert.Equal(t, "T", d.Title)
	assert.Equal(t, []string{"go"}, d.Tags)
	assert.True(t, at.Equal(d.CreatedAt))
}
