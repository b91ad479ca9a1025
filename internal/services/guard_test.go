package services_test

import (
	"testing"

	"github.com/budhip/go-autosave/internal/models"
	"github.com/budhip/go-autosave/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestNewLinkedJournals(t *testing.T) {
	t.Parallel()

	links := []models.Link{
		{ID: 1, LinkTypeID: 1, InwardID: 10, OutwardID: 11},
		{ID: 2, LinkTypeID: 4, InwardID: 12, OutwardID: 0},
		{ID: 3, LinkTypeID: 2, InwardID: 0, OutwardID: 13},
	}

	guard := services.NewLinkedJournals(links)

	// both endpoints count, regardless of link type
	assert.True(t, guard.IsLinked(10))
	assert.True(t, guard.IsLinked(11))
	assert.True(t, guard.IsLinked(12))
	assert.True(t, guard.IsLinked(13))

	assert.False(t, guard.IsLinked(14))
	assert.False(t, guard.IsLinked(0))
}

func TestNewLinkedJournalsEmpty(t *testing.T) {
	t.Parallel()

	guard := services.NewLinkedJournals(nil)
	assert.False(t, guard.IsLinked(1))
}
