package ai

import (
	"context"
	"testing"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutKeyIsDisabled(t *testing.T) {
	d, closeFn, err := New(context.Background(), "", "")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	_, err = d.Describe(context.Background(), &models.ArtworkRecord{Title: "Harbour"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPrompt(t *testing.T) {
	p := Prompt(&models.ArtworkRecord{
		Title:  "Harbour at Dusk",
		Medium: "oil on linen",
		Size:   " ",
		Price:  450,
	})
	assert.Equal(t, "Title: Harbour at Dusk\nMedium: oil on linen\nWrite the gallery label.", p)
	assert.NotContains(t, p, "450")
}
