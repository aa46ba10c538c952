package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-match/internal/match/model"
)

func TestModelPairRoundTrip(t *testing.T) {
	dir := t.TempDir()
	v, c := trainSmallModel(t)

	require.NoError(t, SaveModelPair(dir, v, c))
	lv, lc, err := LoadModelPair(dir)
	require.NoError(t, err)

	assert.Equal(t, v.Dim(), lv.Dim())
	assert.Equal(t, c.Classes, lc.Classes)

	// loaded pair predicts the same as the fitted one
	in := lv.Transform("فلاجيل 500 مجم")
	want, err := c.Predict(v.Transform("فلاجيل 500 مجم"))
	require.NoError(t, err)
	got, err := lc.Predict(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadModelPairDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	v, c := trainSmallModel(t)

	c.Dim++ // simulate blobs from different training runs
	require.NoError(t, SaveModelPair(dir, v, c))

	_, _, err := LoadModelPair(dir)
	assert.ErrorIs(t, err, model.ErrModelMismatch)
}

func TestLoadModelPairMissingFiles(t *testing.T) {
	_, _, err := LoadModelPair(t.TempDir())
	assert.Error(t, err)
}
