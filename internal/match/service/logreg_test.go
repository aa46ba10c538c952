package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-match/internal/match/model"
)

func trainSmallModel(t *testing.T) (*Vectorizer, *Classifier) {
	t.Helper()
	corpus := []string{
		"فلاجيل 500 مجم",
		"فلاجيل 500",
		"بانادول اكسترا",
		"بانادول مسكن",
		"فيتامين سي 1000",
		"فيتامين سي فوار",
	}
	labels := []string{
		"فلاجيل 500 مجم 20 قرص",
		"فلاجيل 500 مجم 20 قرص",
		"بانادول اكسترا 24 قرص",
		"بانادول اكسترا 24 قرص",
		"فيتامين سي 1000 مجم",
		"فيتامين سي 1000 مجم",
	}

	v := NewVectorizer()
	require.NoError(t, v.Fit(corpus))

	x := make([]Vector, len(corpus))
	for i, s := range corpus {
		x[i] = v.Transform(s)
	}
	c := &Classifier{}
	require.NoError(t, c.Fit(x, labels, v.Dim(), FitConfig{}))
	return v, c
}

func TestClassifierFitPredict(t *testing.T) {
	v, c := trainSmallModel(t)
	assert.Len(t, c.Classes, 3)
	assert.Equal(t, v.Dim(), c.Dim)

	tests := []struct{ in, want string }{
		{"فلاجيل 500 مجم", "فلاجيل 500 مجم 20 قرص"},
		{"بانادول اكسترا", "بانادول اكسترا 24 قرص"},
		{"فيتامين سي فوار", "فيتامين سي 1000 مجم"},
	}
	for _, tt := range tests {
		got, err := c.Predict(v.Transform(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestClassifierNeverAbstains(t *testing.T) {
	v, c := trainSmallModel(t)
	// junk input still yields exactly one label from the fit-time set
	got, err := c.Predict(v.Transform("قط"))
	require.NoError(t, err)
	assert.Contains(t, c.Classes, got)
}

func TestClassifierDeterministic(t *testing.T) {
	v, c := trainSmallModel(t)
	x := v.Transform("فلاجيل")
	first, err := c.Predict(x)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Predict(x)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifierNotFitted(t *testing.T) {
	c := &Classifier{}
	_, err := c.Predict(Vector{0: 1})
	assert.ErrorIs(t, err, model.ErrNotFitted)
}

func TestClassifierFitValidation(t *testing.T) {
	c := &Classifier{}
	assert.ErrorIs(t, c.Fit(nil, nil, 10, FitConfig{}), model.ErrEmptyCorpus)
	assert.ErrorIs(t, c.Fit([]Vector{{0: 1}}, []string{"a", "b"}, 10, FitConfig{}), model.ErrEmptyCorpus)
}
