package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"pharma-match/internal/match/model"
)

type fakeExternal struct {
	result string
	err    error
	calls  int
}

func (f *fakeExternal) Translate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.result, f.err
}

func testTranslator(ext ExternalTranslator) *Translator {
	return NewTranslator(BuildIndex(testMaster()), ext, model.BatchOptions(), zerolog.Nop())
}

func TestTranslateArabicPassthrough(t *testing.T) {
	ext := &fakeExternal{}
	tr := testTranslator(ext)

	in := "فلاجيل 500 مجم"
	assert.Equal(t, in, tr.Translate(context.Background(), in))
	assert.Zero(t, ext.calls, "already-Arabic input must not hit the service")
}

func TestTranslateFuzzyFirst(t *testing.T) {
	ext := &fakeExternal{err: errors.New("should not be called")}
	tr := testTranslator(ext)

	// abbreviations with periods resolve through the index, not the service
	got := tr.Translate(context.Background(), "Flagyl 500mg 20 tab.")
	assert.Equal(t, "فلاجيل 500 مجم 20 قرص", got)
	assert.Zero(t, ext.calls)
}

func TestTranslateExternalFallback(t *testing.T) {
	ext := &fakeExternal{result: "زيت سمك"}
	tr := testTranslator(ext)

	got := tr.Translate(context.Background(), "pure omega fish oil liquid gold")
	assert.Equal(t, "زيت سمك", got)
	assert.Equal(t, 1, ext.calls)
}

func TestTranslateExternalFailureIsNonFatal(t *testing.T) {
	ext := &fakeExternal{err: model.ErrTranslateUnavailable}
	tr := testTranslator(ext)

	in := "pure omega fish oil liquid gold"
	assert.Equal(t, in, tr.Translate(context.Background(), in))
}

func TestTranslateRejectsLatinContaminatedResult(t *testing.T) {
	ext := &fakeExternal{result: "fish زيت"}
	tr := testTranslator(ext)

	in := "pure omega fish oil liquid gold"
	assert.Equal(t, in, tr.Translate(context.Background(), in))
}

func TestTranslateNilExternal(t *testing.T) {
	tr := testTranslator(nil)
	in := "pure omega fish oil liquid gold"
	assert.Equal(t, in, tr.Translate(context.Background(), in))
}
