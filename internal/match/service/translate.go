package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"pharma-match/internal/match/model"
)

var reLatin = regexp.MustCompile(`[A-Za-z]`)

// ExternalTranslator is the boundary to the translation service. A single
// failed attempt returns an error; there are no retries, the pipeline
// degrades to the original text instead of stalling the batch.
type ExternalTranslator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Translator converts English-bearing seller names to Arabic. The index
// fuzzy lookup is the primary mechanism; the external service is a
// best-effort fallback with a high observed failure rate, so nothing here
// is allowed to fail the batch.
type Translator struct {
	idx *Index
	ext ExternalTranslator
	opt model.Options
	log zerolog.Logger
}

func NewTranslator(idx *Index, ext ExternalTranslator, opt model.Options, log zerolog.Logger) *Translator {
	return &Translator{idx: idx, ext: ext, opt: opt, log: log}
}

// Translate returns the Arabic form of text, or text unchanged when it is
// already Arabic or nothing better can be found.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if !reLatin.MatchString(text) {
		return text
	}

	// periods usually separate abbreviations ("amp." "tab.")
	lowered := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), ".", " ")

	if arabic, score := t.idx.bestEnglish(lowered); score >= t.opt.FuzzyMinRatio {
		return arabic
	}

	if t.ext == nil {
		return text
	}
	translated, err := t.ext.Translate(ctx, lowered)
	if err != nil {
		t.log.Warn().Err(err).Str("name", text).Msg("translation fallback failed")
		return text
	}
	translated = strings.TrimSpace(translated)
	if translated == "" || reLatin.MatchString(translated) {
		t.log.Debug().Str("name", text).Str("result", translated).Msg("translation result rejected")
		return text
	}
	return translated
}
