package service

import (
	"context"

	"github.com/rs/zerolog"

	"pharma-match/internal/match/model"
)

// Matcher runs the inference pipeline: translate → normalize → vectorize →
// classify → score → resolve SKU. All state is loaded before the batch
// starts and is read-only during it; records are processed one at a time.
type Matcher struct {
	vec       *Vectorizer
	clf       *Classifier
	idx       *Index
	tr        *Translator
	log       zerolog.Logger
	labelVecs map[string]Vector // vectorized canonical names, built once
}

func NewMatcher(vec *Vectorizer, clf *Classifier, idx *Index, ext ExternalTranslator, opt model.Options, log zerolog.Logger) *Matcher {
	m := &Matcher{
		vec:       vec,
		clf:       clf,
		idx:       idx,
		tr:        NewTranslator(idx, ext, opt, log),
		log:       log,
		labelVecs: make(map[string]Vector, len(clf.Classes)),
	}
	for _, label := range clf.Classes {
		m.labelVecs[label] = vec.Transform(Normalize(label))
	}
	return m
}

// Lookup matches a single seller name. Translation failure, an empty
// normalized form, or a score below the cutoff all degrade to Not Found;
// none of them are errors.
func (m *Matcher) Lookup(ctx context.Context, sellerName string, opt model.Options) model.SellerRecord {
	rec := model.SellerRecord{SellerItemName: sellerName}

	translated := m.tr.Translate(ctx, sellerName)
	rec.ProcessedName = Normalize(translated)

	if rec.ProcessedName == "" {
		rec.PredictedName = model.NotFound
		rec.Confidence = model.ConfidenceUnknown
		rec.SKU = model.NotFound
		return rec
	}

	sellerVec := m.vec.Transform(rec.ProcessedName)
	predicted, err := m.clf.Predict(sellerVec)
	if err != nil {
		// only reachable with an unfitted model; treat as unmatchable
		m.log.Error().Err(err).Msg("predict")
		rec.PredictedName = model.NotFound
		rec.Confidence = model.ConfidenceUnknown
		rec.SKU = model.NotFound
		return rec
	}

	score, conf, matched := Score(sellerVec, m.labelVecs[predicted], opt)
	rec.Score = score
	rec.Confidence = conf
	if !matched {
		rec.PredictedName = model.NotFound
		rec.SKU = model.NotFound
		return rec
	}
	rec.PredictedName = predicted
	rec.SKU = ResolveSKU(predicted, m.idx, opt)
	return rec
}

// Run processes the batch sequentially. It always completes: unmatched and
// mistranslated records flow into the result as Not Found rows.
func (m *Matcher) Run(ctx context.Context, records []model.SellerRecord, opt model.Options) model.Result {
	res := model.Result{Rows: make([]model.SellerRecord, 0, len(records))}
	for _, in := range records {
		rec := m.Lookup(ctx, in.SellerItemName, opt)
		rec.Label = in.Label
		if rec.PredictedName == model.NotFound {
			res.NotFound++
		} else {
			res.Matched++
		}
		if rec.ProcessedName != "" && rec.ProcessedName != Normalize(in.SellerItemName) {
			res.Translated++
		}
		res.Rows = append(res.Rows, rec)
	}
	m.log.Info().
		Int("rows", len(res.Rows)).
		Int("matched", res.Matched).
		Int("not_found", res.NotFound).
		Int("translated", res.Translated).
		Msg("batch done")
	return res
}
