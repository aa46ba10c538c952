package service

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"pharma-match/internal/match/model"
)

// TrainResult carries the fitted pair plus counters worth logging.
type TrainResult struct {
	Vectorizer *Vectorizer
	Classifier *Classifier
	Samples    int
	Augmented  int
}

// Train fits the vectorizer and classifier on labeled seller names. Canonical
// names present in the master catalog but absent from the labeled data get
// synthetic noisy variants so every label is reachable at inference. The RNG
// is caller-supplied for reproducible runs.
func Train(ctx context.Context, dataset []model.SellerRecord, idx *Index, tr *Translator, rng *rand.Rand, cfg FitConfig, log zerolog.Logger) (*TrainResult, error) {
	var (
		texts  []string
		labels []string
	)
	covered := make(map[string]struct{})
	for _, rec := range dataset {
		if rec.Label == "" {
			continue
		}
		processed := Normalize(tr.Translate(ctx, rec.SellerItemName))
		if processed == "" {
			continue
		}
		texts = append(texts, processed)
		labels = append(labels, rec.Label)
		covered[rec.Label] = struct{}{}
	}

	// coverage augmentation: a label the classifier never saw can never be
	// predicted, so synthesize noisy sellers for the missing ones
	augmented := 0
	for _, canonical := range idx.CanonicalNames() {
		if _, ok := covered[canonical]; ok {
			continue
		}
		for _, variant := range AugmentName(canonical, rng) {
			processed := Normalize(variant)
			if processed == "" {
				continue
			}
			texts = append(texts, processed)
			labels = append(labels, canonical)
			augmented++
		}
	}
	if len(texts) == 0 {
		return nil, model.ErrEmptyCorpus
	}

	// the corpus includes the normalized canonical names themselves so the
	// vocabulary always covers the label side of the cosine comparison
	corpus := make([]string, 0, len(texts)+len(idx.arNames))
	corpus = append(corpus, texts...)
	corpus = append(corpus, idx.arNames...)

	vec := NewVectorizer()
	if err := vec.Fit(corpus); err != nil {
		return nil, err
	}

	x := make([]Vector, len(texts))
	for i, t := range texts {
		x[i] = vec.Transform(t)
	}

	clf := &Classifier{}
	if err := clf.Fit(x, labels, vec.Dim(), cfg); err != nil {
		return nil, err
	}

	log.Info().
		Int("samples", len(texts)).
		Int("augmented", augmented).
		Int("classes", len(clf.Classes)).
		Int("features", vec.Dim()).
		Msg("training done")

	return &TrainResult{
		Vectorizer: vec,
		Classifier: clf,
		Samples:    len(texts),
		Augmented:  augmented,
	}, nil
}
