package model

import "errors"

// NotFound is the sentinel emitted for records that cannot be matched. It
// flows into the output file as a normal result, never as an error.
const NotFound = "Not Found"

// Confidence tier derived from the similarity score.
type Confidence string

const (
	ConfidenceHigh    Confidence = "High"
	ConfidenceMedium  Confidence = "Medium"
	ConfidenceLow     Confidence = "Low"
	ConfidenceUnknown Confidence = "Unknown"
)

var (
	// ErrMissingColumn is returned when a required catalog column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrModelMismatch is returned when the vectorizer and classifier blobs
	// do not originate from the same training run.
	ErrModelMismatch = errors.New("vectorizer/classifier dimension mismatch")

	// ErrEmptyCorpus is returned when the vectorizer is fitted on nothing.
	ErrEmptyCorpus = errors.New("empty training corpus")

	// ErrNotFitted is returned when transform/predict runs before fit/load.
	ErrNotFitted = errors.New("model not fitted")

	// ErrTranslateUnavailable is returned by the translation client on any
	// transport or service failure. Callers degrade to the original text.
	ErrTranslateUnavailable = errors.New("translation service unavailable")
)

// MasterRecord is one row of the "Master File" sheet. NameAr values form the
// closed set of valid classifier labels.
type MasterRecord struct {
	Name   string // English product name
	NameAr string // canonical Arabic name
	SKU    string
	Price  float64
}

// SellerRecord is one row of the "Dataset" sheet, enriched in place by the
// pipeline stages.
type SellerRecord struct {
	SellerItemName string     `json:"seller_item_name"`
	ProcessedName  string     `json:"processed_name"`
	PredictedName  string     `json:"predicted_name"`
	Score          float64    `json:"similarity_score"`
	Confidence     Confidence `json:"confidence"`
	SKU            string     `json:"sku"`
	// Label carries the canonical name during training; empty at inference.
	Label string `json:"-"`
}

// Options control the matching pipeline. The two call sites disagree on the
// unmatched cutoff (0.2 for batch, 0.4 for single lookup), so it is a knob
// rather than a constant.
type Options struct {
	MinScore       float64 // below this the record is Not Found
	ClampUnmatched bool    // lookup call site reports 0.0 for unmatched
	HighTier       float64 // strictly-greater boundary for High
	MediumTier     float64 // strictly-greater boundary for Medium
	SKUMinRatio    int     // token-sort ratio floor for SKU acceptance
	FuzzyMinRatio  int     // ratio floor for index-based translation
}

// BatchOptions is the default policy for spreadsheet runs.
func BatchOptions() Options {
	return Options{
		MinScore:      0.2,
		HighTier:      0.8,
		MediumTier:    0.6,
		SKUMinRatio:   70,
		FuzzyMinRatio: 50,
	}
}

// LookupOptions is the default policy for single-name lookups.
func LookupOptions() Options {
	o := BatchOptions()
	o.MinScore = 0.4
	o.ClampUnmatched = true
	return o
}

// Result is the outcome of a batch run.
type Result struct {
	Rows       []SellerRecord `json:"rows"`
	Matched    int            `json:"matched"`
	NotFound   int            `json:"notFound"`
	Translated int            `json:"translated"`
}
