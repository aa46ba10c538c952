package service

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"pharma-match/internal/match/model"
)

const (
	vectorizerFile = "vectorizer.gob"
	classifierFile = "classifier.gob"
)

// SaveModelPair writes the fitted vectorizer and classifier side by side.
// They are only meaningful together, so both writes must succeed.
func SaveModelPair(dir string, v *Vectorizer, c *Classifier) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, vectorizerFile), v); err != nil {
		return fmt.Errorf("save vectorizer: %w", err)
	}
	if err := writeGob(filepath.Join(dir, classifierFile), c); err != nil {
		return fmt.Errorf("save classifier: %w", err)
	}
	return nil
}

// LoadModelPair loads both blobs and refuses a pair whose feature dimensions
// disagree: silently proceeding would score garbage against garbage.
func LoadModelPair(dir string) (*Vectorizer, *Classifier, error) {
	var v Vectorizer
	if err := readGob(filepath.Join(dir, vectorizerFile), &v); err != nil {
		return nil, nil, fmt.Errorf("load vectorizer: %w", err)
	}
	var c Classifier
	if err := readGob(filepath.Join(dir, classifierFile), &c); err != nil {
		return nil, nil, fmt.Errorf("load classifier: %w", err)
	}
	if v.Dim() != c.Dim {
		return nil, nil, fmt.Errorf("%w: vectorizer dim %d, classifier dim %d",
			model.ErrModelMismatch, v.Dim(), c.Dim)
	}
	return &v, &c, nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(v)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
