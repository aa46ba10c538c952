package service

import (
	"math"
	"sort"

	"pharma-match/internal/match/model"
)

// Classifier is a multinomial logistic model over the vectorizer's frozen
// feature space: one weight vector per canonical Arabic name. Fields are
// exported for gob persistence.
type Classifier struct {
	Classes []string    // sorted label set fixed at Fit
	W       [][]float64 // [class][feature]
	B       []float64   // per-class bias
	Dim     int         // feature dimension, must match the vectorizer
}

// FitConfig are the training hyperparameters. Zero values fall back to
// defaults that converge on small catalog-sized problems.
type FitConfig struct {
	Epochs int
	LR     float64
	L2     float64
}

func (c FitConfig) withDefaults() FitConfig {
	if c.Epochs <= 0 {
		c.Epochs = 60
	}
	if c.LR <= 0 {
		c.LR = 0.5
	}
	if c.L2 <= 0 {
		c.L2 = 1e-4
	}
	return c
}

// Fit trains with per-sample gradient descent in a fixed sample order, so
// training is deterministic for a given input.
func (c *Classifier) Fit(x []Vector, y []string, dim int, cfg FitConfig) error {
	if len(x) == 0 || len(x) != len(y) || dim <= 0 {
		return model.ErrEmptyCorpus
	}
	cfg = cfg.withDefaults()

	classSet := make(map[string]int)
	for _, label := range y {
		if _, ok := classSet[label]; !ok {
			classSet[label] = 0
		}
	}
	c.Classes = make([]string, 0, len(classSet))
	for label := range classSet {
		c.Classes = append(c.Classes, label)
	}
	sort.Strings(c.Classes)
	for i, label := range c.Classes {
		classSet[label] = i
	}

	k := len(c.Classes)
	c.Dim = dim
	c.W = make([][]float64, k)
	for i := range c.W {
		c.W[i] = make([]float64, dim)
	}
	c.B = make([]float64, k)

	probs := make([]float64, k)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for s := range x {
			c.softmax(x[s], probs)
			target := classSet[y[s]]
			for j := 0; j < k; j++ {
				grad := probs[j]
				if j == target {
					grad -= 1
				}
				if grad == 0 {
					continue
				}
				step := cfg.LR * grad
				c.B[j] -= step
				row := c.W[j]
				for idx, val := range x[s] {
					row[idx] -= step * val
				}
			}
		}
		// weight decay once per epoch; cheaper than per-sample and close
		// enough at these sizes
		decay := 1 - cfg.LR*cfg.L2
		for j := 0; j < k; j++ {
			row := c.W[j]
			for i := range row {
				row[i] *= decay
			}
		}
	}
	return nil
}

// softmax fills probs with class probabilities for x.
func (c *Classifier) softmax(x Vector, probs []float64) {
	maxScore := math.Inf(-1)
	for j := range c.Classes {
		s := c.B[j]
		row := c.W[j]
		for idx, val := range x {
			s += row[idx] * val
		}
		probs[j] = s
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	for j := range probs {
		probs[j] = math.Exp(probs[j] - maxScore)
		sum += probs[j]
	}
	for j := range probs {
		probs[j] /= sum
	}
}

// Predict returns the most probable label. It never abstains; thresholding
// into "Not Found" happens in the scorer, not here. Ties break toward the
// lexicographically first class, keeping prediction deterministic.
func (c *Classifier) Predict(x Vector) (string, error) {
	if len(c.Classes) == 0 || c.Dim == 0 {
		return "", model.ErrNotFitted
	}
	probs := make([]float64, len(c.Classes))
	c.softmax(x, probs)
	best := 0
	for j := 1; j < len(probs); j++ {
		if probs[j] > probs[best] {
			best = j
		}
	}
	return c.Classes[best], nil
}
