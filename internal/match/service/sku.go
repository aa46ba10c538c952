package service

import "pharma-match/internal/match/model"

// ResolveSKU fuzzy-matches a predicted canonical name against the master
// catalog and returns its SKU. The Not Found sentinel short-circuits: it is
// never fuzzy-searched. A best match below opt.SKUMinRatio is rejected.
func ResolveSKU(predictedName string, idx *Index, opt model.Options) string {
	if predictedName == model.NotFound {
		return model.NotFound
	}

	norm := Normalize(predictedName)
	if norm == "" {
		return model.NotFound
	}

	best := -1
	bestSKU := model.NotFound
	for _, cand := range idx.candidateNames(norm) {
		r := TokenSortRatio(norm, cand)
		if r > best {
			best = r
			if rows := idx.byAr[cand]; len(rows) > 0 {
				bestSKU = rows[0].SKU
			}
		}
	}
	if best <= opt.SKUMinRatio {
		return model.NotFound
	}
	return bestSKU
}
