package service

import (
	"sort"
	"strings"

	"pharma-match/internal/match/model"
)

// Index is built once per run from the master set and is read-only after.
// english maps lower-cased English product names to their canonical Arabic
// name; inv is a trigram inverted index over normalized canonical Arabic
// names used to prune SKU-resolver candidates.
type Index struct {
	english map[string]string
	keys    []string // sorted english keys, for deterministic fuzzy scans
	bySKU   map[string]model.MasterRecord
	byAr    map[string][]model.MasterRecord // normalized Arabic name → rows
	arNames []string                        // normalized Arabic names, sorted
	inv     map[string]map[string]struct{}  // trigram → set(normalized name)
}

func BuildIndex(master []model.MasterRecord) *Index {
	idx := &Index{
		english: make(map[string]string, len(master)),
		bySKU:   make(map[string]model.MasterRecord, len(master)),
		byAr:    make(map[string][]model.MasterRecord, len(master)),
		inv:     make(map[string]map[string]struct{}),
	}

	for _, r := range master {
		if en := strings.ToLower(strings.TrimSpace(r.Name)); en != "" {
			if _, dup := idx.english[en]; !dup {
				idx.english[en] = r.NameAr
				idx.keys = append(idx.keys, en)
			}
		}
		if r.SKU != "" {
			idx.bySKU[r.SKU] = r
		}

		nn := Normalize(r.NameAr)
		if nn == "" {
			continue
		}
		if _, seen := idx.byAr[nn]; !seen {
			idx.arNames = append(idx.arNames, nn)
		}
		idx.byAr[nn] = append(idx.byAr[nn], r)

		for g := range trigramSet(nn) {
			bucket, ok := idx.inv[g]
			if !ok {
				bucket = make(map[string]struct{})
				idx.inv[g] = bucket
			}
			bucket[nn] = struct{}{}
		}
	}

	sort.Strings(idx.keys)
	sort.Strings(idx.arNames)
	return idx
}

func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	p := " " + s + " "
	r := []rune(p)
	if len(r) < 3 {
		m[p] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

// candidateNames returns master Arabic names sharing at least one trigram
// with norm, sorted for deterministic iteration. Falls back to the full name
// list when nothing shares a trigram.
func (idx *Index) candidateNames(norm string) []string {
	if norm == "" {
		return nil
	}
	seen := make(map[string]struct{})
	for g := range trigramSet(norm) {
		if bucket, ok := idx.inv[g]; ok {
			for nn := range bucket {
				seen[nn] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return idx.arNames
	}
	out := make([]string, 0, len(seen))
	for nn := range seen {
		out = append(out, nn)
	}
	sort.Strings(out)
	return out
}

// bestEnglish fuzzy-scans the English keys and returns the Arabic value of
// the single best match with its 0-100 ratio.
func (idx *Index) bestEnglish(text string) (arabic string, score int) {
	best := -1
	for _, k := range idx.keys {
		if r := Ratio(text, k); r > best {
			best = r
			arabic = idx.english[k]
		}
	}
	return arabic, best
}

// CanonicalNames returns every distinct canonical Arabic name in the master
// set, in stable order. This is the classifier's label universe.
func (idx *Index) CanonicalNames() []string {
	seen := make(map[string]struct{}, len(idx.byAr))
	var out []string
	for _, rows := range idx.byAr {
		for _, r := range rows {
			if _, ok := seen[r.NameAr]; !ok {
				seen[r.NameAr] = struct{}{}
				out = append(out, r.NameAr)
			}
		}
	}
	sort.Strings(out)
	return out
}
