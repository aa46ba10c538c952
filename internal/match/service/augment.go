package service

import (
	"math/rand"
	"strings"
)

const augmentAttempts = 70

// arabicLetters is the substitution alphabet for noisy-variant generation.
var arabicLetters = []rune("ابتثجحخدذرزسشصضطظعغفقكلمنهوي")

// noiseSuffixes mimic the junk sellers append to listings.
var noiseSuffixes = []string{"جديد", "سعر خاص", "اصلي", "عرض", "خصم"}

// AugmentName generates up to 70 noisy variants of a canonical name, each
// transformation applied with independent 50% probability. Duplicates
// collapse, so fewer variants may come back. The caller owns the RNG, which
// keeps fixtures reproducible.
func AugmentName(name string, rng *rand.Rand) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	seen := make(map[string]struct{}, augmentAttempts)
	out := make([]string, 0, augmentAttempts)
	for i := 0; i < augmentAttempts; i++ {
		v := name
		if rng.Intn(2) == 0 {
			v = shuffleWords(v, rng)
		}
		if rng.Intn(2) == 0 {
			v = strings.Replace(v, "0", "", 1)
		}
		if rng.Intn(2) == 0 {
			v = dropRandomChar(v, rng)
		}
		if rng.Intn(2) == 0 {
			v = substituteRandomChar(v, rng)
		}
		if rng.Intn(2) == 0 {
			v = v + " " + noiseSuffixes[rng.Intn(len(noiseSuffixes))]
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func shuffleWords(s string, rng *rand.Rand) string {
	words := strings.Fields(s)
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return strings.Join(words, " ")
}

// longWordIndexes returns positions of words longer than 5 runes; only those
// are noised so short dosage tokens stay intact.
func longWordIndexes(words []string) []int {
	var idx []int
	for i, w := range words {
		if len([]rune(w)) > 5 {
			idx = append(idx, i)
		}
	}
	return idx
}

func dropRandomChar(s string, rng *rand.Rand) string {
	words := strings.Fields(s)
	long := longWordIndexes(words)
	if len(long) == 0 {
		return s
	}
	wi := long[rng.Intn(len(long))]
	r := []rune(words[wi])
	ci := rng.Intn(len(r))
	words[wi] = string(append(r[:ci:ci], r[ci+1:]...))
	return strings.Join(words, " ")
}

func substituteRandomChar(s string, rng *rand.Rand) string {
	words := strings.Fields(s)
	long := longWordIndexes(words)
	if len(long) == 0 {
		return s
	}
	wi := long[rng.Intn(len(long))]
	r := []rune(words[wi])
	r[rng.Intn(len(r))] = arabicLetters[rng.Intn(len(arabicLetters))]
	words[wi] = string(r)
	return strings.Join(words, " ")
}
