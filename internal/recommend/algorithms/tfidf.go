// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches runs of word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// TFIDFConfig configures a TFIDF vectorizer.
type TFIDFConfig struct {
	// MinDF drops terms that occur in fewer documents.
	MinDF int

	// NGramMin and NGramMax bound the word n-gram lengths.
	NGramMin int
	NGramMax int

	// StopWords is a stop word language code. Only "en" and "" are known.
	StopWords string

	// StripAccents removes combining marks after NFKD decomposition.
	StripAccents bool
}

// TFIDF turns documents into L2-normalized tf-idf vectors over word
// n-grams. Document frequency uses smoothing:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
type TFIDF struct {
	config    TFIDFConfig
	stopWords map[string]struct{}

	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// NewTFIDF creates a vectorizer. It fails on an unknown stop word language
// or an invalid n-gram range.
func NewTFIDF(cfg TFIDFConfig) (*TFIDF, error) {
	if cfg.NGramMin <= 0 {
		cfg.NGramMin = 1
	}
	if cfg.NGramMax < cfg.NGramMin {
		return nil, fmt.Errorf("invalid n-gram range [%d, %d]", cfg.NGramMin, cfg.NGramMax)
	}
	if cfg.MinDF <= 0 {
		cfg.MinDF = 1
	}

	t := &TFIDF{config: cfg}
	switch cfg.StopWords {
	case "":
	case "en", "english":
		t.stopWords = englishStopWords
	default:
		return nil, fmt.Errorf("unsupported stop word language %q", cfg.StopWords)
	}
	return t, nil
}

// Analyze returns the n-grams of doc in document order.
func (t *TFIDF) Analyze(doc string) []string {
	if t.config.StripAccents {
		doc = stripAccents(doc)
	}
	doc = strings.ToLower(doc)

	words := tokenPattern.FindAllString(doc, -1)
	if len(t.stopWords) > 0 {
		kept := words[:0]
		for _, w := range words {
			if _, stop := t.stopWords[w]; !stop {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	var grams []string
	for n := t.config.NGramMin; n <= t.config.NGramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			grams = append(grams, strings.Join(words[i:i+n], " "))
		}
	}
	return grams
}

// FitTransform learns the vocabulary and idf weights from docs and returns
// one vector per document. Columns follow the sorted vocabulary.
func (t *TFIDF) FitTransform(docs []string) []SparseVector {
	analyzed := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		analyzed[i] = t.Analyze(doc)
		seen := make(map[string]struct{}, len(analyzed[i]))
		for _, g := range analyzed[i] {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}

	t.terms = t.terms[:0]
	for term, n := range df {
		if n >= t.config.MinDF {
			t.terms = append(t.terms, term)
		}
	}
	sort.Strings(t.terms)

	n := float64(len(docs))
	t.vocabulary = make(map[string]int, len(t.terms))
	t.idf = make([]float64, len(t.terms))
	for col, term := range t.terms {
		t.vocabulary[term] = col
		t.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	out := make([]SparseVector, len(docs))
	for i, grams := range analyzed {
		out[i] = t.vector(grams)
	}
	return out
}

// vector builds the normalized tf-idf vector of an analyzed document.
func (t *TFIDF) vector(grams []string) SparseVector {
	tf := make(map[int]float64)
	for _, g := range grams {
		if col, ok := t.vocabulary[g]; ok {
			tf[col]++
		}
	}
	cols := make([]int, 0, len(tf))
	for col := range tf {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	v := SparseVector{
		Indices: make([]int, 0, len(cols)),
		Values:  make([]float64, 0, len(cols)),
	}
	for _, col := range cols {
		v.Add(col, tf[col]*t.idf[col])
	}
	v.Normalize()
	return v
}

// VocabularySize returns the number of learned terms.
func (t *TFIDF) VocabularySize() int {
	return len(t.terms)
}

// Vocabulary returns the learned terms in column order.
func (t *TFIDF) Vocabulary() []string {
	out := make([]string, len(t.terms))
	copy(out, t.terms)
	return out
}

// SigmoidKernel returns tanh(gamma*<a, b> + coef0).
func SigmoidKernel(a, b *SparseVector, gamma, coef0 float64) float64 {
	return math.Tanh(gamma*a.Dot(b) + coef0)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// englishStopWords is the English stop word list of scikit-learn's text
// vectorizers.
var englishStopWords = toSet(
	"a", "about", "above", "across", "after", "afterwards", "again", "against",
	"all", "almost", "alone", "along", "already", "also", "although", "always",
	"am", "among", "amongst", "amoungst", "amount", "an", "and", "another",
	"any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
	"around", "as", "at", "back", "be", "became", "because", "become",
	"becomes", "becoming", "been", "before", "beforehand", "behind", "being",
	"below", "beside", "besides", "between", "beyond", "bill", "both",
	"bottom", "but", "by", "call", "can", "cannot", "cant", "co", "con",
	"could", "couldnt", "cry", "de", "describe", "detail", "do", "done",
	"down", "due", "during", "each", "eg", "eight", "either", "eleven", "else",
	"elsewhere", "empty", "enough", "etc", "even", "ever", "every", "everyone",
	"everything", "everywhere", "except", "few", "fifteen", "fifty", "fill",
	"find", "fire", "first", "five", "for", "former", "formerly", "forty",
	"found", "four", "from", "front", "full", "further", "get", "give", "go",
	"had", "has", "hasnt", "have", "he", "hence", "her", "here", "hereafter",
	"hereby", "herein", "hereupon", "hers", "herself", "him", "himself", "his",
	"how", "however", "hundred", "i", "ie", "if", "in", "inc", "indeed",
	"interest", "into", "is", "it", "its", "itself", "keep", "last", "latter",
	"latterly", "least", "less", "ltd", "made", "many", "may", "me",
	"meanwhile", "might", "mill", "mine", "more", "moreover", "most", "mostly",
	"move", "much", "must", "my", "myself", "name", "namely", "neither",
	"never", "nevertheless", "next", "nine", "no", "nobody", "none", "noone",
	"nor", "not", "nothing", "now", "nowhere", "of", "off", "often", "on",
	"once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
	"ours", "ourselves", "out", "over", "own", "part", "per", "perhaps",
	"please", "put", "rather", "re", "same", "see", "seem", "seemed",
	"seeming", "seems", "serious", "several", "she", "should", "show", "side",
	"since", "sincere", "six", "sixty", "so", "some", "somehow", "someone",
	"something", "sometime", "sometimes", "somewhere", "still", "such",
	"system", "take", "ten", "than", "that", "the", "their", "them",
	"themselves", "then", "thence", "there", "thereafter", "thereby",
	"therefore", "therein", "thereupon", "these", "they", "thick", "thin",
	"third", "this", "those", "though", "three", "through", "throughout",
	"thru", "thus", "to", "together", "too", "top", "toward", "towards",
	"twelve", "twenty", "two", "un", "under", "until", "up", "upon", "us",
	"very", "via", "was", "we", "well", "were", "what", "whatever", "when",
	"whence", "whenever", "where", "whereafter", "whereas", "whereby",
	"wherein", "whereupon", "wherever", "whether", "which", "while", "whither",
	"who", "whoever", "whole", "whom", "whose", "why", "will", "with",
	"within", "without", "would", "yet", "you", "your", "yours", "yourself",
	"yourselves",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
