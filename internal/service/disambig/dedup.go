package disambig

import (
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// Dedup accumulates German surface forms case-insensitively. The first-seen
// casing of each word is preserved, and every source language that
// contributed the word is recorded once, in contribution order.
type Dedup struct {
	buckets map[string]*domain.TranslationBucket
	order   []string
}

// NewDedup creates an empty dedup table.
func NewDedup() *Dedup {
	return &Dedup{buckets: make(map[string]*domain.TranslationBucket)}
}

// Add records one German word contributed by sourceLang. Returns true if the
// word was new (first distinct surface form).
func (d *Dedup) Add(germanWord, sourceLang string) bool {
	key := domain.BucketKey(germanWord)
	if key == "" {
		return false
	}

	bucket, ok := d.buckets[key]
	if !ok {
		d.buckets[key] = &domain.TranslationBucket{
			FirstSeen:   germanWord,
			SourceLangs: []string{sourceLang},
		}
		d.order = append(d.order, key)
		return true
	}

	for _, lang := range bucket.SourceLangs {
		if lang == sourceLang {
			return false
		}
	}
	bucket.SourceLangs = append(bucket.SourceLangs, sourceLang)
	return false
}

// Len returns the number of distinct words.
func (d *Dedup) Len() int { return len(d.buckets) }

// Table returns the full dedup table keyed by lowercased form.
func (d *Dedup) Table() map[string]domain.TranslationBucket {
	out := make(map[string]domain.TranslationBucket, len(d.buckets))
	for k, v := range d.buckets {
		out[k] = *v
	}
	return out
}

// Words returns the distinct first-seen casings in first-seen order.
func (d *Dedup) Words() []string {
	out := make([]string, 0, len(d.order))
	for _, key := range d.order {
		out = append(out, d.buckets[key].FirstSeen)
	}
	return out
}
