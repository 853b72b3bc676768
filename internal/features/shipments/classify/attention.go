package classify

import "strings"

// AttentionDetector flags free-text fields (descriptions, remarks) that look worth a
// second glance. Implementations are heuristics: false positives and negatives are
// expected, and the result must never feed back into status classification.
type AttentionDetector interface {
	NeedsAttention(text string) bool
}

// KeywordDetector matches text against a set of case-insensitive substrings.
type KeywordDetector struct {
	keywords []string
}

// NewKeywordDetector builds a detector for the given keywords. Blank keywords are dropped.
func NewKeywordDetector(keywords ...string) *KeywordDetector {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &KeywordDetector{keywords: kw}
}

// NeedsAttention reports whether text contains any of the keywords.
func (d *KeywordDetector) NeedsAttention(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range d.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the configured keywords.
func (d *KeywordDetector) Keywords() []string {
	out := make([]string, len(d.keywords))
	copy(out, d.keywords)
	return out
}

// DefaultAttentionDetector recognizes hold, customs, lost and delay.
func DefaultAttentionDetector() *KeywordDetector {
	return NewKeywordDetector("hold", "customs", "lost", "delay")
}

// NarrowAttentionDetector only recognizes hold.
func NarrowAttentionDetector() *KeywordDetector {
	return NewKeywordDetector("hold")
}
