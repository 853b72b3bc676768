package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAttentionDetector(t *testing.T) {
	d := DefaultAttentionDetector()

	tests := []struct {
		text string
		want bool
	}{
		{text: "Package on HOLD pending payment", want: true},
		{text: "Inspection by Customs", want: true},
		{text: "Reported lost in transit", want: true},
		{text: "Weather delays expected", want: true},
		{text: "Household items", want: true}, // heuristic false positive, accepted
		{text: "Fragile glassware", want: false},
		{text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, d.NeedsAttention(tt.text))
		})
	}
}

func TestNarrowAttentionDetector(t *testing.T) {
	d := NarrowAttentionDetector()

	assert.True(t, d.NeedsAttention("on hold"))
	assert.False(t, d.NeedsAttention("customs inspection"))
	assert.False(t, d.NeedsAttention("delayed"))
	assert.Equal(t, []string{"hold"}, d.Keywords())
}

func TestNewKeywordDetector_DropsBlank(t *testing.T) {
	d := NewKeywordDetector(" Hold ", "", "  ")

	assert.Equal(t, []string{"hold"}, d.Keywords())
	assert.False(t, d.NeedsAttention("anything"))
}

func TestAttentionDetector_Interface(t *testing.T) {
	var d AttentionDetector = DefaultAttentionDetector()
	assert.True(t, d.NeedsAttention("held at customs"))
}
