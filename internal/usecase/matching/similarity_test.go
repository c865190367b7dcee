package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	required := []string{"go", "python", "saúde"}

	tests := []struct {
		name       string
		candidate  []string
		interested bool
		want       float64
	}{
		{"no overlap", []string{"java"}, false, 0},
		{"one match", []string{"go", "java"}, false, 1},
		{"all match", []string{"saúde", "python", "go"}, false, 3},
		{"interest bonus", []string{"go", "python"}, true, 2.2},
		{"bonus on zero stays zero", []string{"java"}, true, 0},
		{"empty candidate", nil, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(required, tt.candidate, tt.interested), 1e-9)
		})
	}
}

func TestScore_NoRequirements(t *testing.T) {
	assert.Zero(t, Score(nil, []string{"go"}, true))
}

func TestScore_DuplicatesCountedOnce(t *testing.T) {
	assert.Equal(t, 1.0, Score([]string{"go", "go"}, []string{"go", "go"}, false))
}

func TestScore_Deterministic(t *testing.T) {
	required := []string{"a", "b", "c"}
	candidate := []string{"c", "a"}
	first := Score(required, candidate, false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(required, candidate, false))
	}
}

func TestScore_MonotonicInOverlap(t *testing.T) {
	required := []string{"a", "b", "c", "d"}
	prev := Score(required, []string{"x"}, false)
	for _, candidate := range [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}, {"a", "b", "c", "d"}} {
		score := Score(required, candidate, false)
		assert.Greater(t, score, prev)
		assert.GreaterOrEqual(t, Score(required, candidate, true), score)
		prev = score
	}
}
