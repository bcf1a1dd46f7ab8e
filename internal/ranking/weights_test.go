package ranking

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

func TestDefaultWeights_Valid(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("DefaultWeights invalid: %v", err)
	}
	if !almostEqual(w.Sum(), 1, epsilon) {
		t.Errorf("Sum = %f, want 1", w.Sum())
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{"defaults", DefaultWeights(), false},
		{"skewed", Weights{0.1, 0.1, 0.5, 0.1, 0.2}, false},
		{"single signal", Weights{QueryDescriptionOverlap: 1}, false},
		{"negative", Weights{-0.2, 0.3, 0.3, 0.3, 0.3}, true},
		{"under one", Weights{0.2, 0.2, 0.2, 0.2, 0.1}, true},
		{"over one", Weights{0.3, 0.2, 0.2, 0.2, 0.2}, true},
		{"all zero", Weights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWeights) {
					t.Errorf("err = %v, want ErrInvalidWeights", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWeights_Score(t *testing.T) {
	w := DefaultWeights()

	all := model.NormalizedSignals{CommentDensity: 1, SubscriberCount: 1, QueryDescriptionOverlap: 1, ViewCount: 1, Freshness: 1}
	if got := w.Score(all); !almostEqual(got, 1, epsilon) {
		t.Errorf("all ones = %f, want 1", got)
	}

	if got := w.Score(model.NormalizedSignals{}); got != 0 {
		t.Errorf("all zeros = %f, want 0", got)
	}

	mixed := model.NormalizedSignals{CommentDensity: 0.5, SubscriberCount: 0.25, QueryDescriptionOverlap: 1, ViewCount: 0, Freshness: 0.75}
	if got := w.Score(mixed); !almostEqual(got, 0.5, epsilon) {
		t.Errorf("mixed = %f, want 0.5", got)
	}

	overlapOnly := Weights{QueryDescriptionOverlap: 1}
	if got := overlapOnly.Score(mixed); !almostEqual(got, 1, epsilon) {
		t.Errorf("overlap only = %f, want 1", got)
	}
}

func TestWeights_ValidateMessages(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
		want string
	}{
		{"nan", Weights{math.NaN(), 0.25, 0.25, 0.25, 0.25}, "NaN weight"},
		{"negative", Weights{-0.2, 0.3, 0.3, 0.3, 0.3}, "negative weight"},
		{"sum", Weights{0.3, 0.2, 0.2, 0.2, 0.2}, "weights sum to 1.100000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want message containing %q", err, tt.want)
			}
		})
	}
}

func BenchmarkWeights_Score(b *testing.B) {
	w := DefaultWeights()
	n := model.NormalizedSignals{CommentDensity: 0.3, SubscriberCount: 0.6, QueryDescriptionOverlap: 0.7, ViewCount: 0.5, Freshness: 0.9}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.Score(n)
	}
}
