package ranking

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func TestCosine(t *testing.T) {
	x := []float32{1, 0, 0}
	y := []float32{0, 1, 0}
	neg := []float32{-1, 0, 0}
	diag := []float32{float32(1 / math.Sqrt2), float32(1 / math.Sqrt2), 0}

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", x, x, 1},
		{"orthogonal", x, y, 0},
		{"opposite floors to zero", x, neg, 0},
		{"45 degrees", x, diag, 1 / math.Sqrt2},
		{"empty left", []float32{}, x, 0},
		{"empty right", x, nil, 0},
		{"length mismatch", x, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if !almostEqual(got, tt.want, 1e-6) {
				t.Errorf("Cosine() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float32{0.6, 0.8, 0}
	b := []float32{0.8, 0, 0.6}
	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("Cosine not symmetric: %f vs %f", Cosine(a, b), Cosine(b, a))
	}
}

// Scenario: two zero similarities reached through different paths. The
// unrelated description goes through the model; the empty one never does.
func TestSimilarity_BlankVersusUnrelated(t *testing.T) {
	query := "machine learning basics"
	unrelated := "a recipe for sourdough bread"
	emb := newFakeEmbedder(map[string][]float32{
		query:     {1, 0, 0, 0},
		unrelated: {0, 1, 0, 0},
	})
	sim := NewSimilarity(emb, zerolog.Nop())
	ctx := context.Background()

	got, err := sim.Similarity(ctx, query, "")
	if err != nil {
		t.Fatalf("blank: %v", err)
	}
	if got != 0 {
		t.Errorf("blank similarity = %f, want 0", got)
	}
	if n := emb.callCount(); n != 0 {
		t.Errorf("blank description made %d embedder calls, want 0", n)
	}

	got, err = sim.Similarity(ctx, query, unrelated)
	if err != nil {
		t.Fatalf("unrelated: %v", err)
	}
	if got != 0 {
		t.Errorf("unrelated similarity = %f, want 0", got)
	}
	if n := emb.callCount(); n != 2 {
		t.Errorf("unrelated description made %d embedder calls, want 2", n)
	}
}

func TestSimilarities_MatchesSingleForm(t *testing.T) {
	query := "go concurrency"
	descs := []string{"channels and goroutines", "", "   ", "cooking pasta", "go concurrency"}
	emb := newFakeEmbedder(map[string][]float32{
		query:                     {1, 0, 0, 0},
		"channels and goroutines": {0.8, 0.6, 0, 0},
		"cooking pasta":           {0, 0, 1, 0},
	})
	sim := NewSimilarity(emb, zerolog.Nop())
	ctx := context.Background()

	batch, err := sim.Similarities(ctx, query, descs)
	if err != nil {
		t.Fatalf("Similarities: %v", err)
	}
	// One query embed plus one per non-blank description.
	if n := emb.callCount(); n != 4 {
		t.Errorf("batched calls = %d, want 4", n)
	}

	for i, d := range descs {
		single, err := sim.Similarity(ctx, query, d)
		if err != nil {
			t.Fatalf("Similarity(%q): %v", d, err)
		}
		if batch[i] != single {
			t.Errorf("desc %d: batch = %f, single = %f", i, batch[i], single)
		}
	}
	if !almostEqual(batch[0], 0.8, 1e-6) {
		t.Errorf("batch[0] = %f, want 0.8", batch[0])
	}
	if !almostEqual(batch[4], 1, 1e-6) {
		t.Errorf("self similarity = %f, want 1", batch[4])
	}
}

func TestSimilarities_AllBlankSkipsQuery(t *testing.T) {
	emb := newFakeEmbedder(nil)
	sim := NewSimilarity(emb, zerolog.Nop())

	got, err := sim.Similarities(context.Background(), "anything", []string{"", " "})
	if err != nil {
		t.Fatalf("Similarities: %v", err)
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Errorf("got %v, want [0 0]", got)
	}
	if n := emb.callCount(); n != 0 {
		t.Errorf("embedder calls = %d, want 0", n)
	}
}

func TestSimilarities_PropagatesError(t *testing.T) {
	emb := newFakeEmbedder(nil)
	emb.err = errFakeModel
	sim := NewSimilarity(emb, zerolog.Nop())

	_, err := sim.Similarities(context.Background(), "q", []string{"d"})
	if !errors.Is(err, errFakeModel) {
		t.Errorf("err = %v, want wrapping %v", err, errFakeModel)
	}
}
