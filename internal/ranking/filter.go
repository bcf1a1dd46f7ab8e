package ranking

import "github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"

// MinDurationSeconds is the shortest video kept by Filter.
const MinDurationSeconds = 120

// Filter drops candidates unsuitable for the product: made for kids, live or
// upcoming, or shorter than two minutes. Survivor order is preserved.
func Filter(candidates []model.Candidate) []model.Candidate {
	idx := survivors(candidates)
	out := make([]model.Candidate, 0, len(idx))
	for _, i := range idx {
		out = append(out, candidates[i])
	}
	return out
}

// Keep reports whether a single candidate passes the filter.
func Keep(c model.Candidate) bool {
	if c.MadeForKids {
		return false
	}
	if c.LiveStatus != model.LiveStatusNone {
		return false
	}
	return ParseDuration(c.Duration) >= MinDurationSeconds
}

// survivors returns the input indices of candidates that pass the filter.
func survivors(candidates []model.Candidate) []int {
	idx := make([]int, 0, len(candidates))
	for i, c := range candidates {
		if Keep(c) {
			idx = append(idx, i)
		}
	}
	return idx
}
