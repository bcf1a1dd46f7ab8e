// Package ranking ranks candidate videos against a free-text query.
//
// Five signals are extracted per candidate, normalized into [0,1] and combined
// with static weights:
//
//	commentDensity           comments / views, min-max scaled across the batch
//	subscriberCount          log10(n+1) / log10(50M)
//	queryDescriptionOverlap  cosine similarity of query and description embeddings
//	viewCount                log10(n+1) / log10(1B)
//	freshness                1 - ageDays / 3650
//
// Comment density is the only batch-relative signal, so ranking is two-pass:
// extract raw signals for the whole batch, then normalize.
package ranking
