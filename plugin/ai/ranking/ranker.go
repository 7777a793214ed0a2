package ranking

import "sort"

// Candidate is a stored shop eligible for ranking.
// Embedding holds the value as it came off the wire: a numeric slice or
// a serialized array.
type Candidate struct {
	ID         int32
	UID        string
	Name       string
	Categories []string
	Rating     int32
	Location   string
	Review     string
	Embedding  any
}

// Ranked is a candidate paired with its similarity to the query.
type Ranked struct {
	Candidate
	Similarity float64
}

// Score normalizes and scores every candidate against query.
// The result keeps input order. Malformed embeddings score 0.
func Score(candidates []Candidate, query []float64) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{
			Candidate:  c,
			Similarity: CosineSimilarity(query, NormalizeEmbedding(c.Embedding)),
		}
	}
	return ranked
}

// SortByScore orders results by similarity, highest first.
// Equal scores keep their relative order.
func SortByScore(ranked []Ranked) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
}

// Rank returns the candidate most similar to query.
// The first candidate wins a tie. ok is false when candidates is empty.
func Rank(candidates []Candidate, query []float64) (best *Ranked, ok bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	ranked := Score(candidates, query)
	SortByScore(ranked)
	top := ranked[0]
	return &top, true
}
