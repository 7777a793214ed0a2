// Package ranking scores stored shop embeddings against a query vector and
// picks the closest shop.
package ranking

import (
	"encoding/json"

	"github.com/pgvector/pgvector-go"
)

// NormalizeEmbedding converts a raw embedding value into a float64 vector.
//
// Numeric slices are used as-is. Strings and byte slices are decoded as a
// JSON array, which also covers the pgvector text form ("[1,2,3]").
// Anything else, including undecodable text, yields an empty vector.
func NormalizeEmbedding(raw any) []float64 {
	switch v := raw.(type) {
	case []float64:
		return v
	case []float32:
		return fromFloat32(v)
	case pgvector.Vector:
		return fromFloat32(v.Slice())
	case *pgvector.Vector:
		if v == nil {
			return []float64{}
		}
		return fromFloat32(v.Slice())
	case []any:
		out := make([]float64, len(v))
		for i, e := range v {
			out[i] = toFloat(e)
		}
		return out
	case string:
		return decode([]byte(v))
	case []byte:
		return decode(v)
	default:
		return []float64{}
	}
}

func decode(b []byte) []float64 {
	var out []float64
	if err := json.Unmarshal(b, &out); err != nil || out == nil {
		return []float64{}
	}
	return out
}

func fromFloat32(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func toFloat(e any) float64 {
	switch n := e.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}
