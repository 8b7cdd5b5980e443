// Package vectorindex implements a flat inner-product similarity index. Rows
// are assigned monotonically in append order; the row id is the sole join key
// into the metadata store, so callers must add vectors in exactly the order
// of the metadata they write.
package vectorindex

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"the-daily/storage"
)

// Result is one search hit: the vector's row id and its similarity score.
type Result struct {
	Row   int
	Score float32
}

// Index holds unit vectors of a fixed dimension. It is built once per batch
// cycle and read-only afterward.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, errors.New("invalid dimension")
	}
	return &Index{dimension: dimension}, nil
}

// Dimension returns the vector dimensionality.
func (ix *Index) Dimension() int { return ix.dimension }

// Len returns the number of stored vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Add appends v and returns its row id.
func (ix *Index) Add(v []float32) (int, error) {
	if len(v) != ix.dimension {
		return 0, fmt.Errorf("vector dimension mismatch: want %d, got %d", ix.dimension, len(v))
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectors = append(ix.vectors, v)
	return len(ix.vectors) - 1, nil
}

// Search returns the top-k rows by descending inner product. Vectors are
// assumed L2-normalized, making the score a cosine similarity. Ties break on
// the lower row id so that repeated searches are deterministic.
func (ix *Index) Search(query []float32, k int) ([]Result, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("query dimension mismatch: want %d, got %d", ix.dimension, len(query))
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]Result, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = Result{Row: i, Score: dot(v, query)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Row < results[j].Row
	})
	if k > len(results) {
		k = len(results)
	}
	if k < 0 {
		k = 0
	}
	return results[:k], nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

type indexFile struct {
	Dimension int
	Vectors   [][]float32
}

// Save writes the index to path, atomically replacing any previous file.
func (ix *Index) Save(path string) error {
	ix.mu.RLock()
	payload := indexFile{Dimension: ix.dimension, Vectors: ix.vectors}
	ix.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return storage.WriteFileAtomic(path, buf.Bytes())
}

// Load reads an index previously written by Save.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload indexFile
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	if payload.Dimension <= 0 {
		return nil, fmt.Errorf("index %s: invalid dimension %d", path, payload.Dimension)
	}
	return &Index{dimension: payload.Dimension, vectors: payload.Vectors}, nil
}
