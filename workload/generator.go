package workload

import (
	"fmt"
	"math/rand"

	"github.com/sibexico/pagesim/paging"
)

// Kind selects the access pattern of a generated stream
type Kind string

const (
	KindUniform  Kind = "uniform"
	KindLocality Kind = "locality"
)

// Spec describes a generated reference stream
type Spec struct {
	Kind    Kind
	Length  int
	MaxPage paging.PageID

	// Locality only
	WorkingSet int     // Number of recently used pages eligible for reuse
	Reuse      float64 // Probability of drawing from the working set
}

// Validate checks the workload parameters
func (s Spec) Validate() error {
	if s.Length < 0 {
		return fmt.Errorf("length must not be negative, got %d", s.Length)
	}
	if s.MaxPage == paging.EmptyFrame {
		return fmt.Errorf("max page must be greater than 0")
	}
	switch s.Kind {
	case KindUniform:
	case KindLocality:
		if s.WorkingSet <= 0 {
			return fmt.Errorf("working set must be greater than 0, got %d", s.WorkingSet)
		}
		if s.Reuse < 0 || s.Reuse > 1 {
			return fmt.Errorf("reuse probability must be in [0, 1], got %v", s.Reuse)
		}
	default:
		return fmt.Errorf("unknown workload kind %q", s.Kind)
	}
	return nil
}

// Generate produces a stream for spec. The same rng seed yields the same
// stream.
func Generate(rng *rand.Rand, spec Spec) (paging.ReferenceStream, error) {
	if err := spec.Validate(); err != nil {
		return paging.ReferenceStream{}, fmt.Errorf("invalid workload: %w", err)
	}

	pages := make([]paging.PageID, spec.Length)
	switch spec.Kind {
	case KindUniform:
		for i := range pages {
			pages[i] = randomPage(rng, spec.MaxPage)
		}
	case KindLocality:
		queue := newRecentQueue(spec.WorkingSet)
		for i := range pages {
			var page paging.PageID
			if queue.len() > 0 && rng.Float64() < spec.Reuse {
				page = queue.sample(rng)
			} else {
				page = randomPage(rng, spec.MaxPage)
			}
			queue.place(page)
			pages[i] = page
		}
	}

	return paging.NewReferenceStream(pages, spec.MaxPage)
}

// Uniform returns length references drawn uniformly from [1, maxPage]
func Uniform(rng *rand.Rand, length int, maxPage paging.PageID) (paging.ReferenceStream, error) {
	return Generate(rng, Spec{Kind: KindUniform, Length: length, MaxPage: maxPage})
}

// Locality returns length references that revisit the last workingSet
// distinct pages with probability reuse
func Locality(rng *rand.Rand, length int, maxPage paging.PageID, workingSet int, reuse float64) (paging.ReferenceStream, error) {
	return Generate(rng, Spec{
		Kind:       KindLocality,
		Length:     length,
		MaxPage:    maxPage,
		WorkingSet: workingSet,
		Reuse:      reuse,
	})
}

func randomPage(rng *rand.Rand, maxPage paging.PageID) paging.PageID {
	return paging.PageID(rng.Int63n(int64(maxPage))) + 1
}

// recentQueue holds the most recently used distinct pages, newest first
type recentQueue struct {
	pages []paging.PageID
	size  int
}

func newRecentQueue(size int) *recentQueue {
	return &recentQueue{
		pages: make([]paging.PageID, 0, size),
		size:  size,
	}
}

func (q *recentQueue) len() int {
	return len(q.pages)
}

// place moves page to the front, dropping the oldest entry when full
func (q *recentQueue) place(page paging.PageID) {
	for i, p := range q.pages {
		if p == page {
			copy(q.pages[1:i+1], q.pages[:i])
			q.pages[0] = page
			return
		}
	}
	if len(q.pages) < q.size {
		q.pages = append(q.pages, 0)
	}
	copy(q.pages[1:], q.pages[:len(q.pages)-1])
	q.pages[0] = page
}

func (q *recentQueue) sample(rng *rand.Rand) paging.PageID {
	return q.pages[rng.Intn(len(q.pages))]
}
