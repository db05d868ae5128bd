package paging

// Policy selects which resident page to evict.
// ChooseVictim is only called when the frame table is full and the page at
// position is not resident. It returns an occupied slot and must not modify
// the frame table or the stream.
//
//go:generate mockgen -source policy.go -destination policy_mock.go -package paging
type Policy interface {
	ChooseVictim(stream ReferenceStream, frames *FrameTable, position int) (int, error)
}

// Algorithm names a replacement policy
type Algorithm string

const (
	AlgorithmOptimal Algorithm = "optimal"
	AlgorithmLRU     Algorithm = "lru"
)

// Algorithms returns every supported algorithm in presentation order
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmOptimal, AlgorithmLRU}
}

// NewPolicy creates a policy for the specified algorithm
func NewPolicy(algorithm Algorithm) (Policy, error) {
	switch algorithm {
	case AlgorithmOptimal:
		return NewOptimalPolicy(), nil
	case AlgorithmLRU:
		return NewLRUPolicy(), nil
	default:
		return nil, ErrUnknownAlgorithm("NewPolicy", algorithm)
	}
}

// ParseAlgorithms converts names to algorithms; no names means all of them
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Algorithms(), nil
	}

	algorithms := make([]Algorithm, 0, len(names))
	for _, name := range names {
		algorithm := Algorithm(name)
		if _, err := NewPolicy(algorithm); err != nil {
			return nil, err
		}
		algorithms = append(algorithms, algorithm)
	}
	return algorithms, nil
}

// scanDirection selects where a candidate scan looks for references
type scanDirection int

const (
	scanForward  scanDirection = 1
	scanBackward scanDirection = -1
)

// selectVictim flags every occupied slot as a candidate, then walks the
// stream from position in the given direction clearing the flag of each
// resident page it meets. The walk stops once all but one candidate are
// cleared or the stream ends. The lowest page still flagged is the victim.
// It returns the victim slot and the number of references inspected.
func selectVictim(op string, stream ReferenceStream, frames *FrameTable, position int, dir scanDirection) (int, int, error) {
	candidate := make([]bool, frames.Capacity())
	for slot := range candidate {
		page := frames.At(slot)
		if page == EmptyFrame {
			continue
		}
		if page > stream.MaxPage() {
			return 0, 0, ErrPageOutOfDomain(op, position, page, stream.MaxPage())
		}
		candidate[slot] = true
	}

	pending := frames.Capacity() - 1
	scanned := 0
	for i := position + int(dir); i >= 0 && i < stream.Len() && pending > 0; i += int(dir) {
		scanned++
		if slot, ok := frames.Lookup(stream.At(i)); ok && candidate[slot] {
			candidate[slot] = false
			pending--
		}
	}

	victim, found := 0, false
	for slot, flagged := range candidate {
		if flagged && (!found || frames.At(slot) < frames.At(victim)) {
			victim, found = slot, true
		}
	}
	if !found {
		return 0, scanned, ErrNoVictim(op, position, frames.Snapshot())
	}
	return victim, scanned, nil
}
