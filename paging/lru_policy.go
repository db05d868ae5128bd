package paging

// LRUPolicy implements LRU (Least Recently Used) replacement.
// Recency is recovered from the stream itself by scanning backwards from the
// current position, so the policy keeps no state between calls.
type LRUPolicy struct{}

// NewLRUPolicy creates a new LRU policy
func NewLRUPolicy() *LRUPolicy {
	return &LRUPolicy{}
}

// ChooseVictim evicts the resident page whose last use lies furthest back.
// Resident pages without any earlier reference are preferred, lowest page id
// first.
func (p *LRUPolicy) ChooseVictim(stream ReferenceStream, frames *FrameTable, position int) (int, error) {
	slot, _, err := p.chooseVictimScan(stream, frames, position)
	return slot, err
}

func (p *LRUPolicy) chooseVictimScan(stream ReferenceStream, frames *FrameTable, position int) (int, int, error) {
	return selectVictim("LRUPolicy.ChooseVictim", stream, frames, position, scanBackward)
}
