package paging

// OptimalPolicy implements Belady's optimal replacement: evict the resident
// page whose next reference lies farthest in the future. Pages never
// referenced again go first, lowest page id on ties.
type OptimalPolicy struct{}

// NewOptimalPolicy creates a new optimal policy
func NewOptimalPolicy() *OptimalPolicy {
	return &OptimalPolicy{}
}

// ChooseVictim looks ahead of position for the page needed last
func (p *OptimalPolicy) ChooseVictim(stream ReferenceStream, frames *FrameTable, position int) (int, error) {
	slot, _, err := p.chooseVictimScan(stream, frames, position)
	return slot, err
}

func (p *OptimalPolicy) chooseVictimScan(stream ReferenceStream, frames *FrameTable, position int) (int, int, error) {
	return selectVictim("OptimalPolicy.ChooseVictim", stream, frames, position, scanForward)
}
