package paging

// FrameTable is the set of physical frames of one simulation run.
// Slot indices are only valid if obtained from Lookup, FirstEmpty or a
// Policy; any other index panics.
type FrameTable struct {
	slots    []PageID
	resident int
}

// NewFrameTable creates a frame table with capacity empty slots
func NewFrameTable(capacity int) *FrameTable {
	return &FrameTable{
		slots: make([]PageID, capacity),
	}
}

// Capacity returns the number of slots
func (ft *FrameTable) Capacity() int {
	return len(ft.slots)
}

// Resident returns the number of occupied slots
func (ft *FrameTable) Resident() int {
	return ft.resident
}

// Full reports whether every slot holds a page
func (ft *FrameTable) Full() bool {
	return ft.resident == len(ft.slots)
}

// At returns the page held by a slot, or EmptyFrame
func (ft *FrameTable) At(slot int) PageID {
	return ft.slots[slot]
}

// Lookup returns the slot holding page
func (ft *FrameTable) Lookup(page PageID) (int, bool) {
	if page == EmptyFrame {
		return 0, false
	}
	for slot, resident := range ft.slots {
		if resident == page {
			return slot, true
		}
	}
	return 0, false
}

// FirstEmpty returns the lowest unused slot
func (ft *FrameTable) FirstEmpty() (int, bool) {
	if ft.Full() {
		return 0, false
	}
	for slot, resident := range ft.slots {
		if resident == EmptyFrame {
			return slot, true
		}
	}
	return 0, false
}

// Occupy places page in slot, replacing whatever the slot held
func (ft *FrameTable) Occupy(slot int, page PageID) {
	previous := ft.slots[slot]
	ft.slots[slot] = page

	switch {
	case previous == EmptyFrame && page != EmptyFrame:
		ft.resident++
	case previous != EmptyFrame && page == EmptyFrame:
		ft.resident--
	}
}

// Snapshot returns a copy of the slot contents
func (ft *FrameTable) Snapshot() []PageID {
	cp := make([]PageID, len(ft.slots))
	copy(cp, ft.slots)
	return cp
}
