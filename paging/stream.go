package paging

import "fmt"

// PageID identifies a virtual page. Valid pages are in [1, MaxPage].
type PageID uint32

// EmptyFrame marks an unused frame slot. It is never a valid page.
const EmptyFrame PageID = 0

// ReferenceStream is an immutable, validated sequence of page accesses
type ReferenceStream struct {
	pages   []PageID
	maxPage PageID
}

// NewReferenceStream copies pages into a new stream after checking that every
// page lies in [1, maxPage]
func NewReferenceStream(pages []PageID, maxPage PageID) (ReferenceStream, error) {
	if maxPage == EmptyFrame {
		return ReferenceStream{}, NewSimulationError(
			ErrCodeInvalidPage,
			"NewReferenceStream",
			"page domain must contain at least one page",
			nil,
		)
	}

	for i, page := range pages {
		if page == EmptyFrame || page > maxPage {
			return ReferenceStream{}, ErrInvalidPage("NewReferenceStream", i, page, maxPage)
		}
	}

	cp := make([]PageID, len(pages))
	copy(cp, pages)

	return ReferenceStream{pages: cp, maxPage: maxPage}, nil
}

// Len returns the number of references
func (s ReferenceStream) Len() int {
	return len(s.pages)
}

// At returns the page referenced at position i
func (s ReferenceStream) At(i int) PageID {
	return s.pages[i]
}

// MaxPage returns the upper bound of the page domain
func (s ReferenceStream) MaxPage() PageID {
	return s.maxPage
}

// Pages returns a copy of the referenced pages
func (s ReferenceStream) Pages() []PageID {
	cp := make([]PageID, len(s.pages))
	copy(cp, s.pages)
	return cp
}

// Distinct returns the number of different pages in the stream
func (s ReferenceStream) Distinct() int {
	seen := make(map[PageID]struct{}, len(s.pages))
	for _, page := range s.pages {
		seen[page] = struct{}{}
	}
	return len(seen)
}

// String formats the stream as a comma separated list
func (s ReferenceStream) String() string {
	out := make([]byte, 0, len(s.pages)*3)
	for i, page := range s.pages {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = fmt.Appendf(out, "%d", page)
	}
	return string(out)
}
