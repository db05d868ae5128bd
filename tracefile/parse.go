package tracefile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sibexico/pagesim/paging"
)

// ParseReferenceString parses user input into a reference stream.
//
// Tokens are separated by whitespace or commas ("1 2 3,4"). When the page
// domain fits in single digits, input without separators is read one digit
// per reference ("12341"). maxLen <= 0 disables the length limit.
func ParseReferenceString(input string, maxPage paging.PageID, maxLen int) (paging.ReferenceStream, error) {
	const op = "ParseReferenceString"

	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 1 && maxPage <= 9 && len(tokens[0]) > 1 {
		tokens = strings.Split(tokens[0], "")
	}

	if len(tokens) == 0 {
		return paging.ReferenceStream{}, paging.ErrEmptyStream(op)
	}
	if maxLen > 0 && len(tokens) > maxLen {
		return paging.ReferenceStream{}, paging.ErrStreamTooLong(op, len(tokens), maxLen)
	}

	pages := make([]paging.PageID, len(tokens))
	for i, token := range tokens {
		n, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return paging.ReferenceStream{}, paging.NewSimulationError(
				paging.ErrCodeInvalidPage,
				op,
				fmt.Sprintf("invalid page %q at index %d", token, i),
				err,
			)
		}
		page := paging.PageID(n)
		if page == paging.EmptyFrame || page > maxPage {
			return paging.ReferenceStream{}, paging.ErrInvalidPage(op, i, page, maxPage)
		}
		pages[i] = page
	}

	return paging.NewReferenceStream(pages, maxPage)
}
