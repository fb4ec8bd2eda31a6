package paginate

import "strconv"

// PerPage is the fixed page size used by every listing.
const PerPage = 10

type Page struct {
	Number int
}

// Parse reads a ?page= query value. Anything missing or malformed
// falls back to the first page.
func Parse(raw string) Page {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		n = 1
	}
	return Page{Number: n}
}

func (p Page) Limit() int {
	return PerPage
}

func (p Page) Offset() int {
	return (p.Number - 1) * PerPage
}

// TotalPages reports how many pages a listing of count items spans.
// An empty listing still has one (empty) page.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PerPage - 1) / PerPage
}
