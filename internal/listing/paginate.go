package listing

// MaxPageLinks bounds the numbered links shown around the current page.
const MaxPageLinks = 5

// Result is the outcome of applying a State to a store.
type Result[T any] struct {
	Visible    []T
	Filtered   int
	Page       int
	TotalPages int
}

// Empty reports whether nothing is visible on the current page.
func (r Result[T]) Empty() bool { return len(r.Visible) == 0 }

// Apply filters items by the state's filter and cuts the page window.
func (e Engine[T]) Apply(items []T, s State) Result[T] {
	if s.PageSize < 1 {
		s.PageSize = 1
	}
	if s.Page < 1 {
		s.Page = 1
	}
	filtered := e.Filter(items, s.Filter)
	return Result[T]{
		Visible:    Window(filtered, s.Page, s.PageSize),
		Filtered:   len(filtered),
		Page:       s.Page,
		TotalPages: TotalPages(len(filtered), s.PageSize),
	}
}

// Window returns items[(page-1)*size : (page-1)*size+size], clipped to bounds.
// A page past the end yields an empty window.
func Window[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	// Compare pages before multiplying so huge page numbers cannot wrap.
	if page-1 >= TotalPages(len(items), size) {
		return nil
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// Head returns the first n items, for load-more listings.
func Head[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if size < 1 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageLink is one entry of the pagination bar.
type PageLink struct {
	Page     int
	Current  bool
	Disabled bool
}

// Pagination describes the page links for a listing. The zero value means no
// pagination UI.
type Pagination struct {
	Prev  PageLink
	Pages []PageLink
	Next  PageLink
}

// Visible reports whether any pagination UI should be rendered.
func (p Pagination) Visible() bool { return len(p.Pages) > 0 }

// Paginate builds up to MaxPageLinks consecutive page links centered on
// current and clamped to [1, total], plus prev and next links that are
// disabled at the first and last page. Nothing is produced for total <= 1.
// A current page past the end is treated as the last page.
func Paginate(current, total int) Pagination {
	if total <= 1 {
		return Pagination{}
	}
	current = min(max(current, 1), total)

	start := max(1, current-MaxPageLinks/2)
	end := min(total, start+MaxPageLinks-1)
	if end-start+1 < MaxPageLinks {
		start = max(1, end-MaxPageLinks+1)
	}

	p := Pagination{
		Prev: PageLink{Page: current - 1, Disabled: current <= 1},
		Next: PageLink{Page: current + 1, Disabled: current >= total},
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, PageLink{Page: i, Current: i == current})
	}
	return p
}
