package pagination

const (
	// DefaultPageSize is the roster page size when none is configured.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any page query can request.
	MaxPageSize = 100
)

// Page describes a 1-based offset page.
type Page struct {
	Number int
	Size   int
}

// NormalizeSize enforces the default and maximum page sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NormalizeNumber clamps page numbers below 1 to the first page.
func NormalizeNumber(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// New builds a normalized Page.
func New(number, size int) Page {
	return Page{Number: NormalizeNumber(number), Size: NormalizeSize(size)}
}

// Offset is the zero-based index of the first row on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Range returns the inclusive row range [from, to] covered by the page.
func (p Page) Range() (from, to int) {
	from = p.Offset()
	return from, from + p.Size - 1
}

// TotalPages is ceil(total / size). Zero rows yield zero pages.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
