package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page selects a window of a list result. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number and size to sane values
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns how many rows precede the page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the page size
func (p Page) Limit() int {
	return p.Size
}
