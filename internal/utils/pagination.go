package utils

import (
	"fmt"
	"strings"
)

// Page describes one slice of a longer result list.
type Page struct {
	Total      int
	PerPage    int
	Current    int
	TotalPages int
}

// NewPage clamps current into range. perPage <= 0 means everything on one page.
func NewPage(total, perPage, current int) Page {
	if perPage <= 0 {
		perPage = max(total, 1)
	}
	pages := (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	current = min(max(current, 1), pages)
	return Page{Total: total, PerPage: perPage, Current: current, TotalPages: pages}
}

// Paginate returns the items of the requested page along with its metadata.
func Paginate[T any](items []T, perPage, current int) ([]T, Page) {
	p := NewPage(len(items), perPage, current)
	start, end := p.Bounds()
	return items[start:end], p
}

// Bounds returns the half-open index range of the current page.
func (p Page) Bounds() (int, int) {
	start := (p.Current - 1) * p.PerPage
	return start, min(start+p.PerPage, p.Total)
}

func (p Page) HasNext() bool { return p.Current < p.TotalPages }

func (p Page) HasPrev() bool { return p.Current > 1 }

// Summary is e.g. "Showing 11-20 of 42 entries (page 2 of 5)".
func (p Page) Summary() string {
	if p.Total == 0 {
		return "No entries"
	}
	start, end := p.Bounds()
	noun := "entries"
	if p.Total == 1 {
		noun = "entry"
	}
	s := fmt.Sprintf("Showing %d-%d of %d %s", start+1, end, p.Total, noun)
	if p.TotalPages > 1 {
		s += fmt.Sprintf(" (page %d of %d)", p.Current, p.TotalPages)
	}
	return s
}

// Navigation returns CLI hints for the neighbouring pages.
func (p Page) Navigation() string {
	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("use --page %d for previous", p.Current-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("use --page %d for next", p.Current+1))
	}
	return strings.Join(hints, ", ")
}
