package domain

import "strings"

// PageState is the gallery position of one visitor.
// It is only changed by pagination and search events and is never persisted.
type PageState struct {
	CurrentPage int
	ActiveQuery string
}

// NewPageState returns the state a fresh page load starts from.
func NewPageState() PageState {
	return PageState{CurrentPage: 1}
}

// Filtered reports whether a search query is active.
func (s PageState) Filtered() bool {
	return strings.TrimSpace(s.ActiveQuery) != ""
}

// Normalize clamps the page to 1 and trims the query.
func (s PageState) Normalize() PageState {
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	s.ActiveQuery = strings.TrimSpace(s.ActiveQuery)
	return s
}
