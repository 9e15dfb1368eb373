package view

import (
	"fmt"
	"strings"
)

// SortOption selects the order of the projected notes.
type SortOption string

const (
	SortTitle       SortOption = "title"
	SortDateCreated SortOption = "dateCreated"
	SortDateUpdated SortOption = "dateUpdated"
)

// SortOptions lists the options in the order a selector presents them.
var SortOptions = []SortOption{SortTitle, SortDateCreated, SortDateUpdated}

// ParseSortOption validates user input. Matching is case-insensitive.
func ParseSortOption(s string) (SortOption, error) {
	for _, opt := range SortOptions {
		if strings.EqualFold(s, string(opt)) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown sort option %q (want one of: title, dateCreated, dateUpdated)", s)
}

// Next returns the option after o in SortOptions, wrapping around.
func (o SortOption) Next() SortOption {
	for i, opt := range SortOptions {
		if opt == o {
			return SortOptions[(i+1)%len(SortOptions)]
		}
	}
	return SortOptions[0]
}

// Label is the human readable name of the option.
func (o SortOption) Label() string {
	switch o {
	case SortTitle:
		return "Title"
	case SortDateCreated:
		return "Date Created"
	default:
		return "Date Updated"
	}
}
