package models

import "fmt"

// SortOrder selects the ordering of a todo listing. Each variant names a
// primary date column and direction; ties on the primary column break on a
// secondary date column so listings stay reproducible.
type SortOrder string

const (
	StartAsc   SortOrder = "StartAsc"
	StartDesc  SortOrder = "StartDesc"
	EndAsc     SortOrder = "EndAsc"
	EndDesc    SortOrder = "EndDesc"
	UpdateAsc  SortOrder = "UpdateAsc"
	UpdateDesc SortOrder = "UpdateDesc"
)

// ParseSortOrder converts the wire representation of a sort order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case StartAsc, StartDesc, EndAsc, EndDesc, UpdateAsc, UpdateDesc:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("invalid sort order %q", s)
	}
}

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	return string(o)
}
