package notifications

import (
	"slices"
)

// Group is a derived cluster of notifications sharing a GroupID.
// Members are ordered most-recent-first.
type Group struct {
	ID         string         `json:"id"`
	Members    []Notification `json:"members"`
	IsExpanded bool           `json:"isExpanded"`
}

// Partition is the render-ready split of a store's notifications.
type Partition struct {
	Ungrouped []Notification `json:"ungrouped"`
	Groups    []Group        `json:"groups"`
}

// Group returns the group with the given ID.
func (p Partition) Group(id string) (Group, bool) {
	for _, g := range p.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Derive splits notifications into ungrouped ones (in collection order) and
// groups (in order of their first member in the collection). Members of each
// group are sorted newest first regardless of collection order. expanded maps
// group IDs to their expansion flag; missing entries are collapsed.
//
// Derive does not modify its inputs.
func Derive(notifications []Notification, expanded map[string]bool) Partition {
	p := Partition{
		Ungrouped: []Notification{},
		Groups:    []Group{},
	}
	index := make(map[string]int)

	for _, n := range notifications {
		if !n.Grouped() {
			p.Ungrouped = append(p.Ungrouped, n)
			continue
		}
		i, ok := index[n.GroupID]
		if !ok {
			i = len(p.Groups)
			index[n.GroupID] = i
			p.Groups = append(p.Groups, Group{ID: n.GroupID, IsExpanded: expanded[n.GroupID]})
		}
		p.Groups[i].Members = append(p.Groups[i].Members, n)
	}

	for i := range p.Groups {
		sortNewestFirst(p.Groups[i].Members)
	}

	return p
}

// sortNewestFirst sorts in place by Timestamp descending. Equal timestamps keep
// their relative order.
func sortNewestFirst(ns []Notification) {
	slices.SortStableFunc(ns, func(a, b Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}
