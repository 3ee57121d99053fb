package notifications

// View is the reactive view model handed to the rendering layer.
type View struct {
	// Version counts completed store mutations; it only grows.
	Version   uint64         `json:"version"`
	Ungrouped []Notification `json:"ungrouped"`
	Groups    []GroupView    `json:"groups"`
}

// GroupView is one stack as the renderer sees it.
type GroupView struct {
	ID            string         `json:"id"`
	Visible       []Notification `json:"visible"`
	OverflowCount int            `json:"overflowCount"`
	IsExpanded    bool           `json:"isExpanded"`
	Styles        []SlotStyle    `json:"styles"`
}

// StyleFor returns the style of visible slot index, or a hidden slot outside the window.
func (g GroupView) StyleFor(index int) SlotStyle {
	if index < 0 || index >= len(g.Styles) {
		return hiddenSlot
	}
	return g.Styles[index]
}

// BuildView turns a partition into the view model using cfg for the window
// size and stack geometry.
func BuildView(p Partition, cfg Config) View {
	v := View{
		Ungrouped: p.Ungrouped,
		Groups:    make([]GroupView, 0, len(p.Groups)),
	}
	if v.Ungrouped == nil {
		v.Ungrouped = []Notification{}
	}

	for _, g := range p.Groups {
		c := NewStackController(g, cfg, nil)
		v.Groups = append(v.Groups, GroupView{
			ID:            g.ID,
			Visible:       c.Visible(),
			OverflowCount: c.OverflowCount(),
			IsExpanded:    g.IsExpanded,
			Styles:        c.Styles(),
		})
	}

	return v
}

// Group returns the group view with the given ID.
func (v View) Group(id string) (GroupView, bool) {
	for _, g := range v.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return GroupView{}, false
}

// Len returns the number of live notifications represented, hidden overflow included.
func (v View) Len() int {
	n := len(v.Ungrouped)
	for _, g := range v.Groups {
		n += len(g.Visible) + g.OverflowCount
	}
	return n
}
