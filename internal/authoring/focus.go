package authoring

// Region identifies an editable rich-text area, e.g. "stem" or
// "item:12:sentence".
type Region string

// FocusState records which region owns the editing toolbar. Ownership
// changes only through Focus and Blur; the latest event wins.
type FocusState struct {
	Owner Region `json:"owner,omitempty"`
}

func (f *FocusState) Focus(r Region) {
	f.Owner = r
}

// Blur releases the toolbar only if r still owns it, so a blur arriving
// after another region took focus is ignored.
func (f *FocusState) Blur(r Region) {
	if f.Owner == r {
		f.Owner = ""
	}
}

func (f FocusState) ToolbarVisible(r Region) bool {
	return r != "" && f.Owner == r
}
