package cssast

// Clone is a plain structural copy of a node view: arrays, strings, and
// numeric fields, detached from the arena and source lifetime (spec.md
// §4.11 "clone(deep, with_locations)"). Consumers that must outlive the
// parse call use this instead of holding a View.
type Clone struct {
	Kind          Kind
	Flags         Flag
	AttrOp        AttrOp
	AttrFlags     AttrFlags
	Text          string
	Name          string
	Value         string
	StartLine     int
	StartColumn   int
	HasLocations  bool
	Children      []*Clone
}

// Clone materializes an owned copy of v. When deep is false, only v itself
// is copied (no children). When withLocations is false, StartLine/
// StartColumn are left zero and HasLocations is false.
func (v View) Clone(deep bool, withLocations bool) *Clone {
	if !v.Valid() {
		return nil
	}
	c := &Clone{
		Kind:      v.Kind(),
		Flags:     v.Arena.Flags(v.Index),
		AttrOp:    v.AttrOp(),
		AttrFlags: v.AttrFlags(),
		Text:      v.Text(),
		Name:      v.Name(),
		Value:     v.Value(),
	}
	if withLocations {
		c.HasLocations = true
		c.StartLine = v.StartLine()
		c.StartColumn = v.StartColumn()
	}
	if deep {
		for _, child := range v.Children() {
			c.Children = append(c.Children, child.Clone(true, withLocations))
		}
	}
	return c
}
