package setting

// Entry is a schema item stamped with where it came from.
type Entry struct {
	Item
	Group string `json:"fileName"`
	Field string `json:"cfgKey"`
}

// Path is the "group.field" address of the entry.
func (e Entry) Path() string {
	return e.Group + "." + e.Field
}

// Descriptor is one row of the settings form rendered by the host UI.
// Group rows only carry Component "Divider" and Label.
type Descriptor struct {
	Field             string `json:"field,omitempty"`
	Label             string `json:"label"`
	BottomHelpMessage string `json:"bottomHelpMessage,omitempty"`
	Component         string `json:"component"`
	ComponentProps    *Item  `json:"componentProps,omitempty"`
}

var components = map[Type]string{
	TypeString:  "Input",
	TypeBoolean: "Switch",
	TypeNumber:  "InputNumber",
	TypeArray:   "GSelectGroup",
}

// ComponentFor resolves the UI component of an item. The override wins;
// an unknown type without override yields "".
func ComponentFor(t Type, override string) string {
	if override != "" {
		return override
	}
	return components[t]
}

// FlatMap folds every group into one map keyed by display key.
// On a duplicate key the later item wins.
func (s Schema) FlatMap() map[string]Entry {
	ret := make(map[string]Entry)
	for _, g := range s {
		for _, f := range g.Fields {
			ret[f.Item.Key] = Entry{
				Item:  f.Item,
				Group: g.Name,
				Field: f.Name,
			}
		}
	}
	return ret
}

// FormDescriptors lists a divider per group followed by its fields, skipping
// the bulk-toggle group.
func (s Schema) FormDescriptors() []Descriptor {
	var ret []Descriptor
	for _, g := range s {
		if g.Name == BulkToggleGroup {
			continue
		}
		ret = append(ret, Descriptor{
			Component: "Divider",
			Label:     g.Title,
		})
		for _, f := range g.Fields {
			item := f.Item
			ret = append(ret, Descriptor{
				Field:             g.Name + "." + f.Name,
				Label:             item.Title,
				BottomHelpMessage: item.Desc,
				Component:         ComponentFor(item.Type, item.Component),
				ComponentProps:    &item,
			})
		}
	}
	return ret
}
