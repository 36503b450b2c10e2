package token

// Attr is a single HTML attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list. Rendering keeps insertion order.
type Attrs []Attr

// Get returns the value of the named attribute and whether it is present.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set replaces the named attribute in place or appends it.
func (a *Attrs) Set(name, value string) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// Join appends value to the named attribute with a separating space.
func (a *Attrs) Join(name, value string) {
	for i := range *a {
		if (*a)[i].Name == name {
			if (*a)[i].Value == "" {
				(*a)[i].Value = value
			} else {
				(*a)[i].Value += " " + value
			}
			return
		}
	}
	*a = append(*a, Attr{Name: name, Value: value})
}
