package ihm

// Entity is a unique sequence. Components with byte-equal sequences share
// one Entity.
type Entity struct {
	ID       int
	Sequence string

	// Description is the name of the first component registered with this
	// sequence.
	Description string
}

// Assembly is an ordered set of component names.
type Assembly struct {
	ID         int
	Components []string
}

// Contains reports whether the assembly includes the named component.
func (a *Assembly) Contains(name string) bool {
	for _, c := range a.Components {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns an unregistered copy of the assembly.
func (a *Assembly) Clone() *Assembly {
	return &Assembly{Components: append([]string(nil), a.Components...)}
}
