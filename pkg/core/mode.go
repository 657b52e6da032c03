package core

// Mode tags how a named sub-frame combines into its parent scope when the
// scope closes during rendering.
type Mode int

const (
	// ModeSolid combines the scope and propagates its groups unchanged.
	ModeSolid Mode = iota
	// ModeHole combines the scope, strips part/material tagging and
	// appends the result to the parent's holes.
	ModeHole
	// ModeCage discards everything produced in the scope.
	ModeCage
	// ModeComposite propagates solids and holes separately, tags
	// preserved, without folding holes into solids.
	ModeComposite
	// ModeIntersect combines using an intersection container.
	ModeIntersect
	// ModeHull combines using a hull container.
	ModeHull
	// ModeMinkowski combines using a minkowski container.
	ModeMinkowski
)

var modeNames = map[Mode]string{
	ModeSolid:     "solid",
	ModeHole:      "hole",
	ModeCage:      "cage",
	ModeComposite: "composite",
	ModeIntersect: "intersect",
	ModeHull:      "hull",
	ModeMinkowski: "minkowski",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// HasOperatorContainer reports whether the mode combines its scope with a
// dedicated operator container rather than a plain union.
func (m Mode) HasOperatorContainer() bool {
	switch m {
	case ModeIntersect, ModeHull, ModeMinkowski:
		return true
	}
	return false
}
