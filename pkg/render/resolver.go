package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chazu/tenon/pkg/core"
	"github.com/chazu/tenon/pkg/scad"
)

// ResolvedGroup is one Part/Material group of the output after the
// priority cure. FinalName is the module holding the cured geometry; it
// equals ModuleName when nothing cut the group.
type ResolvedGroup struct {
	Key        core.PartMaterial
	ModuleName string
	FinalName  string
}

// PartModel is the standalone output document for one part name.
type PartModel struct {
	Part  core.Part
	Model *scad.LazyUnion
}

/// Result is a completed render: the combined output document, the
// per-part documents, the resolved group catalogue and the composition
// graph.
type Result struct {
	Shape   core.Shape
	Graph   *Graph
	Modules []*scad.Module
	Groups  []ResolvedGroup
	Model   *scad.LazyUnion
	Parts   []PartModel
}

// moduleNamer issues unique, stable module names. Identical inputs yield
// identical names across runs; collisions get a running counter suffix.
type moduleNamer struct {
	used map[string]bool
}

func newModuleNamer() *moduleNamer {
	return &moduleNamer{used: make(map[string]bool)}
}

func (n *moduleNamer) name(base string) string {
	name := base
	for i := 1; n.used[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	n.used[name] = true
	return name
}

// sanitizeIdent maps an arbitrary name to an OpenSCAD identifier chunk.
func sanitizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func fmtPriority(p float64) string {
	return sanitizeIdent(strconv.FormatFloat(p, 'g', -1, 64))
}

func groupModuleBase(key core.PartMaterial) string {
	return sanitizeIdent(key.Part.Name) + "_" + fmtPriority(key.Part.Priority) +
		"_" + sanitizeIdent(key.Material.Name) + "_" + fmtPriority(key.Material.Priority)
}

// resolve runs the root-level priority cure over the root container's
// buckets and assembles the output documents. It runs exactly once per
// render, when the scope stack empties.
//
// Physical groups are sorted descending by (part priority, part name,
// material priority, material name); each group is cut by every
// higher-priority group with a different (part, material) name pair and
// by the root-level holes. Same-named groups never cut each other.
// Non-physical groups pass through untouched.
func resolve(root *Container, graph *Graph) *Result {
	groups := root.groups()

	var physical, markup []taggedGroup
	for _, g := range groups {
		if g.key.Material.Kind == core.Physical {
			physical = append(physical, g)
		} else {
			markup = append(markup, g)
		}
	}
	sort.SliceStable(physical, func(i, j int) bool {
		return physical[i].key.Compare(physical[j].key) < 0
	})
	sort.SliceStable(markup, func(i, j int) bool {
		return markup[i].key.Compare(markup[j].key) < 0
	})

	namer := newModuleNamer()
	res := &Result{Graph: graph, Model: scad.NewLazyUnion()}

	// Base modules first, in output order, so cure modules can call them.
	baseNames := make([]string, len(physical))
	for i, g := range physical {
		baseNames[i] = namer.name(groupModuleBase(g.key))
		mod := scad.NewModule(baseNames[i])
		mod.Append(g.node)
		res.Modules = append(res.Modules, mod)
	}

	for i, g := range physical {
		var cure []scad.Node
		for j := 0; j < i; j++ {
			if !physical[j].key.SameNames(g.key) {
				cure = append(cure, scad.NewCall(baseNames[j]))
			}
		}
		final := baseNames[i]
		if len(cure) > 0 || len(root.holes) > 0 {
			final = namer.name(baseNames[i] + "_cured")
			d := scad.Difference(scad.NewCall(baseNames[i]))
			d.Append(cure...)
			d.Append(root.holes...)
			mod := scad.NewModule(final)
			mod.Append(d)
			res.Modules = append(res.Modules, mod)
		}
		res.Groups = append(res.Groups, ResolvedGroup{
			Key:        g.key,
			ModuleName: baseNames[i],
			FinalName:  final,
		})
	}

	for _, g := range markup {
		name := namer.name(groupModuleBase(g.key))
		mod := scad.NewModule(name)
		mod.Append(g.node)
		res.Modules = append(res.Modules, mod)
		res.Groups = append(res.Groups, ResolvedGroup{
			Key:        g.key,
			ModuleName: name,
			FinalName:  name,
		})
	}

	for _, mod := range res.Modules {
		res.Model.Append(mod)
	}
	calls := make([]scad.Node, len(res.Groups))
	for i, g := range res.Groups {
		calls[i] = scad.NewCall(g.FinalName)
	}
	// Root-scope heads wrap the called geometry, not the definitions.
	res.Model.Append(materializeHeads(root.heads, calls)...)

	res.Parts = assembleParts(res)
	return res
}

// assembleParts builds one standalone document per part name, sub-grouped
// by material. Module definitions are replicated into every document so
// each part file stands alone.
func assembleParts(res *Result) []PartModel {
	var order []string
	byPart := make(map[string][]ResolvedGroup)
	partOf := make(map[string]core.Part)
	for _, g := range res.Groups {
		name := g.Key.Part.Name
		if _, ok := byPart[name]; !ok {
			order = append(order, name)
			partOf[name] = g.Key.Part
		}
		byPart[name] = append(byPart[name], g)
	}

	parts := make([]PartModel, 0, len(order))
	for _, name := range order {
		model := scad.NewLazyUnion()
		for _, mod := range res.Modules {
			model.Append(mod)
		}
		var matOrder []string
		byMat := make(map[string][]ResolvedGroup)
		for _, g := range byPart[name] {
			mat := g.Key.Material.Name
			if _, ok := byMat[mat]; !ok {
				matOrder = append(matOrder, mat)
			}
			byMat[mat] = append(byMat[mat], g)
		}
		for _, mat := range matOrder {
			u := scad.Union()
			u.SetName(name + " : " + mat)
			for _, g := range byMat[mat] {
				u.Append(scad.NewCall(g.FinalName))
			}
			model.Append(u)
		}
		parts = append(parts, PartModel{Part: partOf[name], Model: model})
	}
	return parts
}
