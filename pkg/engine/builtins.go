package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/tenon/pkg/core"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Tenon Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: add-at -> add_at
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a core.Shape so shape constructors can feed mode builders.
type sexpShape struct {
	shape core.Shape
	desc  string
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %s)", s.desc)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpNamed wraps a core.NamedShape builder awaiting an anchor.
type sexpNamed struct {
	named *core.NamedShape
	name  string
}

func (n *sexpNamed) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(named %q)", n.name)
}
func (n *sexpNamed) Type() *zygo.RegisteredType { return nil }

// sexpMaker wraps a core.Maker.
type sexpMaker struct {
	maker *core.Maker
}

func (m *sexpMaker) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(maker %q)", m.maker.Name())
}
func (m *sexpMaker) Type() *zygo.RegisteredType { return nil }

// sexpColour wraps a core.Colour.
type sexpColour struct {
	colour core.Colour
}

func (c *sexpColour) SexpString(ps *zygo.PrintState) string {
	v := c.colour.RGBA()
	return fmt.Sprintf("(rgb %.2f %.2f %.2f)", v[0], v[1], v[2])
}
func (c *sexpColour) Type() *zygo.RegisteredType { return nil }

// sexpMaterial wraps a core.Material.
type sexpMaterial struct {
	material core.Material
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material %q :priority %g)", m.material.Name, m.material.Priority)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// sexpPart wraps a core.Part.
type sexpPart struct {
	part core.Part
}

func (p *sexpPart) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(part %q :priority %g)", p.part.Name, p.part.Priority)
}
func (p *sexpPart) Type() *zygo.RegisteredType { return nil }

// sexpMaterialMap wraps a core.MaterialMap.
type sexpMaterialMap struct {
	m core.MaterialMap
}

func (m *sexpMaterialMap) SexpString(ps *zygo.PrintState) string {
	return "(material-map)"
}
func (m *sexpMaterialMap) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp. A bare keyword flag parses as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_top) and plain strings ("top").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toShape extracts a core.Shape from a sexpShape or sexpMaker.
func toShape(s zygo.Sexp) (core.Shape, error) {
	switch v := s.(type) {
	case *sexpShape:
		return v.shape, nil
	case *sexpMaker:
		return v.maker, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toMaker extracts a *core.Maker from a sexpMaker.
func toMaker(s zygo.Sexp) (*core.Maker, error) {
	if m, ok := s.(*sexpMaker); ok {
		return m.maker, nil
	}
	return nil, fmt.Errorf("expected maker, got %T (%s)", s, s.SexpString(nil))
}

// anchorArgs converts the remaining Sexp arguments of an anchor call into
// the anchor argument list: keywords and strings pass as strings, numbers
// as float64, bools as bool.
func anchorArgs(args []zygo.Sexp) ([]any, error) {
	out := make([]any, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case *zygo.SexpStr:
			s, _ := toKeywordString(v)
			out = append(out, s)
		case *zygo.SexpInt:
			out = append(out, float64(v.Val))
		case *zygo.SexpFloat:
			out = append(out, v.Val)
		case *zygo.SexpBool:
			out = append(out, v.Val)
		default:
			return nil, fmt.Errorf("unsupported anchor argument %T (%s)", a, a.SexpString(nil))
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Tenon DSL builtins into a zygomys
// environment. The builtins build makers during evaluation; design stores
// the final result into dst.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, dst *Design) {

	// -----------------------------------------------------------------------
	// (box 20 30 10)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires exactly 3 size arguments, got %d", len(args))
		}
		dims := [3]float64{}
		for i := range dims {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: size %d: %w", i, err)
			}
			dims[i] = f
		}
		b := core.NewBox(dims[0], dims[1], dims[2])
		return &sexpShape{shape: b, desc: fmt.Sprintf("box %gx%gx%g", dims[0], dims[1], dims[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere 10 :fn 64)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a radius argument")
		}
		r, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		s, err := core.NewSphere(r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		if err := applySegmentKwargs(pa, &s.Fn, &s.Fa, &s.Fs); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpShape{shape: s, desc: fmt.Sprintf("sphere r=%g", r)}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder 40 3 :fn 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires height and radius arguments")
		}
		h, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		c, err := core.NewCylinder(h, r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if err := applySegmentKwargs(pa, &c.Fn, &c.Fa, &c.Fs); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpShape{shape: c, desc: fmt.Sprintf("cylinder h=%g r=%g", h, r)}, nil
	})

	// -----------------------------------------------------------------------
	// (cone 30 10 4 :fn 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("cone requires height, base radius and top radius arguments")
		}
		vals := [3]float64{}
		labels := []string{"height", "base radius", "top radius"}
		for i := range vals {
			f, err := toFloat64(pa.positional[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cone: %s: %w", labels[i], err)
			}
			vals[i] = f
		}
		c, err := core.NewCone(vals[0], vals[1], vals[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}
		if err := applySegmentKwargs(pa, &c.Fn, &c.Fa, &c.Fs); err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}
		return &sexpShape{shape: c, desc: fmt.Sprintf("cone h=%g r=%g..%g", vals[0], vals[1], vals[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (rgb 0.8 0.2 0.2)
	// -----------------------------------------------------------------------
	env.AddFunction("rgb", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rgb requires exactly 3 arguments, got %d", len(args))
		}
		vals := [3]float64{}
		for i := range vals {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgb: component %d: %w", i, err)
			}
			vals[i] = f
		}
		return &sexpColour{colour: core.RGB(vals[0], vals[1], vals[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (material "steel" :priority 8 :non-physical true)
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("material requires a name argument")
		}
		matName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("material: name: %w", err)
		}
		m := core.NewMaterial(matName)
		if v, ok := pa.kw["priority"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: priority: %w", err)
			}
			m.Priority = f
		}
		if v, ok := pa.kw["non-physical"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: non-physical: %w", err)
			}
			if b {
				m.Kind = core.NonPhysical
			}
		}
		return &sexpMaterial{material: m}, nil
	})

	// -----------------------------------------------------------------------
	// (part "lid" :priority 10)
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}
		partName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		p := core.NewPart(partName)
		if v, ok := pa.kw["priority"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part: priority: %w", err)
			}
			p.Priority = f
		}
		return &sexpPart{part: p}, nil
	})

	// -----------------------------------------------------------------------
	// (material-map (material "a") (material "b") ...) - pairs of from/to
	// -----------------------------------------------------------------------
	env.AddFunction("material_map", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("material-map requires from/to material pairs")
		}
		mats := make([]core.Material, 0, len(args))
		for i, a := range args {
			m, ok := a.(*sexpMaterial)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("material-map: entry %d: expected material, got %T", i, a)
			}
			mats = append(mats, m.material)
		}
		return &sexpMaterialMap{m: core.NewMaterialMapBasic(mats...)}, nil
	})

	// -----------------------------------------------------------------------
	// Mode builders:
	//   (solid (box 10 10 10) "body" :colour (rgb 1 0 0) :fn 32)
	//   (hole ...) (cage ...) (composite ...) (intersect ...)
	//   (hull ...) (minkowski ...)
	// -----------------------------------------------------------------------
	modes := map[string]core.Mode{
		"solid":     core.ModeSolid,
		"hole":      core.ModeHole,
		"cage":      core.ModeCage,
		"composite": core.ModeComposite,
		"intersect": core.ModeIntersect,
		"hull":      core.ModeHull,
		"minkowski": core.ModeMinkowski,
	}
	for fname, mode := range modes {
		mode := mode
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires a shape and a name", name)
			}
			shape, err := toShape(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: shape: %w", name, err)
			}
			entryName, err := toString(pa.positional[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: name: %w", name, err)
			}
			named := core.Named(shape, mode, entryName)
			named, err = applyNamedKwargs(named, pa)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &sexpNamed{named: named, name: entryName}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (at named "face_centre" :top)  /  (at-origin named)
	// -----------------------------------------------------------------------
	env.AddFunction("at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("at requires a named shape and an anchor name")
		}
		n, ok := args[0].(*sexpNamed)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("at: expected named shape, got %T (%s)",
				args[0], args[0].SexpString(nil))
		}
		anchor, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: anchor: %w", err)
		}
		rest, err := anchorArgs(args[2:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: %w", err)
		}
		m, err := n.named.At(anchor, rest...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: %w", err)
		}
		return &sexpMaker{maker: m}, nil
	})

	env.AddFunction("at_origin", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("at-origin requires a named shape")
		}
		n, ok := args[0].(*sexpNamed)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("at-origin: expected named shape, got %T (%s)",
				args[0], args[0].SexpString(nil))
		}
		return &sexpMaker{maker: n.named.AtOrigin()}, nil
	})

	// -----------------------------------------------------------------------
	// (add parent child)  /  (add-at parent child "anchor" args...)
	// -----------------------------------------------------------------------
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("add requires a parent and a child maker")
		}
		parent, err := toMaker(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: parent: %w", err)
		}
		child, err := toMaker(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: child: %w", err)
		}
		if _, err := parent.Add(child); err != nil {
			return zygo.SexpNull, fmt.Errorf("add: %w", err)
		}
		return &sexpMaker{maker: parent}, nil
	})

	env.AddFunction("add_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("add-at requires a parent and a child maker")
		}
		parent, err := toMaker(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-at: parent: %w", err)
		}
		child, err := toMaker(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-at: child: %w", err)
		}
		rest, err := anchorArgs(args[2:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-at: %w", err)
		}
		if _, err := parent.AddAt(child, rest...); err != nil {
			return zygo.SexpNull, fmt.Errorf("add-at: %w", err)
		}
		return &sexpMaker{maker: parent}, nil
	})

	// -----------------------------------------------------------------------
	// (anchors maker) - list anchor names for diagnostics
	// -----------------------------------------------------------------------
	env.AddFunction("anchors", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("anchors requires a shape or maker")
		}
		shape, err := toShape(args[0])
		if err != nil {
			if n, ok := args[0].(*sexpNamed); ok {
				m := n.named.AtOrigin()
				shape, err = m, nil
			} else {
				return zygo.SexpNull, fmt.Errorf("anchors: %w", err)
			}
		}
		names := shape.AnchorNames()
		out := make([]zygo.Sexp, len(names))
		for i, n := range names {
			out[i] = &zygo.SexpStr{S: n}
		}
		return env.NewSexpArray(out), nil
	})

	// -----------------------------------------------------------------------
	// (design maker :fn 64 :fa 2 :fs 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("design", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("design requires a maker argument")
		}
		m, err := toMaker(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("design: %w", err)
		}
		attrs := core.EmptyAttrs
		if v, ok := pa.kw["fn"]; ok {
			fn, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("design: fn: %w", err)
			}
			attrs = attrs.WithFn(fn)
		}
		if v, ok := pa.kw["fa"]; ok {
			fa, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("design: fa: %w", err)
			}
			attrs = attrs.WithFa(fa)
		}
		if v, ok := pa.kw["fs"]; ok {
			fs, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("design: fs: %w", err)
			}
			attrs = attrs.WithFs(fs)
		}
		dst.Root = m
		dst.Attrs = attrs
		return pa.positional[0], nil
	})
}

// applySegmentKwargs applies :fn/:fa/:fs keyword args to shape fields.
func applySegmentKwargs(pa kwArgs, fn *int, fa, fs *float64) error {
	if v, ok := pa.kw["fn"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("fn: %w", err)
		}
		*fn = n
	}
	if v, ok := pa.kw["fa"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("fa: %w", err)
		}
		*fa = f
	}
	if v, ok := pa.kw["fs"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("fs: %w", err)
		}
		*fs = f
	}
	return nil
}

// applyNamedKwargs applies the shared builder keyword args to a NamedShape.
func applyNamedKwargs(n *core.NamedShape, pa kwArgs) (*core.NamedShape, error) {
	if v, ok := pa.kw["colour"]; ok {
		c, ok := v.(*sexpColour)
		if !ok {
			return nil, fmt.Errorf("colour: expected (rgb ...), got %T", v)
		}
		n = n.Colour(c.colour)
	}
	if v, ok := pa.kw["fn"]; ok {
		fn, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("fn: %w", err)
		}
		n = n.Fn(fn)
	}
	if v, ok := pa.kw["fa"]; ok {
		fa, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("fa: %w", err)
		}
		n = n.Fa(fa)
	}
	if v, ok := pa.kw["fs"]; ok {
		fs, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("fs: %w", err)
		}
		n = n.Fs(fs)
	}
	if v, ok := pa.kw["material"]; ok {
		m, ok := v.(*sexpMaterial)
		if !ok {
			return nil, fmt.Errorf("material: expected (material ...), got %T", v)
		}
		n = n.Material(m.material)
	}
	if v, ok := pa.kw["part"]; ok {
		p, ok := v.(*sexpPart)
		if !ok {
			return nil, fmt.Errorf("part: expected (part ...), got %T", v)
		}
		n = n.Part(p.part)
	}
	if v, ok := pa.kw["material-map"]; ok {
		mm, ok := v.(*sexpMaterialMap)
		if !ok {
			return nil, fmt.Errorf("material-map: expected (material-map ...), got %T", v)
		}
		n = n.MaterialMap(mm.m)
	}
	if v, ok := pa.kw["disable"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("disable: %w", err)
		}
		n = n.Disable(b)
	}
	if v, ok := pa.kw["show-only"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("show-only: %w", err)
		}
		n = n.ShowOnly(b)
	}
	if v, ok := pa.kw["debug"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("debug: %w", err)
		}
		n = n.Debug(b)
	}
	if v, ok := pa.kw["transparent"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("transparent: %w", err)
		}
		n = n.Transparent(b)
	}
	return n, nil
}
