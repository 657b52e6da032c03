package engine

import (
	"strings"
	"testing"

	"github.com/chazu/tenon/pkg/core"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(at b "face_centre" :top)`,
			expect: `(at b "face_centre" "__kw_top")`,
		},
		{
			name:   "multiple keywords",
			input:  `(design m :fn 64 :fa 2)`,
			expect: `(design m "__kw_fn" 64 "__kw_fa" 2)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(add-at parent child)`,
			expect: `(add_at parent child)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:show-only`,
			expect: `"__kw_show-only"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// DSL evaluation helpers
// ---------------------------------------------------------------------------

// mustEvaluate runs source through a fresh engine and fails the test on any
// error.
func mustEvaluate(t *testing.T, source string) *Design {
	t.Helper()
	eng := NewEngine()
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if d == nil {
		t.Fatal("nil design")
	}
	return d
}

// evalExpectError runs source and returns the eval errors, failing if the
// evaluation succeeded.
func evalExpectError(t *testing.T, source string) []EvalError {
	t.Helper()
	eng := NewEngine()
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatalf("expected eval errors, got design %v", d)
	}
	return evalErrs
}

// ---------------------------------------------------------------------------
// Shape builder tests
// ---------------------------------------------------------------------------

func TestSimpleDesign(t *testing.T) {
	d := mustEvaluate(t, `(design (at-origin (solid (box 20 30 10) "body")))`)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
	if d.Root.Name() != "body" {
		t.Errorf("root name = %q, want body", d.Root.Name())
	}
	if !d.Root.HasAnchor("face_centre") {
		t.Error("box maker should expose face_centre anchor")
	}
}

func TestDesignAnchorPlacement(t *testing.T) {
	source := `
(def body (at-origin (solid (box 20 20 10) "body")))
(add-at body
        (at (hole (cylinder 10 2 :fn 32) "drill") "top")
        "face_centre" :top)
(design body)
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}

	// The drill hole's top anchor coincides with the top face centre.
	got, err := d.Root.At("drill", "top")
	if err != nil {
		t.Fatalf("At(drill, top): %v", err)
	}
	want, err := d.Root.At("face_centre", "top")
	if err != nil {
		t.Fatalf("At(face_centre, top): %v", err)
	}
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("drill top frame = %v, want %v", got, want)
	}
}

func TestAnchorNumericArgs(t *testing.T) {
	source := `
(def body (at-origin (solid (box 10 10 10) "body")))
(add-at body
        (at (solid (sphere 2) "peg") "centre")
        "face_edge" :front 2 0.25)
(design body)
`
	d := mustEvaluate(t, source)
	m, err := d.Root.At("peg", "centre")
	if err != nil {
		t.Fatalf("At(peg, centre): %v", err)
	}
	want, err := d.Root.At("face_edge", "front", 2.0, 0.25)
	if err != nil {
		t.Fatalf("At(face_edge, ...): %v", err)
	}
	if !m.ApproxEqual(want, 1e-9) {
		t.Errorf("peg centre frame = %v, want %v", m, want)
	}
}

func TestVariableReference(t *testing.T) {
	source := `
(def r 4)
(def ball (at-origin (solid (sphere r) "ball")))
(design ball)
`
	d := mustEvaluate(t, source)
	if d.Root.Name() != "ball" {
		t.Errorf("root name = %q, want ball", d.Root.Name())
	}
}

func TestDuplicateNameError(t *testing.T) {
	source := `
(def body (at-origin (solid (box 10 10 10) "body")))
(add body (at-origin (solid (sphere 1) "body")))
(design body)
`
	errs := evalExpectError(t, source)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "already exists") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate name error, got %v", errs)
	}
}

func TestUnknownAnchorError(t *testing.T) {
	source := `(design (at (solid (sphere 3) "ball") "lid"))`
	errs := evalExpectError(t, source)
	if !strings.Contains(errs[0].Message, "lid") {
		t.Errorf("expected anchor name in error, got %v", errs)
	}
}

func TestIllegalShapeParameter(t *testing.T) {
	source := `(design (at-origin (solid (sphere -1) "ball")))`
	errs := evalExpectError(t, source)
	if len(errs) == 0 {
		t.Fatal("expected error for negative radius")
	}
}

func TestDesignRootAttributes(t *testing.T) {
	d := mustEvaluate(t, `(design (at-origin (solid (box 1 1 1) "b")) :fn 64 :fa 2.0 :fs 0.5)`)
	if d.Attrs == nil {
		t.Fatal("expected root attributes")
	}
	fn, fa, fs := d.Attrs.FillSegments(0, 0, 0)
	if fn != 64 || fa != 2.0 || fs != 0.5 {
		t.Errorf("root segments = (%d, %g, %g), want (64, 2, 0.5)", fn, fa, fs)
	}
}

func TestModeBuilders(t *testing.T) {
	source := `
(def body (at-origin (intersect (box 10 10 10) "body")))
(add body (at-origin (solid (sphere 8) "ball")))
(design body)
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
	if !d.Root.HasAnchor("ball") {
		t.Error("intersect scope should still expose its entries")
	}
}

func TestCageAndComposite(t *testing.T) {
	source := `
(def frame (at-origin (cage (box 40 40 40) "frame")))
(add-at frame
        (at (composite (at-origin (solid (sphere 5) "inner")) "pair") "inner" "centre")
        "centre")
(design frame)
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
}

func TestMaterialAndPartKwargs(t *testing.T) {
	source := `
(def lid (at-origin (solid (box 30 30 3) "lid"
                           :colour (rgb 0.8 0.2 0.2)
                           :material (material "steel" :priority 8)
                           :part (part "lid" :priority 10))))
(design lid)
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
}

func TestNonPhysicalMaterial(t *testing.T) {
	source := `
(def marks (at-origin (solid (box 1 1 1) "marks"
                             :material (material "guide" :non-physical true))))
(design marks)
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
}

func TestAnchorsBuiltin(t *testing.T) {
	// anchors returns the catalogue; the script asserts membership itself.
	source := `
(def names (anchors (at-origin (solid (box 1 1 1) "b"))))
(design (at-origin (solid (sphere 1) "s")))
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
}

func TestFullBoxExample(t *testing.T) {
	source := `
;; A plate with a drilled corner hole and a cosmetic cap.
(def plate (at-origin (solid (box 40 30 5) "plate" :colour (rgb 0.3 0.5 0.9))))

(add-at plate
        (at (hole (cylinder 5 1.5 :fn 24) "corner-drill") "top")
        "face_corner" :top 0)

(add-at plate
        (at (solid (sphere 3 :fn 48) "cap") "base")
        "face_centre" :top)

(design plate :fn 32)
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
	for _, name := range []string{"plate", "corner-drill", "cap"} {
		if !d.Root.HasAnchor(name) {
			t.Errorf("missing entry anchor %q (have %v)", name, d.Root.AnchorNames())
		}
	}

	// The cap rests its base on the top face centre.
	capBase, err := d.Root.At("cap", "base")
	if err != nil {
		t.Fatalf("At(cap, base): %v", err)
	}
	top, err := d.Root.At("face_centre", "top")
	if err != nil {
		t.Fatalf("At(face_centre, top): %v", err)
	}
	if !capBase.Translation().ApproxEqual(top.Translation(), 1e-9) {
		t.Errorf("cap base at %v, want %v", capBase.Translation(), top.Translation())
	}
}

func TestSolidKwargsAffectRender(t *testing.T) {
	source := `(design (at-origin (solid (box 2 2 2) "b" :debug true)))`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
}

func TestEmptySourceStillWorks(t *testing.T) {
	d := mustEvaluate(t, "")
	if d.Root != nil {
		t.Error("empty source should yield no root")
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	source := `
(def w (* 2 10))
(design (at-origin (solid (box w 10 5) "bar")))
`
	d := mustEvaluate(t, source)
	if d.Root == nil {
		t.Fatal("expected design root")
	}
}

// Anchor frames produced through the DSL must agree with the Go API.
func TestDSLAgreesWithGoAPI(t *testing.T) {
	d := mustEvaluate(t, `(design (at (solid (box 2 4 6) "b") "face_centre" :top))`)

	b := core.NewBox(2, 4, 6)
	named, err := core.Solid(b, "b").At("face_centre", "top")
	if err != nil {
		t.Fatalf("Go API At: %v", err)
	}

	got, err := d.Root.At("centre")
	if err != nil {
		t.Fatalf("DSL At(centre): %v", err)
	}
	want, err := named.At("centre")
	if err != nil {
		t.Fatalf("Go API At(centre): %v", err)
	}
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("DSL centre = %v, Go API centre = %v", got, want)
	}
}
