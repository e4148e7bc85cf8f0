package evaluator_test

import (
	"reflect"
	"testing"

	"github.com/sysmod-lang/sysmod/internal/evaluator"
	"github.com/sysmod-lang/sysmod/internal/lexer"
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/parser"
	"github.com/sysmod-lang/sysmod/internal/scope"
)

// evalFeature resolves source text and evaluates the value expression of
// the feature with the given qualified name.
func evalFeature(t *testing.T, src, name string) []evaluator.Value {
	t.Helper()
	a := model.NewArena(model.NewRegistry())
	p := parser.New(lexer.New(src).Tokenize())
	file := p.ParseFile("test.smod")
	if diags := p.Diagnostics(); len(diags) != 0 {
		t.Fatalf("parse: %v", diags[0])
	}
	model.Link(a, file)
	scope.NewResolver(a, nil).Resolve()
	var f *model.Element
	for _, e := range a.Elements() {
		if e.QualifiedName() == name {
			f = e
		}
	}
	if f == nil || f.Feat == nil || f.Feat.Value() == nil {
		t.Fatalf("feature %q with a value expression not found", name)
	}
	return evaluator.Evaluate(f.Feat.Value(), f)
}

// evalExpr evaluates "feature v = <expr>;" with no other declarations.
func evalExpr(t *testing.T, expr string) []evaluator.Value {
	t.Helper()
	return evalFeature(t, "feature v = "+expr+";", "v")
}

func TestEvaluateArithmetic(t *testing.T) {
	testCases := []struct {
		expr string
		want []evaluator.Value
	}{
		{"3 + 4", []evaluator.Value{int64(7)}},
		{"10 - 3", []evaluator.Value{int64(7)}},
		{"6 * 7", []evaluator.Value{int64(42)}},
		{"7 / 2", []evaluator.Value{int64(3)}},
		{"7 % 2", []evaluator.Value{int64(1)}},
		{"2 ** 10", []evaluator.Value{int64(1024)}},
		{"-5", []evaluator.Value{int64(-5)}},
		{"1.5 + 2", []evaluator.Value{3.5}},
		{"2.0 ** 0.5", []evaluator.Value{1.4142135623730951}},
		{"\"foo\" + \"bar\"", []evaluator.Value{"foobar"}},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			got := evalExpr(t, tc.expr)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluateNotEvaluable(t *testing.T) {
	testCases := []string{
		"3 / 0",
		"3 % 0",
		"3.5 % 2", // remainder is integer-only
		"1 < \"a\"",
		"(10, 20, 30)#(0)",
		"(10, 20, 30)#(4)",
	}
	for _, expr := range testCases {
		t.Run(expr, func(t *testing.T) {
			if got := evalExpr(t, expr); got != nil {
				t.Errorf("got %v, want nil", got)
			}
		})
	}
}

func TestEvaluateNullIsEmptyNotNil(t *testing.T) {
	got := evalExpr(t, "null")
	if got == nil || len(got) != 0 {
		t.Fatalf("null must be the empty result, got %v", got)
	}
}

func TestEvaluateComparisons(t *testing.T) {
	testCases := []struct {
		expr string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"2 > 3", false},
		{"1 == 1.0", true}, // numeric equality crosses the int/rational divide
		{"1 != 2", true},
		{"\"abc\" < \"abd\"", true},
		{"\"a\" < \"B\"", true}, // collation order, not byte order
		{"\"a\" == \"a\"", true},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			got := evalExpr(t, tc.expr)
			if len(got) != 1 || got[0] != tc.want {
				t.Errorf("got %v, want [%v]", got, tc.want)
			}
		})
	}
}

func TestEvaluateShortCircuit(t *testing.T) {
	// Unknown is unresolvable, so the right operand is not evaluable;
	// the decided left side must still produce a result.
	testCases := []struct {
		expr string
		want []evaluator.Value
	}{
		{"false and Unknown", []evaluator.Value{false}},
		{"true or Unknown", []evaluator.Value{true}},
		{"false implies Unknown", []evaluator.Value{true}},
		{"true and false", []evaluator.Value{false}},
		{"false or true", []evaluator.Value{true}},
		{"true implies false", []evaluator.Value{false}},
		{"true and Unknown", nil},
		{"true xor true", []evaluator.Value{false}},
		{"not false", []evaluator.Value{true}},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			got := evalExpr(t, tc.expr)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluateConditional(t *testing.T) {
	if got := evalExpr(t, "if 1 < 2 ? \"yes\" else \"no\""); len(got) != 1 || got[0] != "yes" {
		t.Errorf("got %v", got)
	}
	// Only the selected branch is evaluated.
	if got := evalExpr(t, "if false ? Unknown else 9"); len(got) != 1 || got[0] != int64(9) {
		t.Errorf("got %v", got)
	}
}

func TestEvaluateSequences(t *testing.T) {
	got := evalExpr(t, "(1, 2, 3)")
	want := []evaluator.Value{int64(1), int64(2), int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := evalExpr(t, "(10, 20, 30)#(2)"); len(got) != 1 || got[0] != int64(20) {
		t.Errorf("indexing got %v, want [20]", got)
	}
	// Nested sequences flatten.
	got = evalExpr(t, "(1, (2, 3))")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("flattening got %v, want %v", got, want)
	}
}

func TestEvaluateFeatureReference(t *testing.T) {
	got := evalFeature(t, `
class Conf {
	feature port = 8000 + 80;
	feature derived = port * 2;
}
`, "Conf::derived")
	if len(got) != 1 || got[0] != int64(16160) {
		t.Fatalf("got %v, want [16160]", got)
	}
}

func TestEvaluateFeatureChain(t *testing.T) {
	got := evalFeature(t, `
class Conf { feature port = 8080; }
feature c : Conf;
feature v = c.port;
`, "v")
	if len(got) != 1 || got[0] != int64(8080) {
		t.Fatalf("got %v, want [8080]", got)
	}
}

func TestEvaluateClassification(t *testing.T) {
	src := `
datatype Base;
datatype D :> Base;
feature item : D;
feature direct = item hastype D;
feature indirect = item hastype Base;
feature transitive = item istype Base;
`
	if got := evalFeature(t, src, "direct"); len(got) != 1 || got[0] != true {
		t.Errorf("hastype direct: got %v", got)
	}
	if got := evalFeature(t, src, "indirect"); len(got) != 1 || got[0] != false {
		t.Errorf("hastype must only see direct typings: got %v", got)
	}
	if got := evalFeature(t, src, "transitive"); len(got) != 1 || got[0] != true {
		t.Errorf("istype must follow specialization: got %v", got)
	}
}

func TestEvaluateInvocation(t *testing.T) {
	src := `
package SequenceFunctions { function size { in feature s; return feature r; } }
feature v = SequenceFunctions::size((1, 2, 3));
`
	if got := evalFeature(t, src, "v"); len(got) != 1 || got[0] != int64(3) {
		t.Errorf("registered invocation: got %v, want [3]", got)
	}
}

func TestEvaluateStringFunctions(t *testing.T) {
	src := `
package StringFunctions {
	function Length { in feature s; return feature r; }
	function Substring { in feature s; in feature lo; in feature hi; return feature r; }
}
feature len = StringFunctions::Length("hello");
feature noArgs = StringFunctions::Length();
feature sub = StringFunctions::Substring("abcdef", 2, 4);
`
	if got := evalFeature(t, src, "len"); len(got) != 1 || got[0] != int64(5) {
		t.Errorf("Length: got %v, want [5]", got)
	}
	// Wrong argument count is not evaluable, never a failure.
	if got := evalFeature(t, src, "noArgs"); got != nil {
		t.Errorf("zero-argument call: got %v, want nil", got)
	}
	if got := evalFeature(t, src, "sub"); len(got) != 1 || got[0] != "bcd" {
		t.Errorf("Substring: got %v, want [bcd]", got)
	}
}

func TestEvaluateUnregisteredInvocation(t *testing.T) {
	got := evalFeature(t, `
function Custom { in feature x; return feature r; }
feature v = Custom(1);
`, "v")
	if got != nil {
		t.Fatalf("unregistered function must not be evaluable, got %v", got)
	}
}

func TestCanEvaluate(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	p := parser.New(lexer.New("feature ok = 1 + 1; feature bad = Unknown;").Tokenize())
	file := p.ParseFile("test.smod")
	model.Link(a, file)
	scope.NewResolver(a, nil).Resolve()
	for _, e := range a.Elements() {
		switch e.QualifiedName() {
		case "ok":
			if !evaluator.CanEvaluate(e.Feat.Value()) {
				t.Error("constant expression must be evaluable")
			}
		case "bad":
			if evaluator.CanEvaluate(e.Feat.Value()) {
				t.Error("unresolved reference must not be evaluable")
			}
		}
	}
}
