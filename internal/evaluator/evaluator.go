package evaluator

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
	"github.com/sysmod-lang/sysmod/internal/model"
)

// Value is one evaluation result: bool, int64, float64, string,
// Infinity, or a *model.Element for element-valued results.
type Value interface{}

// Infinity is the unbounded multiplicity value.
type Infinity struct{}

// Evaluate walks an expression element and returns its results, or nil
// when the expression is not model-level-evaluable. nil is the common,
// expected outcome for expressions that call non-builtin functions or
// whose operands did not resolve; it is not an error. The empty
// non-nil slice is the null value.
//
// target is the contextual element feature references are read against;
// it may be nil when probing whether an expression is evaluable at all.
func Evaluate(expr, target *model.Element) []Value {
	if expr == nil || expr.Expr == nil {
		return nil
	}
	switch {
	case expr.Is(metamodel.KNullExpression):
		return []Value{}
	case expr.Is(metamodel.KLiteralBoolean):
		if lit, ok := expr.Syntax().(*ast.BooleanLiteral); ok {
			return []Value{lit.Value}
		}
	case expr.Is(metamodel.KLiteralInteger):
		if lit, ok := expr.Syntax().(*ast.IntegerLiteral); ok {
			return []Value{lit.Value}
		}
	case expr.Is(metamodel.KLiteralRational):
		if lit, ok := expr.Syntax().(*ast.RationalLiteral); ok {
			return []Value{lit.Value}
		}
	case expr.Is(metamodel.KLiteralString):
		if lit, ok := expr.Syntax().(*ast.StringLiteral); ok {
			return []Value{lit.Value}
		}
	case expr.Is(metamodel.KLiteralInfinity):
		return []Value{Infinity{}}
	case expr.Is(metamodel.KFeatureChainExpression):
		return evalFeatureChain(expr, target)
	case expr.Is(metamodel.KOperatorExpression):
		return evalOperator(expr, target)
	case expr.Is(metamodel.KInvocationExpression):
		return evalInvocation(expr, target)
	case expr.Is(metamodel.KFeatureReferenceExpression):
		return evalFeatureReference(expr, target)
	case expr.Is(metamodel.KMetadataAccessExpression):
		return evalMetadataAccess(expr)
	}
	return nil
}

// CanEvaluate probes whether an expression is model-level-evaluable by
// attempting evaluation against a nil target.
func CanEvaluate(expr *model.Element) bool {
	return Evaluate(expr, nil) != nil
}

// evalFeatureReference yields the referenced element, or its assigned
// value when the reference names a feature carrying one.
func evalFeatureReference(expr, target *model.Element) []Value {
	ref := expr.Expr.Ref
	if ref == nil || ref.Target() == nil {
		return nil
	}
	t := ref.Target()
	if t.Feat != nil {
		if v := t.Feat.Value(); v != nil {
			return Evaluate(v, target)
		}
	}
	return []Value{t}
}

func evalMetadataAccess(expr *model.Element) []Value {
	ref := expr.Expr.Ref
	if ref == nil || ref.Target() == nil {
		return nil
	}
	var out []Value
	for _, m := range ref.Target().AllMetadata() {
		out = append(out, m)
	}
	if out == nil {
		return []Value{}
	}
	return out
}

// evalFeatureChain navigates from the receiver's single element result
// into the named feature, yielding that feature's assigned value.
func evalFeatureChain(expr, target *model.Element) []Value {
	operands := expr.Expr.Operands()
	if len(operands) != 1 {
		return nil
	}
	recv := Evaluate(operands[0], target)
	if len(recv) != 1 {
		return nil
	}
	base, ok := recv[0].(*model.Element)
	if !ok || expr.Expr.Ref == nil || expr.Expr.Ref.Target() == nil {
		return nil
	}
	f := expr.Expr.Ref.Target()
	if f.Feat == nil {
		return nil
	}
	if v := f.Feat.Value(); v != nil {
		return Evaluate(v, base)
	}
	return nil
}

// evalInvocation dispatches by the fully qualified name of the resolved
// function. Unregistered or unresolved functions are simply not
// model-level-evaluable.
func evalInvocation(expr, target *model.Element) []Value {
	ref := expr.Expr.Ref
	if ref == nil || ref.Target() == nil {
		return nil
	}
	fn := builtins[ref.Target().QualifiedName()]
	if fn == nil {
		return nil
	}
	args, ok := evalOperands(expr, target)
	if !ok {
		return nil
	}
	return fn(args)
}

func evalOperands(expr, target *model.Element) ([][]Value, bool) {
	operands := expr.Expr.Operands()
	args := make([][]Value, len(operands))
	for i, op := range operands {
		args[i] = Evaluate(op, target)
		if args[i] == nil {
			return nil, false
		}
	}
	return args, true
}

// evalOperator handles operator expressions. The short-circuiting and
// conditional operators evaluate operands lazily; everything else maps
// through operatorFunctions to the builtin registry.
func evalOperator(expr, target *model.Element) []Value {
	operands := expr.Expr.Operands()
	switch expr.Expr.Operator {
	case "and":
		return evalShortCircuit(operands, target, false)
	case "or":
		return evalShortCircuit(operands, target, true)
	case "implies":
		if len(operands) != 2 {
			return nil
		}
		left, ok := singleBool(Evaluate(operands[0], target))
		if !ok {
			return nil
		}
		if !left {
			return []Value{true}
		}
		right, ok := singleBool(Evaluate(operands[1], target))
		if !ok {
			return nil
		}
		return []Value{right}
	case "if":
		if len(operands) != 3 {
			return nil
		}
		cond, ok := singleBool(Evaluate(operands[0], target))
		if !ok {
			return nil
		}
		if cond {
			return Evaluate(operands[1], target)
		}
		return Evaluate(operands[2], target)
	case "istype", "hastype":
		return evalClassification(expr, target)
	case ",":
		var out []Value
		for _, op := range operands {
			vs := Evaluate(op, target)
			if vs == nil {
				return nil
			}
			out = append(out, vs...)
		}
		if out == nil {
			return []Value{}
		}
		return out
	}

	name := operatorFunctions[expr.Expr.Operator]
	if name == "" {
		return nil
	}
	fn := builtins[name]
	if fn == nil {
		return nil
	}
	args, ok := evalOperands(expr, target)
	if !ok {
		return nil
	}
	return fn(args)
}

// evalShortCircuit implements and/or: when the first operand already
// decides the result the second is never evaluated, so an unevaluable
// right-hand side cannot poison the answer.
func evalShortCircuit(operands []*model.Element, target *model.Element, decides bool) []Value {
	if len(operands) != 2 {
		return nil
	}
	left, ok := singleBool(Evaluate(operands[0], target))
	if !ok {
		return nil
	}
	if left == decides {
		return []Value{decides}
	}
	right, ok := singleBool(Evaluate(operands[1], target))
	if !ok {
		return nil
	}
	return []Value{right}
}

// evalClassification implements the type-test operators. istype matches
// the named type or anything it transitively conforms to; hastype only
// the directly declared typings.
func evalClassification(expr, target *model.Element) []Value {
	ref := expr.Expr.Ref
	if ref == nil || ref.Target() == nil {
		return nil
	}
	t := ref.Target()
	operands := expr.Expr.Operands()
	if len(operands) != 1 {
		return nil
	}
	vs := Evaluate(operands[0], target)
	if len(vs) != 1 {
		return nil
	}
	e, ok := vs[0].(*model.Element)
	if !ok || e.Typ == nil {
		return nil
	}
	specs := e.Typ.Specializations()
	if expr.Expr.Operator == "hastype" {
		for _, direct := range specs.Types(model.EdgeTyping) {
			if direct == t {
				return []Value{true}
			}
		}
		return []Value{false}
	}
	if e == t {
		return []Value{true}
	}
	for _, direct := range specs.Types(model.EdgeTyping) {
		if direct == t {
			return []Value{true}
		}
		if direct.Typ != nil && direct.Typ.Specializations().Conforms(t, model.EdgeSpecialization) {
			return []Value{true}
		}
	}
	return []Value{specs.Conforms(t, model.EdgeSpecialization)}
}

func singleBool(vs []Value) (bool, bool) {
	if len(vs) != 1 {
		return false, false
	}
	b, ok := vs[0].(bool)
	return b, ok
}
