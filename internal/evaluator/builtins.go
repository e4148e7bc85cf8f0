package evaluator

import (
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Builtin is a model-level function implementation. Each argument is
// the fully evaluated result list of one operand; a nil return means
// the call is not evaluable with these arguments.
type Builtin func(args [][]Value) []Value

// builtins maps fully qualified library function names to their
// implementations. Invocations of anything else are not
// model-level-evaluable.
var builtins = map[string]Builtin{
	"DataFunctions::+":  builtinAdd,
	"DataFunctions::-":  builtinSub,
	"DataFunctions::*":  builtinMul,
	"DataFunctions::/":  builtinDiv,
	"DataFunctions::%":  builtinMod,
	"DataFunctions::**": builtinPow,
	"DataFunctions::<":  comparison(func(c int) bool { return c < 0 }),
	"DataFunctions::<=": comparison(func(c int) bool { return c <= 0 }),
	"DataFunctions::>":  comparison(func(c int) bool { return c > 0 }),
	"DataFunctions::>=": comparison(func(c int) bool { return c >= 0 }),

	"BaseFunctions::==": builtinEq,
	"BaseFunctions::!=": builtinNotEq,

	"BooleanFunctions::not": builtinNot,
	"BooleanFunctions::xor": builtinXor,

	"SequenceFunctions::#":        builtinIndex,
	"SequenceFunctions::size":     builtinSize,
	"SequenceFunctions::includes": builtinIncludes,

	"StringFunctions::Length":    builtinStrLength,
	"StringFunctions::Substring": builtinSubstring,
}

// operatorFunctions maps operator symbols to the library function each
// one denotes. Short-circuiting operators are absent: the evaluator
// handles those before operands are evaluated.
var operatorFunctions = map[string]string{
	"+":  "DataFunctions::+",
	"-":  "DataFunctions::-",
	"*":  "DataFunctions::*",
	"/":  "DataFunctions::/",
	"%":  "DataFunctions::%",
	"**": "DataFunctions::**",
	"<":  "DataFunctions::<",
	"<=": "DataFunctions::<=",
	">":  "DataFunctions::>",
	">=": "DataFunctions::>=",
	"==": "BaseFunctions::==",
	"!=": "BaseFunctions::!=",
	"not": "BooleanFunctions::not",
	"xor": "BooleanFunctions::xor",
	"#":   "SequenceFunctions::#",
}

// number is a normalized numeric operand.
type number struct {
	i       int64
	f       float64
	isFloat bool
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func singleNumber(vs []Value) (number, bool) {
	if len(vs) != 1 {
		return number{}, false
	}
	switch v := vs[0].(type) {
	case int64:
		return number{i: v}, true
	case float64:
		return number{f: v, isFloat: true}, true
	}
	return number{}, false
}

func singleString(vs []Value) (string, bool) {
	if len(vs) != 1 {
		return "", false
	}
	s, ok := vs[0].(string)
	return s, ok
}

func singleInt(vs []Value) (int64, bool) {
	if len(vs) != 1 {
		return 0, false
	}
	i, ok := vs[0].(int64)
	return i, ok
}

// builtinAdd is numeric addition or string concatenation, by operand type.
func builtinAdd(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	if ls, ok := singleString(args[0]); ok {
		rs, ok := singleString(args[1])
		if !ok {
			return nil
		}
		return []Value{ls + rs}
	}
	return arith(args, func(a, b int64) (int64, bool) { return a + b, true },
		func(a, b float64) (float64, bool) { return a + b, true })
}

func builtinSub(args [][]Value) []Value {
	// Unary negation shares the '-' symbol.
	if len(args) == 1 {
		n, ok := singleNumber(args[0])
		if !ok {
			return nil
		}
		if n.isFloat {
			return []Value{-n.f}
		}
		return []Value{-n.i}
	}
	return arith(args, func(a, b int64) (int64, bool) { return a - b, true },
		func(a, b float64) (float64, bool) { return a - b, true })
}

func builtinMul(args [][]Value) []Value {
	return arith(args, func(a, b int64) (int64, bool) { return a * b, true },
		func(a, b float64) (float64, bool) { return a * b, true })
}

// builtinDiv: division by zero is not evaluable, integer or rational.
func builtinDiv(args [][]Value) []Value {
	return arith(args,
		func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		},
		func(a, b float64) (float64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})
}

// builtinMod: remainder is integer-only; remainder by zero is not evaluable.
func builtinMod(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	a, aok := singleInt(args[0])
	b, bok := singleInt(args[1])
	if !aok || !bok || b == 0 {
		return nil
	}
	return []Value{a % b}
}

func builtinPow(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	a, aok := singleNumber(args[0])
	b, bok := singleNumber(args[1])
	if !aok || !bok {
		return nil
	}
	if !a.isFloat && !b.isFloat && b.i >= 0 {
		result := int64(1)
		for n := int64(0); n < b.i; n++ {
			result *= a.i
		}
		return []Value{result}
	}
	return []Value{math.Pow(a.float(), b.float())}
}

func arith(args [][]Value, ints func(a, b int64) (int64, bool), floats func(a, b float64) (float64, bool)) []Value {
	if len(args) != 2 {
		return nil
	}
	a, aok := singleNumber(args[0])
	b, bok := singleNumber(args[1])
	if !aok || !bok {
		return nil
	}
	if a.isFloat || b.isFloat {
		r, ok := floats(a.float(), b.float())
		if !ok {
			return nil
		}
		return []Value{r}
	}
	r, ok := ints(a.i, b.i)
	if !ok {
		return nil
	}
	return []Value{r}
}

// stringCollator orders strings by collation weight, not byte order.
// Evaluation is single-threaded, so the collator's scratch buffers are
// never shared.
var stringCollator = collate.New(language.Und)

// comparison orders two numbers or two strings; mixed or non-ordered
// operands are not evaluable.
func comparison(accept func(int) bool) Builtin {
	return func(args [][]Value) []Value {
		if len(args) != 2 {
			return nil
		}
		if ls, ok := singleString(args[0]); ok {
			rs, ok := singleString(args[1])
			if !ok {
				return nil
			}
			return []Value{accept(stringCollator.CompareString(ls, rs))}
		}
		a, aok := singleNumber(args[0])
		b, bok := singleNumber(args[1])
		if !aok || !bok {
			return nil
		}
		switch af, bf := a.float(), b.float(); {
		case af < bf:
			return []Value{accept(-1)}
		case af > bf:
			return []Value{accept(1)}
		default:
			return []Value{accept(0)}
		}
	}
}

func builtinEq(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	return []Value{valuesEqual(args[0], args[1])}
}

func builtinNotEq(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	return []Value{!valuesEqual(args[0], args[1])}
}

// valuesEqual compares result lists element-wise; numbers compare by
// value across the int/rational divide.
func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		an, aIsNum := singleNumber(a[i : i+1])
		bn, bIsNum := singleNumber(b[i : i+1])
		if aIsNum || bIsNum {
			if !aIsNum || !bIsNum || an.float() != bn.float() {
				return false
			}
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func builtinNot(args [][]Value) []Value {
	if len(args) != 1 {
		return nil
	}
	b, ok := singleBool(args[0])
	if !ok {
		return nil
	}
	return []Value{!b}
}

func builtinXor(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	a, aok := singleBool(args[0])
	b, bok := singleBool(args[1])
	if !aok || !bok {
		return nil
	}
	return []Value{a != b}
}

// builtinIndex is 1-based sequence indexing; out-of-range is not evaluable.
func builtinIndex(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	seq := args[0]
	idx, ok := singleInt(args[1])
	if !ok || idx < 1 || idx > int64(len(seq)) {
		return nil
	}
	return []Value{seq[idx-1]}
}

func builtinSize(args [][]Value) []Value {
	if len(args) != 1 {
		return nil
	}
	return []Value{int64(len(args[0]))}
}

func builtinIncludes(args [][]Value) []Value {
	if len(args) != 2 {
		return nil
	}
	if len(args[1]) != 1 {
		return nil
	}
	for _, v := range args[0] {
		if valuesEqual([]Value{v}, args[1]) {
			return []Value{true}
		}
	}
	return []Value{false}
}

func builtinStrLength(args [][]Value) []Value {
	if len(args) != 1 {
		return nil
	}
	s, ok := singleString(args[0])
	if !ok {
		return nil
	}
	return []Value{int64(len([]rune(s)))}
}

// builtinSubstring extracts s[lo..hi], 1-based and inclusive at both ends.
func builtinSubstring(args [][]Value) []Value {
	if len(args) != 3 {
		return nil
	}
	s, sok := singleString(args[0])
	lo, lok := singleInt(args[1])
	hi, hok := singleInt(args[2])
	if !sok || !lok || !hok {
		return nil
	}
	runes := []rune(s)
	if lo < 1 || hi < lo || hi > int64(len(runes)) {
		return nil
	}
	return []Value{string(runes[lo-1 : hi])}
}
