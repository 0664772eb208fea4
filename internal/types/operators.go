package types

import "github.com/topsmart20/solidity/internal/ast"

// BinaryResult describes how the checker derives a binary expression's
// result type once operand-acceptance succeeds (§4.5.4).
type BinaryResult uint8

const (
	BinaryResultUnknown    BinaryResult = iota
	BinaryResultCommonType              // the two operands' common (lowest) type
	BinaryResultLeft                    // assignment: the type of the left operand
	BinaryResultBool                    // comparisons and logical operators
)

// BinarySpec lists which Kinds an operator accepts and how its result is
// derived.
type BinarySpec struct {
	Kinds  []Kind
	Result BinaryResult
	// RequiresIntegral marks Exp/shift/mod, which are Integer-only despite
	// sharing a result-derivation rule with Add/Sub; their Kinds lists
	// already leave FixedBytes/Contract/Enum out, and AcceptsBinaryOperator
	// does not read this field. The bitwise and/or/xor operators leave it
	// false and accept FixedBytes.
	RequiresIntegral bool
	// IsComparison marks the handful of operators an address operand is
	// still allowed to use (§4.5.4, mirroring IntegerType::
	// acceptsBinaryOperator's "isAddress() => Token::isCompareOp()"
	// branch): every other operator rejects an address operand outright.
	IsComparison bool
}

var binarySpecTable = map[ast.ExprBinaryOp]BinarySpec{
	ast.ExprBinaryAdd: {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultCommonType},
	ast.ExprBinarySub: {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultCommonType},
	ast.ExprBinaryMul: {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultCommonType},
	ast.ExprBinaryDiv: {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultCommonType},
	ast.ExprBinaryMod: {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultCommonType, RequiresIntegral: true},
	ast.ExprBinaryExp: {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultCommonType, RequiresIntegral: true},

	ast.ExprBinaryBitAnd: {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultCommonType, RequiresIntegral: false},
	ast.ExprBinaryBitOr:  {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultCommonType},
	ast.ExprBinaryBitXor: {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultCommonType},
	ast.ExprBinaryShl:    {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultLeft, RequiresIntegral: true},
	ast.ExprBinaryShr:    {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: BinaryResultLeft, RequiresIntegral: true},

	ast.ExprBinaryLogicalAnd: {Kinds: []Kind{KindBool}, Result: BinaryResultBool},
	ast.ExprBinaryLogicalOr:  {Kinds: []Kind{KindBool}, Result: BinaryResultBool},

	ast.ExprBinaryEq:        {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes, KindBool, KindContract, KindEnum}, Result: BinaryResultBool, IsComparison: true},
	ast.ExprBinaryNotEq:     {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes, KindBool, KindContract, KindEnum}, Result: BinaryResultBool, IsComparison: true},
	ast.ExprBinaryLess:      {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultBool, IsComparison: true},
	ast.ExprBinaryLessEq:    {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultBool, IsComparison: true},
	ast.ExprBinaryGreater:   {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultBool, IsComparison: true},
	ast.ExprBinaryGreaterEq: {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: BinaryResultBool, IsComparison: true},

	ast.ExprBinaryAssign: {Result: BinaryResultLeft},
}

func init() {
	for _, op := range []ast.ExprBinaryOp{
		ast.ExprBinaryAddAssign, ast.ExprBinarySubAssign, ast.ExprBinaryMulAssign,
		ast.ExprBinaryDivAssign, ast.ExprBinaryModAssign,
		ast.ExprBinaryBitAndAssign, ast.ExprBinaryBitOrAssign, ast.ExprBinaryBitXorAssign,
		ast.ExprBinaryShlAssign, ast.ExprBinaryShrAssign,
	} {
		plain := binarySpecTable[op.Desugar()]
		plain.Result = BinaryResultLeft
		binarySpecTable[op] = plain
	}
}

// BinarySpecFor returns the operand/result rule for op.
func BinarySpecFor(op ast.ExprBinaryOp) (BinarySpec, bool) {
	spec, ok := binarySpecTable[op]
	return spec, ok
}

// UnaryResult indicates how the checker derives a unary expression's
// result type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for a unary operator.
type UnarySpec struct {
	Kinds          []Kind
	Result         UnaryResult
	RequiresLValue bool
	// ExcludesAddress rejects an address operand even though its Kind
	// (Integer) is otherwise listed in Kinds (§4.5.4, mirroring
	// IntegerType::acceptsUnaryOperator's isAddress() branch — address
	// accepts no bitwise or arithmetic unary operator, only delete).
	ExcludesAddress bool
}

var unarySpecTable = map[ast.ExprUnaryOp]UnarySpec{
	ast.ExprUnaryPlus:   {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: UnaryResultSame, ExcludesAddress: true},
	ast.ExprUnaryMinus:  {Kinds: []Kind{KindInteger, KindIntegerConstant}, Result: UnaryResultSame, ExcludesAddress: true},
	ast.ExprUnaryNot:    {Kinds: []Kind{KindBool}, Result: UnaryResultBool},
	ast.ExprUnaryBitNot: {Kinds: []Kind{KindInteger, KindIntegerConstant, KindFixedBytes}, Result: UnaryResultSame, ExcludesAddress: true},
	ast.ExprUnaryInc:    {Kinds: []Kind{KindInteger}, Result: UnaryResultSame, RequiresLValue: true, ExcludesAddress: true},
	ast.ExprUnaryDec:    {Kinds: []Kind{KindInteger}, Result: UnaryResultSame, RequiresLValue: true, ExcludesAddress: true},
	ast.ExprUnaryDelete: {RequiresLValue: true},
}

// UnarySpecFor returns the operand/result rule for op.
func UnarySpecFor(op ast.ExprUnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// AcceptsBinaryOperator reports whether t may appear as an operand of
// op, the per-Type predicate §4.5.4 names directly (supplementing the
// table above, which additionally needs the *other* operand to decide
// RequiresIntegral/acceptance for mixed Integer/IntegerConstant/
// FixedBytes cases). An address operand is restricted to comparison
// operators regardless of what the Kinds list otherwise allows for
// Integer (spec.md "no bit ops on address"; Types.cpp's
// IntegerType::acceptsBinaryOperator has the same isAddress carve-out).
func (t Type) AcceptsBinaryOperator(spec BinarySpec) bool {
	if t.IsAddress {
		return spec.IsComparison
	}
	if len(spec.Kinds) == 0 {
		return true
	}
	for _, candidate := range spec.Kinds {
		if candidate == t.Kind {
			return true
		}
	}
	return false
}

// AcceptsUnaryOperator reports whether t may appear as the operand of
// op, with the same address carve-out as AcceptsBinaryOperator.
func (t Type) AcceptsUnaryOperator(spec UnarySpec) bool {
	if t.IsAddress && spec.ExcludesAddress {
		return false
	}
	if len(spec.Kinds) == 0 {
		return true
	}
	for _, candidate := range spec.Kinds {
		if candidate == t.Kind {
			return true
		}
	}
	return false
}
