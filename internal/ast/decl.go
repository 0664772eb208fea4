package ast

import "github.com/topsmart20/solidity/internal/source"

// DeclKind tags which declaration-specific arena a Decl's Payload indexes
// into (§3.1 "Declarations").
type DeclKind uint8

const (
	DeclSourceUnit DeclKind = iota
	DeclContract
	DeclStruct
	DeclEnum
	DeclEnumValue
	DeclFunction
	DeclModifier
	DeclEvent
	DeclVariable
)

func (k DeclKind) String() string {
	switch k {
	case DeclSourceUnit:
		return "SourceUnit"
	case DeclContract:
		return "Contract"
	case DeclStruct:
		return "Struct"
	case DeclEnum:
		return "Enum"
	case DeclEnumValue:
		return "EnumValue"
	case DeclFunction:
		return "Function"
	case DeclModifier:
		return "Modifier"
	case DeclEvent:
		return "Event"
	case DeclVariable:
		return "VariableDeclaration"
	default:
		return "UnknownDecl"
	}
}

// Decl is the generic handle every DeclID resolves to; Payload indexes the
// kind-specific arena holding the real fields.
type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload uint32
}

// SourceUnitDecl is the root declaration of a parsed file.
type SourceUnitDecl struct {
	Contracts []DeclID
}

// BaseSpecifier is one entry in a contract's "is A, B(args), ..." clause.
type BaseSpecifier struct {
	Path     []source.StringID
	PathSpan []source.Span
	Span     source.Span
	Args     []ExprID
	// Resolved is filled by the reference resolver (§4.3 step 1).
	Resolved DeclID
}

// ContractDecl models a Contract declaration, including the annotations the
// pipeline fills in as it progresses (§3.1 "Annotations on a Contract").
type ContractDecl struct {
	Name      source.StringID
	NameSpan  source.Span
	IsLibrary bool

	Bases     []BaseSpecifier
	Structs   []DeclID
	Enums     []DeclID
	StateVars []DeclID
	Events    []DeclID
	Modifiers []DeclID
	Functions []DeclID

	// Annotations, write-once per pass.
	LinearizedBaseContracts []DeclID // derived-first, root-last; filled by §4.4
	ContractDependencies    []DeclID // transitive bases except self
	IsFullyImplemented      bool
	CanonicalName           string
}

// StructDecl models a Struct declaration.
type StructDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Members  []DeclID // VariableDecl

	CanonicalName string
}

// EnumDecl models an Enum declaration.
type EnumDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Values   []DeclID // EnumValueDecl

	CanonicalName string
}

// EnumValueDecl models a single member of an enum.
type EnumValueDecl struct {
	Name     source.StringID
	NameSpan source.Span
}

// ModifierInvocation is a modifier application on a function, or a
// base-constructor argument list supplied at the function-declaration site
// rather than in the inheritance specifier (§4.5.1 "Abstract constructors").
type ModifierInvocation struct {
	Path     []source.StringID
	PathSpan []source.Span
	Span     source.Span
	Args     []ExprID
	Resolved DeclID // the Modifier or base-Contract this invokes
}

// FunctionDecl models a Function declaration. Name is empty for the
// fallback function.
type FunctionDecl struct {
	Name       source.StringID
	NameSpan   source.Span
	Visibility Visibility

	// IsConstant marks a function declared not to modify state (the
	// original's "constant"/isDeclaredConst() function qualifier). An
	// override must agree with its base on this exactly as it must on
	// visibility (§4.5.1 "visibility, constness, and full function type
	// must match").
	IsConstant bool

	Params    []DeclID // VariableDecl
	Returns   []DeclID // VariableDecl
	Modifiers []ModifierInvocation

	// Body is NoStmtID for an unimplemented (abstract) function.
	Body StmtID
}

// ModifierDecl models a Modifier declaration.
type ModifierDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []DeclID // VariableDecl
	Body     StmtID
}

// EventDecl models an Event declaration.
type EventDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []DeclID // VariableDecl, each may set IsIndexed
}

// VariableDecl models a Parameter, a state variable, a local variable, or
// an event/struct member, all of which share the same shape in this
// language (§3.1).
type VariableDecl struct {
	Name       source.StringID
	NameSpan   source.Span
	Visibility Visibility

	// TypeName is NoTypeNameID when the declaration omits an explicit type
	// and must infer one from Value's mobile type (§4.5.2).
	TypeName TypeNameID
	Location DataLocation

	IsConstant      bool
	IsIndexed       bool
	IsStateVariable bool

	// Value is the initializer, NoExprID if absent.
	Value ExprID
}
