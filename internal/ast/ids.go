package ast

// DeclID identifies any declaration node (SourceUnit, Contract, Struct,
// Enum, EnumValue, Function, Modifier, Event, VariableDeclaration) in the
// shared declaration arena. It is an index, not a pointer, per the core's
// arena-and-stable-index discipline: the AST is read-mostly and owned by the
// caller, so nothing here may hold a native pointer into it.
type DeclID uint32

// TypeNameID identifies a type-name node (elementary, user-defined,
// mapping, array).
type TypeNameID uint32

// StmtID identifies a statement node.
type StmtID uint32

// ExprID identifies an expression node.
type ExprID uint32

const (
	NoDeclID     DeclID     = 0
	NoTypeNameID TypeNameID = 0
	NoStmtID     StmtID     = 0
	NoExprID     ExprID     = 0
)

func (id DeclID) IsValid() bool     { return id != NoDeclID }
func (id TypeNameID) IsValid() bool { return id != NoTypeNameID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
