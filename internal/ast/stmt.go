package ast

import "github.com/topsmart20/solidity/internal/source"

// StmtKind enumerates the statement forms in §3.1.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
	StmtVarDecl
	StmtExpr
	StmtPlaceholder
)

// Stmt is the generic handle every StmtID resolves to.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload uint32
}

// BlockStmt is an ordered sequence of statements; it is its own scope.
type BlockStmt struct {
	Statements []StmtID
}

// IfStmt; Else is NoStmtID when absent.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// WhileStmt.
type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

// ForStmt; any of Init/Cond/Post may be absent (NoStmtID/NoExprID).
type ForStmt struct {
	Init StmtID
	Cond ExprID
	Post StmtID
	Body StmtID
}

// ReturnStmt; Value is NoExprID for a bare "return;".
type ReturnStmt struct {
	Value ExprID
}

// VarDeclStmt declares one or more local variables, optionally with a
// shared initializer (e.g. "var (a, b) = f();").
type VarDeclStmt struct {
	Decls []DeclID // VariableDecl
}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	Value ExprID
}

// PlaceholderStmt is the "_" a modifier body splices the wrapped function
// body into; it carries no payload.
type PlaceholderStmt struct{}
