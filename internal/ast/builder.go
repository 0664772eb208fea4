package ast

import "github.com/topsmart20/solidity/internal/source"

// Builder aggregates every arena the AST needs and provides the
// construction API the (out-of-scope) parser, and this repository's tests,
// build trees through. It owns no behavior beyond bookkeeping: resolution,
// linearization, and type checking all live downstream in internal/symbols
// and internal/sema.
type Builder struct {
	Strings *source.Interner

	Decls       *Arena[Decl]
	SourceUnits *Arena[SourceUnitDecl]
	Contracts   *Arena[ContractDecl]
	Structs     *Arena[StructDecl]
	Enums       *Arena[EnumDecl]
	EnumValues  *Arena[EnumValueDecl]
	Functions   *Arena[FunctionDecl]
	Modifiers   *Arena[ModifierDecl]
	Events      *Arena[EventDecl]
	Vars        *Arena[VariableDecl]

	TypeNames *Arena[TypeName]
	Stmts     *Arena[Stmt]
	Exprs     *Arena[Expr]

	literals    *Arena[LiteralExpr]
	idents      *Arena[IdentifierExpr]
	elemTypeExp *Arena[ElementaryTypeNameExprNode]
	members     *Arena[MemberAccessExpr]
	indexes     *Arena[IndexAccessExpr]
	calls       *Arena[CallExpr]
	news        *Arena[NewExpr]
	unaries     *Arena[UnaryExpr]
	binaries    *Arena[BinaryExpr]

	blocks       *Arena[BlockStmt]
	ifs          *Arena[IfStmt]
	whiles       *Arena[WhileStmt]
	fors         *Arena[ForStmt]
	returns      *Arena[ReturnStmt]
	varDeclStmts *Arena[VarDeclStmt]
	exprStmts    *Arena[ExprStmt]
}

// NewBuilder creates an empty Builder. If strings is nil a fresh interner
// is allocated.
func NewBuilder(strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Strings: strings,

		Decls:       NewArena[Decl](64),
		SourceUnits: NewArena[SourceUnitDecl](1),
		Contracts:   NewArena[ContractDecl](8),
		Structs:     NewArena[StructDecl](8),
		Enums:       NewArena[EnumDecl](8),
		EnumValues:  NewArena[EnumValueDecl](16),
		Functions:   NewArena[FunctionDecl](32),
		Modifiers:   NewArena[ModifierDecl](8),
		Events:      NewArena[EventDecl](8),
		Vars:        NewArena[VariableDecl](64),

		TypeNames: NewArena[TypeName](64),
		Stmts:     NewArena[Stmt](64),
		Exprs:     NewArena[Expr](64),

		literals:    NewArena[LiteralExpr](16),
		idents:      NewArena[IdentifierExpr](32),
		elemTypeExp: NewArena[ElementaryTypeNameExprNode](4),
		members:     NewArena[MemberAccessExpr](16),
		indexes:     NewArena[IndexAccessExpr](16),
		calls:       NewArena[CallExpr](16),
		news:        NewArena[NewExpr](4),
		unaries:     NewArena[UnaryExpr](16),
		binaries:    NewArena[BinaryExpr](32),

		blocks:       NewArena[BlockStmt](16),
		ifs:          NewArena[IfStmt](8),
		whiles:       NewArena[WhileStmt](4),
		fors:         NewArena[ForStmt](4),
		returns:      NewArena[ReturnStmt](16),
		varDeclStmts: NewArena[VarDeclStmt](16),
		exprStmts:    NewArena[ExprStmt](32),
	}
}

// --- Declarations -----------------------------------------------------

func (b *Builder) newDecl(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(b.Decls.Allocate(Decl{Kind: kind, Span: span, Payload: payload}))
}

// Decl returns the generic handle for id, or nil if invalid.
func (b *Builder) Decl(id DeclID) *Decl { return b.Decls.Get(uint32(id)) }

// SourceUnit returns the SourceUnitDecl payload for id.
func (b *Builder) SourceUnit(id DeclID) *SourceUnitDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclSourceUnit {
		return nil
	}
	return b.SourceUnits.Get(d.Payload)
}

// NewSourceUnit allocates a SourceUnit declaration.
func (b *Builder) NewSourceUnit(span source.Span, unit SourceUnitDecl) DeclID {
	payload := b.SourceUnits.Allocate(unit)
	return b.newDecl(DeclSourceUnit, span, payload)
}

// Contract returns the ContractDecl payload for id.
func (b *Builder) Contract(id DeclID) *ContractDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclContract {
		return nil
	}
	return b.Contracts.Get(d.Payload)
}

// NewContract allocates a Contract declaration.
func (b *Builder) NewContract(span source.Span, c ContractDecl) DeclID {
	payload := b.Contracts.Allocate(c)
	return b.newDecl(DeclContract, span, payload)
}

// Struct returns the StructDecl payload for id.
func (b *Builder) Struct(id DeclID) *StructDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclStruct {
		return nil
	}
	return b.Structs.Get(d.Payload)
}

// NewStruct allocates a Struct declaration.
func (b *Builder) NewStruct(span source.Span, s StructDecl) DeclID {
	payload := b.Structs.Allocate(s)
	return b.newDecl(DeclStruct, span, payload)
}

// Enum returns the EnumDecl payload for id.
func (b *Builder) Enum(id DeclID) *EnumDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclEnum {
		return nil
	}
	return b.Enums.Get(d.Payload)
}

// NewEnum allocates an Enum declaration.
func (b *Builder) NewEnum(span source.Span, e EnumDecl) DeclID {
	payload := b.Enums.Allocate(e)
	return b.newDecl(DeclEnum, span, payload)
}

// EnumValue returns the EnumValueDecl payload for id.
func (b *Builder) EnumValue(id DeclID) *EnumValueDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclEnumValue {
		return nil
	}
	return b.EnumValues.Get(d.Payload)
}

// NewEnumValue allocates an EnumValue declaration.
func (b *Builder) NewEnumValue(span source.Span, v EnumValueDecl) DeclID {
	payload := b.EnumValues.Allocate(v)
	return b.newDecl(DeclEnumValue, span, payload)
}

// Function returns the FunctionDecl payload for id.
func (b *Builder) Function(id DeclID) *FunctionDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclFunction {
		return nil
	}
	return b.Functions.Get(d.Payload)
}

// NewFunction allocates a Function declaration.
func (b *Builder) NewFunction(span source.Span, f FunctionDecl) DeclID {
	payload := b.Functions.Allocate(f)
	return b.newDecl(DeclFunction, span, payload)
}

// Modifier returns the ModifierDecl payload for id.
func (b *Builder) Modifier(id DeclID) *ModifierDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclModifier {
		return nil
	}
	return b.Modifiers.Get(d.Payload)
}

// NewModifier allocates a Modifier declaration.
func (b *Builder) NewModifier(span source.Span, m ModifierDecl) DeclID {
	payload := b.Modifiers.Allocate(m)
	return b.newDecl(DeclModifier, span, payload)
}

// Event returns the EventDecl payload for id.
func (b *Builder) Event(id DeclID) *EventDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclEvent {
		return nil
	}
	return b.Events.Get(d.Payload)
}

// NewEvent allocates an Event declaration.
func (b *Builder) NewEvent(span source.Span, e EventDecl) DeclID {
	payload := b.Events.Allocate(e)
	return b.newDecl(DeclEvent, span, payload)
}

// Var returns the VariableDecl payload for id.
func (b *Builder) Var(id DeclID) *VariableDecl {
	d := b.Decl(id)
	if d == nil || d.Kind != DeclVariable {
		return nil
	}
	return b.Vars.Get(d.Payload)
}

// NewVar allocates a VariableDeclaration.
func (b *Builder) NewVar(span source.Span, v VariableDecl) DeclID {
	payload := b.Vars.Allocate(v)
	return b.newDecl(DeclVariable, span, payload)
}

// --- Type names --------------------------------------------------------

// NewTypeName allocates a type-name node.
func (b *Builder) NewTypeName(t TypeName) TypeNameID {
	return TypeNameID(b.TypeNames.Allocate(t))
}

// TypeName returns the node for id.
func (b *Builder) TypeNameNode(id TypeNameID) *TypeName { return b.TypeNames.Get(uint32(id)) }

// --- Statements ---------------------------------------------------------

func (b *Builder) newStmt(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(b.Stmts.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

// StmtNode returns the generic handle for id.
func (b *Builder) StmtNode(id StmtID) *Stmt { return b.Stmts.Get(uint32(id)) }

// Block returns the BlockStmt payload for id.
func (b *Builder) Block(id StmtID) *BlockStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtBlock {
		return nil
	}
	return b.blocks.Get(s.Payload)
}

// NewBlock allocates a block statement.
func (b *Builder) NewBlock(span source.Span, v BlockStmt) StmtID {
	return b.newStmt(StmtBlock, span, b.blocks.Allocate(v))
}

// If returns the IfStmt payload for id.
func (b *Builder) If(id StmtID) *IfStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtIf {
		return nil
	}
	return b.ifs.Get(s.Payload)
}

// NewIf allocates an if statement.
func (b *Builder) NewIf(span source.Span, v IfStmt) StmtID {
	return b.newStmt(StmtIf, span, b.ifs.Allocate(v))
}

// While returns the WhileStmt payload for id.
func (b *Builder) While(id StmtID) *WhileStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtWhile {
		return nil
	}
	return b.whiles.Get(s.Payload)
}

// NewWhile allocates a while statement.
func (b *Builder) NewWhile(span source.Span, v WhileStmt) StmtID {
	return b.newStmt(StmtWhile, span, b.whiles.Allocate(v))
}

// For returns the ForStmt payload for id.
func (b *Builder) For(id StmtID) *ForStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtFor {
		return nil
	}
	return b.fors.Get(s.Payload)
}

// NewFor allocates a for statement.
func (b *Builder) NewFor(span source.Span, v ForStmt) StmtID {
	return b.newStmt(StmtFor, span, b.fors.Allocate(v))
}

// Return returns the ReturnStmt payload for id.
func (b *Builder) Return(id StmtID) *ReturnStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtReturn {
		return nil
	}
	return b.returns.Get(s.Payload)
}

// NewReturn allocates a return statement.
func (b *Builder) NewReturn(span source.Span, v ReturnStmt) StmtID {
	return b.newStmt(StmtReturn, span, b.returns.Allocate(v))
}

// VarDeclStmtNode returns the VarDeclStmt payload for id.
func (b *Builder) VarDeclStmtNode(id StmtID) *VarDeclStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtVarDecl {
		return nil
	}
	return b.varDeclStmts.Get(s.Payload)
}

// NewVarDeclStmt allocates a variable-declaration statement.
func (b *Builder) NewVarDeclStmt(span source.Span, v VarDeclStmt) StmtID {
	return b.newStmt(StmtVarDecl, span, b.varDeclStmts.Allocate(v))
}

// ExprStmtNode returns the ExprStmt payload for id.
func (b *Builder) ExprStmtNode(id StmtID) *ExprStmt {
	s := b.StmtNode(id)
	if s == nil || s.Kind != StmtExpr {
		return nil
	}
	return b.exprStmts.Get(s.Payload)
}

// NewExprStmt allocates an expression statement.
func (b *Builder) NewExprStmt(span source.Span, v ExprStmt) StmtID {
	return b.newStmt(StmtExpr, span, b.exprStmts.Allocate(v))
}

// NewPlaceholder allocates a placeholder ("_") statement.
func (b *Builder) NewPlaceholder(span source.Span) StmtID {
	return b.newStmt(StmtPlaceholder, span, 0)
}

// --- Expressions ---------------------------------------------------------

func (b *Builder) newExpr(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(b.Exprs.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// ExprNode returns the generic handle for id.
func (b *Builder) ExprNode(id ExprID) *Expr { return b.Exprs.Get(uint32(id)) }

// Literal returns the LiteralExpr payload for id.
func (b *Builder) Literal(id ExprID) *LiteralExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprLiteral {
		return nil
	}
	return b.literals.Get(e.Payload)
}

// NewLiteral allocates a literal expression.
func (b *Builder) NewLiteral(span source.Span, v LiteralExpr) ExprID {
	return b.newExpr(ExprLiteral, span, b.literals.Allocate(v))
}

// Identifier returns the IdentifierExpr payload for id.
func (b *Builder) Identifier(id ExprID) *IdentifierExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprIdentifier {
		return nil
	}
	return b.idents.Get(e.Payload)
}

// NewIdentifier allocates an identifier expression.
func (b *Builder) NewIdentifier(span source.Span, v IdentifierExpr) ExprID {
	return b.newExpr(ExprIdentifier, span, b.idents.Allocate(v))
}

// ElementaryTypeNameExpr returns the payload for id.
func (b *Builder) ElementaryTypeNameExpr(id ExprID) *ElementaryTypeNameExprNode {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprElementaryTypeNameExpr {
		return nil
	}
	return b.elemTypeExp.Get(e.Payload)
}

// NewElementaryTypeNameExpr allocates an elementary-type-name-as-expression node.
func (b *Builder) NewElementaryTypeNameExpr(span source.Span, v ElementaryTypeNameExprNode) ExprID {
	return b.newExpr(ExprElementaryTypeNameExpr, span, b.elemTypeExp.Allocate(v))
}

// MemberAccess returns the MemberAccessExpr payload for id.
func (b *Builder) MemberAccess(id ExprID) *MemberAccessExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprMemberAccess {
		return nil
	}
	return b.members.Get(e.Payload)
}

// NewMemberAccess allocates a member-access expression.
func (b *Builder) NewMemberAccess(span source.Span, v MemberAccessExpr) ExprID {
	return b.newExpr(ExprMemberAccess, span, b.members.Allocate(v))
}

// IndexAccess returns the IndexAccessExpr payload for id.
func (b *Builder) IndexAccess(id ExprID) *IndexAccessExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprIndexAccess {
		return nil
	}
	return b.indexes.Get(e.Payload)
}

// NewIndexAccess allocates an index-access expression.
func (b *Builder) NewIndexAccess(span source.Span, v IndexAccessExpr) ExprID {
	return b.newExpr(ExprIndexAccess, span, b.indexes.Allocate(v))
}

// Call returns the CallExpr payload for id.
func (b *Builder) Call(id ExprID) *CallExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprCall {
		return nil
	}
	return b.calls.Get(e.Payload)
}

// NewCall allocates a function-call expression.
func (b *Builder) NewCall(span source.Span, v CallExpr) ExprID {
	return b.newExpr(ExprCall, span, b.calls.Allocate(v))
}

// New returns the NewExpr payload for id.
func (b *Builder) New(id ExprID) *NewExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprNew {
		return nil
	}
	return b.news.Get(e.Payload)
}

// NewNewExpr allocates a "new ContractName" expression.
func (b *Builder) NewNewExpr(span source.Span, v NewExpr) ExprID {
	return b.newExpr(ExprNew, span, b.news.Allocate(v))
}

// Unary returns the UnaryExpr payload for id.
func (b *Builder) Unary(id ExprID) *UnaryExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprUnary {
		return nil
	}
	return b.unaries.Get(e.Payload)
}

// NewUnary allocates a unary-operation expression.
func (b *Builder) NewUnary(span source.Span, v UnaryExpr) ExprID {
	return b.newExpr(ExprUnary, span, b.unaries.Allocate(v))
}

// Binary returns the BinaryExpr payload for id.
func (b *Builder) Binary(id ExprID) *BinaryExpr {
	e := b.ExprNode(id)
	if e == nil || e.Kind != ExprBinary {
		return nil
	}
	return b.binaries.Get(e.Payload)
}

// NewBinary allocates a binary-operation expression (this also covers
// assignment and compound assignment, see ExprBinaryOp.IsAssignment).
func (b *Builder) NewBinary(span source.Span, v BinaryExpr) ExprID {
	return b.newExpr(ExprBinary, span, b.binaries.Allocate(v))
}
