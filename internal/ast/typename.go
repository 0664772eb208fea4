package ast

import "github.com/topsmart20/solidity/internal/source"

// TypeNameKind enumerates the syntactic forms a type name can take (§3.1).
type TypeNameKind uint8

const (
	TypeNameElementary TypeNameKind = iota
	TypeNameUserDefined
	TypeNameMapping
	TypeNameArray
)

// ElementaryToken names one of the keyword-derived elementary types. The
// numeric layout mirrors the upstream lexer's token range exactly: a
// contiguous block [TokIntFirst, TokHash256] encodes (signedness/hash,
// width) via a compact offset (§4.1), with Address and Bool as standalone
// tokens outside that range.
type ElementaryToken uint16

const (
	// TokIntFirst is the first token in the signed/unsigned/hash width
	// block. Offsets are laid out as 5 widths (offset%5 of 0 is 256 bits,
	// 1..4 are 32, 64, 128, 256 bits) times 3 modifiers (signed, unsigned,
	// hash), matching the
	// original compiler's Token::INT..Token::HASH256 range.
	TokIntFirst  ElementaryToken = 0
	tokWidths                    = 5
	tokModifiers                 = 3
	// TokHash256 is the last token in that block: offset 14 (modifier 2,
	// bits offset 4 -> 256-bit hash).
	TokHash256 ElementaryToken = TokIntFirst + tokWidths*tokModifiers - 1
	TokAddress ElementaryToken = TokHash256 + 1
	TokBool    ElementaryToken = TokHash256 + 2
)

// AddressBits is the fixed width of the address modifier (§3.2), regardless
// of how many bits the spelling implies.
const AddressBits = 160

// TypeName is a type-name AST node as written by the programmer (not yet a
// resolved Type). Only one of the kind-specific payload groups below is
// meaningful, selected by Kind.
type TypeName struct {
	Kind TypeNameKind
	Span source.Span

	// TypeNameElementary
	Token ElementaryToken

	// TypeNameUserDefined
	Path     []source.StringID
	PathSpan []source.Span

	// TypeNameMapping
	KeyType   TypeNameID
	ValueType TypeNameID

	// TypeNameArray
	BaseType TypeNameID
	// Length is NoExprID for a dynamic array ("T[]").
	Length ExprID
}
