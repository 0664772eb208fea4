package sema

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/types"
)

// isConstructor reports whether fd is contract's constructor: this
// language names a constructor after its enclosing contract rather than
// with a dedicated keyword (§4.5.1).
func isConstructor(fd *ast.FunctionDecl, cd *ast.ContractDecl) bool {
	return fd.Name != 0 && fd.Name == cd.Name
}

// CheckContract runs every contract-level well-formedness rule (§4.5.1),
// then recurses into each of the contract's own state variables, events,
// modifiers, and functions (§4.5.2-§4.5.5). Struct declarations are not
// checked here: neither their member types nor recursion between structs
// is validated. It assumes the contract's
// bases are already linearized and its modifier invocations already
// resolved (Check arranges that ordering).
func (c *Checker) CheckContract(contract ast.DeclID) bool {
	cd := c.Builder.Contract(contract)
	if cd == nil {
		return true
	}
	ok := true

	lin := c.Linearizer.Linearize(contract)
	if c.Linearizer.Failed(contract) {
		// §4.4: an impossible linearization is fatal. lin's fallback
		// order exists only so other contracts' lookups into this one
		// don't panic; none of this contract's own rules, which all
		// assume a sound base order, are worth checking against it.
		return false
	}
	cd.LinearizedBaseContracts = append([]ast.DeclID(nil), lin[1:]...)
	cd.ContractDependencies = dedupDecls(lin[1:])
	cd.CanonicalName = c.Builder.Strings.MustLookup(cd.Name)
	cd.IsFullyImplemented = c.isFullyImplemented(contract, lin)

	if !c.checkFallback(contract, cd) {
		ok = false
	}
	if !c.checkDuplicateFunctions(cd, lin) {
		ok = false
	}
	if !c.checkOverrides(contract, lin) {
		ok = false
	}
	if !c.checkModifierFunctionCollisions(cd, lin) {
		ok = false
	}
	if !c.checkInterfaceHashes(contract, lin) {
		ok = false
	}
	if !c.checkLibraryRestrictions(cd) {
		ok = false
	}

	for _, s := range cd.StateVars {
		if !c.CheckStateVariable(contract, s, lin) {
			ok = false
		}
	}
	for _, e := range cd.Events {
		if !c.CheckEvent(contract, e, lin) {
			ok = false
		}
	}
	for _, m := range cd.Modifiers {
		if !c.CheckModifier(contract, m, lin) {
			ok = false
		}
	}
	for _, f := range cd.Functions {
		if !c.CheckFunction(contract, f, lin) {
			ok = false
		}
	}
	return ok
}

// checkDuplicateFunctions enforces §4.5.1's "duplicate functions" rule:
// within a single contract, two functions sharing both name and
// parameter-type list is an error, and declaring more than one
// constructor (a function named after the contract) is an error. A
// constructor must also declare no return parameters (§4.5.2).
func (c *Checker) checkDuplicateFunctions(cd *ast.ContractDecl, ctx []ast.DeclID) bool {
	ok := true
	seen := make(map[string]ast.DeclID, len(cd.Functions))
	constructors := 0
	for _, fn := range cd.Functions {
		fd := c.Builder.Function(fn)
		if fd == nil || fd.Name == 0 {
			continue // the fallback function is checked separately
		}
		if isConstructor(fd, cd) {
			constructors++
			if len(fd.Returns) != 0 {
				diag.Report(c.Reporter, diag.Type(fd.NameSpan,
					"constructor of %q must not declare return parameters", cd.CanonicalName))
				ok = false
			}
		}
		key := c.functionSignatureKey(fd, ctx)
		if prev, dup := seen[key]; dup {
			d := diag.Declaration(fd.NameSpan,
				"function %q is declared more than once with the same parameter types", c.Builder.Strings.MustLookup(fd.Name))
			if prevFd := c.Builder.Function(prev); prevFd != nil {
				d = d.WithNote(prevFd.NameSpan, "previous declaration here")
			}
			diag.Report(c.Reporter, d)
			ok = false
			continue
		}
		seen[key] = fn
	}
	if constructors > 1 {
		diag.Report(c.Reporter, diag.Declaration(cd.NameSpan,
			"contract %q declares more than one constructor", cd.CanonicalName))
		ok = false
	}
	return ok
}

// checkModifierFunctionCollisions enforces §4.5.1's "overriding a
// modifier with a function of the same name (or vice versa) is an
// error" rule: Registry.declare only sees one contract's own scope, so a
// function that reuses the name of a modifier declared in a base
// contract (or vice versa) never meets it there; this needs its own
// cross-check across the linearized base chain.
func (c *Checker) checkModifierFunctionCollisions(cd *ast.ContractDecl, lin []ast.DeclID) bool {
	ok := true
	functionNames := make(map[string]ast.DeclID)
	modifierNames := make(map[string]ast.DeclID)
	for _, base := range lin {
		bc := c.Builder.Contract(base)
		if bc == nil {
			continue
		}
		for _, fn := range bc.Functions {
			fd := c.Builder.Function(fn)
			if fd == nil || fd.Name == 0 {
				continue
			}
			name := c.Builder.Strings.MustLookup(fd.Name)
			if _, seen := functionNames[name]; !seen {
				functionNames[name] = fn
			}
		}
		for _, m := range bc.Modifiers {
			md := c.Builder.Modifier(m)
			if md == nil {
				continue
			}
			name := c.Builder.Strings.MustLookup(md.Name)
			if _, seen := modifierNames[name]; !seen {
				modifierNames[name] = m
			}
		}
	}
	for name, fn := range functionNames {
		m, collides := modifierNames[name]
		if !collides {
			continue
		}
		fd := c.Builder.Function(fn)
		md := c.Builder.Modifier(m)
		if fd == nil || md == nil {
			continue
		}
		diag.Report(c.Reporter, diag.Declaration(fd.NameSpan,
			"function %q collides with a modifier of the same name", name).
			WithNote(md.NameSpan, "modifier declared here"))
		ok = false
	}
	_ = cd
	return ok
}

// checkLibraryRestrictions enforces §4.5.1's library rules: a library
// must not inherit from anything, and every state variable it declares
// must be constant (a library has no storage of its own).
func (c *Checker) checkLibraryRestrictions(cd *ast.ContractDecl) bool {
	if !cd.IsLibrary {
		return true
	}
	ok := true
	if len(cd.Bases) > 0 {
		diag.Report(c.Reporter, diag.Type(cd.NameSpan, "library %q must not inherit", cd.CanonicalName))
		ok = false
	}
	for _, s := range cd.StateVars {
		vd := c.Builder.Var(s)
		if vd == nil || vd.IsConstant {
			continue
		}
		diag.Report(c.Reporter, diag.Type(vd.NameSpan,
			"library %q must not declare non-constant state variable %q", cd.CanonicalName, c.Builder.Strings.MustLookup(vd.Name)))
		ok = false
	}
	return ok
}

// isFullyImplemented reports whether every function signature reachable
// in contract's flattened interface has a body, walking the linearized
// chain most-derived-first so an override supplies the implementation a
// base left abstract (§4.5.1, §8 scenario S3).
func (c *Checker) isFullyImplemented(contract ast.DeclID, lin []ast.DeclID) bool {
	cd := c.Builder.Contract(contract)
	if cd != nil && c.hasAbstractConstructor(cd) {
		return false
	}
	seen := make(map[string]bool)
	for _, base := range lin {
		bc := c.Builder.Contract(base)
		if bc == nil {
			continue
		}
		for _, fn := range bc.Functions {
			fd := c.Builder.Function(fn)
			if fd == nil {
				continue
			}
			key := c.functionSignatureKey(fd, lin)
			if _, already := seen[key]; already {
				continue
			}
			seen[key] = fd.Body.IsValid()
		}
	}
	for _, implemented := range seen {
		if !implemented {
			return false
		}
	}
	return true
}

// hasAbstractConstructor reports whether cd inherits from a base contract
// whose constructor requires parameters, without supplying those
// parameters either in the "is Base(...)" inheritance specifier or in a
// constructor modifier invocation naming that base (§4.5.1 "Abstract
// constructors"). Both are populated by the reference resolver
// (resolve.go) ahead of the type-check pass.
func (c *Checker) hasAbstractConstructor(cd *ast.ContractDecl) bool {
	given := make(map[ast.DeclID]bool, len(cd.Bases))
	for _, b := range cd.Bases {
		if b.Resolved.IsValid() && len(b.Args) > 0 {
			given[b.Resolved] = true
		}
	}
	for _, fn := range cd.Functions {
		fd := c.Builder.Function(fn)
		if fd == nil || !isConstructor(fd, cd) {
			continue
		}
		for _, inv := range fd.Modifiers {
			if inv.Resolved.IsValid() && len(inv.Args) > 0 {
				given[inv.Resolved] = true
			}
		}
	}
	for _, b := range cd.Bases {
		if !b.Resolved.IsValid() {
			continue
		}
		bc := c.Builder.Contract(b.Resolved)
		if bc == nil || constructorParamCount(c, bc) == 0 {
			continue
		}
		if !given[b.Resolved] {
			return true
		}
	}
	return false
}

// constructorParamCount returns the parameter count of bc's own
// constructor, or 0 if it declares none.
func constructorParamCount(c *Checker, bc *ast.ContractDecl) int {
	for _, fn := range bc.Functions {
		fd := c.Builder.Function(fn)
		if fd != nil && isConstructor(fd, bc) {
			return len(fd.Params)
		}
	}
	return 0
}

func (c *Checker) functionSignatureKey(fd *ast.FunctionDecl, ctx []ast.DeclID) string {
	key := c.Builder.Strings.MustLookup(fd.Name)
	for _, p := range fd.Params {
		vd := c.Builder.Var(p)
		if vd == nil {
			continue
		}
		key += "," + fmt.Sprint(c.ResolveTypeName(vd.TypeName, ctx))
	}
	return key
}

// checkFallback enforces §4.5.1/§8 scenario S4: a contract may declare at
// most one fallback function (empty name), and it must take no
// parameters, return nothing, and be external.
func (c *Checker) checkFallback(contract ast.DeclID, cd *ast.ContractDecl) bool {
	ok := true
	var fallback ast.DeclID
	for _, f := range cd.Functions {
		fd := c.Builder.Function(f)
		if fd == nil || fd.Name != 0 {
			continue
		}
		if fallback.IsValid() {
			diag.Report(c.Reporter, diag.Declaration(fd.NameSpan,
				"contract %q declares more than one fallback function", cd.CanonicalName))
			ok = false
			continue
		}
		fallback = f
		if len(fd.Params) != 0 {
			diag.Report(c.Reporter, diag.Type(fd.NameSpan, "fallback function cannot take parameters"))
			ok = false
		}
		if len(fd.Returns) != 0 {
			diag.Report(c.Reporter, diag.Type(fd.NameSpan, "fallback function cannot return values"))
			ok = false
		}
		if fd.Visibility != ast.VisExternal {
			diag.Report(c.Reporter, diag.Type(fd.NameSpan, "fallback function must be declared external"))
			ok = false
		}
	}
	_ = contract
	return ok
}

// checkOverrides enforces §8 invariant 5 (override compatibility): a
// function that shares a signature key with a base-contract function
// must agree on return types and constness, and must not be more
// restrictive in visibility (internal cannot override a public/external
// base member).
func (c *Checker) checkOverrides(contract ast.DeclID, lin []ast.DeclID) bool {
	ok := true
	cd := c.Builder.Contract(contract)
	if cd == nil {
		return true
	}
	for _, fn := range cd.Functions {
		fd := c.Builder.Function(fn)
		if fd == nil || fd.Name == 0 {
			continue
		}
		key := c.functionSignatureKey(fd, lin)
		for _, base := range lin[1:] {
			bc := c.Builder.Contract(base)
			if bc == nil {
				continue
			}
			for _, bf := range bc.Functions {
				bfd := c.Builder.Function(bf)
				if bfd == nil || bfd.Name == 0 {
					continue
				}
				if c.functionSignatureKey(bfd, lin) != key {
					continue
				}
				if !sameReturnTypes(c, fd, bfd, lin) {
					diag.Report(c.Reporter, diag.Type(fd.NameSpan,
						"overriding function %q changes the return types of the base declaration", c.Builder.Strings.MustLookup(fd.Name)).
						WithNote(bfd.NameSpan, "base declaration here"))
					ok = false
				}
				if fd.Visibility < bfd.Visibility && bfd.Visibility != ast.VisDefault {
					diag.Report(c.Reporter, diag.Type(fd.NameSpan,
						"overriding function %q cannot reduce visibility", c.Builder.Strings.MustLookup(fd.Name)).
						WithNote(bfd.NameSpan, "base declaration here"))
					ok = false
				}
				if fd.IsConstant != bfd.IsConstant {
					diag.Report(c.Reporter, diag.Type(fd.NameSpan,
						"overriding function %q must match the base declaration's constness", c.Builder.Strings.MustLookup(fd.Name)).
						WithNote(bfd.NameSpan, "base declaration here"))
					ok = false
				}
			}
		}
	}
	return ok
}

func sameReturnTypes(c *Checker, derived, base *ast.FunctionDecl, ctx []ast.DeclID) bool {
	if len(derived.Returns) != len(base.Returns) {
		return false
	}
	for i := range derived.Returns {
		dv := c.Builder.Var(derived.Returns[i])
		bv := c.Builder.Var(base.Returns[i])
		if dv == nil || bv == nil {
			continue
		}
		if c.ResolveTypeName(dv.TypeName, ctx) != c.ResolveTypeName(bv.TypeName, ctx) {
			return false
		}
	}
	return true
}

// checkInterfaceHashes enforces §8 invariant 4: no two distinct external
// function signatures in the flattened interface may collide under the
// selector hash. The hash algorithm itself (Keccak-256 in the original)
// is outside this package's scope; SelectorHash stands in for whatever
// hashing dependency the driver injects. A public state variable gets an
// implicit accessor of the same name, so its synthesized signature joins
// the same selector space a hand-written external function does (§4.5.1
// "external-ABI clashes: for every pair of externally visible function
// or state-variable accessor...").
func (c *Checker) checkInterfaceHashes(contract ast.DeclID, lin []ast.DeclID) bool {
	ok := true
	type entry struct {
		sig  string
		span ast.DeclID
	}
	bySelector := make(map[uint32][]entry)
	seenSig := make(map[string]bool)
	for _, base := range lin {
		bc := c.Builder.Contract(base)
		if bc == nil {
			continue
		}
		for _, fn := range bc.Functions {
			fd := c.Builder.Function(fn)
			if fd == nil || fd.Visibility != ast.VisExternal && fd.Visibility != ast.VisPublic {
				continue
			}
			sig := c.externalSignature(fd, lin)
			if seenSig[sig] {
				continue
			}
			seenSig[sig] = true
			h := SelectorHash(sig)
			bySelector[h] = append(bySelector[h], entry{sig: sig, span: fn})
		}
		for _, sv := range bc.StateVars {
			vd := c.Builder.Var(sv)
			if vd == nil || vd.Visibility != ast.VisPublic {
				continue
			}
			sig := c.accessorSignature(vd, lin)
			if seenSig[sig] {
				continue
			}
			seenSig[sig] = true
			h := SelectorHash(sig)
			bySelector[h] = append(bySelector[h], entry{sig: sig, span: sv})
		}
	}
	keys := make([]uint32, 0, len(bySelector))
	for k := range bySelector {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		entries := bySelector[k]
		if len(entries) <= 1 {
			continue
		}
		first := c.Builder.Decl(entries[0].span)
		for _, other := range entries[1:] {
			span := ast.Decl{}
			if d := c.Builder.Decl(other.span); d != nil {
				span = *d
			}
			primary := span.Span
			if first != nil {
				primary = first.Span
			}
			diag.Report(c.Reporter, diag.Type(primary,
				"function selector collision between %q and %q", entries[0].sig, other.sig))
			ok = false
		}
	}
	return ok
}

func (c *Checker) externalSignature(fd *ast.FunctionDecl, ctx []ast.DeclID) string {
	sig := c.Builder.Strings.MustLookup(fd.Name) + "("
	for i, p := range fd.Params {
		if i > 0 {
			sig += ","
		}
		vd := c.Builder.Var(p)
		if vd == nil {
			continue
		}
		sig += fmt.Sprint(c.ResolveTypeName(vd.TypeName, ctx))
	}
	return sig + ")"
}

// accessorSignature synthesizes the implicit getter a public state
// variable receives: one parameter per Mapping key or Array index
// needed to reach a non-container value, outer to inner. Each parameter
// is written as its decimal TypeID (as externalSignature does), e.g.
// "balances(A)" for a `mapping(address => uint256) public balances`,
// where A is the address TypeID, or "grid(U,U)" for a `uint256[][]
// public grid`, where U is the uint256 TypeID.
func (c *Checker) accessorSignature(vd *ast.VariableDecl, ctx []ast.DeclID) string {
	sig := c.Builder.Strings.MustLookup(vd.Name) + "("
	t := c.ResolveTypeName(vd.TypeName, ctx)
	first := true
	for t != types.NoTypeID {
		tt, ok := c.Types.Lookup(t)
		if !ok {
			break
		}
		var param types.TypeID
		switch tt.Kind {
		case types.KindMapping:
			param, t = tt.MapKey, tt.MapValue
		case types.KindArray:
			param, t = c.Types.BuiltinTypes().Uint256, tt.Elem
		default:
			param = types.NoTypeID
		}
		if param == types.NoTypeID {
			break
		}
		if !first {
			sig += ","
		}
		first = false
		sig += fmt.Sprint(param)
	}
	return sig + ")"
}

// SelectorHash is the injected stand-in for Keccak-256-derived selector
// hashing (§D: hash-library implementations are a Non-goal). hash/fnv is
// a stdlib checksum, not a cryptographic digest; it is only asked to
// distinguish signatures for the collision check above, never to model
// the real ABI selector value, so no ecosystem hash dependency is
// justified here.
func SelectorHash(sig string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sig))
	return h.Sum32()
}

func dedupDecls(ids []ast.DeclID) []ast.DeclID {
	seen := make(map[ast.DeclID]bool, len(ids))
	out := make([]ast.DeclID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
