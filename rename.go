package rex

import (
	"sort"
	"strings"
)

// renameKey identifies a content-keyed rename operation for the persistent
// per-node cache. Two renames with the same key applied to the same group
// node return the same renamed node, so identity backreferences into a
// renamed tree keep pointing at the renamed group. Function-based renames
// get no such key: Go functions are not comparable by content, and two
// closures built from the same literal share a code pointer while behaving
// differently, so keying on the function would hand back another closure's
// result.
type renameKey struct {
	op    string // "map" for content-keyed renames, "drop" for DropNames
	canon string // canonical form of a rename map
}

type renamer struct {
	key   renameKey
	keyed bool // persist results on the group node across calls
	fn    func(string) string
	memo  map[*Expr]*Expr // per-invocation identity for unkeyed renames
}

func mapRenamer(m map[string]string) renamer {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(0)
		b.WriteString(m[k])
		b.WriteByte(0)
	}
	return renamer{
		key:   renameKey{op: "map", canon: b.String()},
		keyed: true,
		fn: func(name string) string {
			if v, ok := m[name]; ok {
				return v
			}
			return name
		},
	}
}

func funcRenamer(f func(string) string) renamer {
	return renamer{fn: f, memo: make(map[*Expr]*Expr)}
}

func dropRenamer() renamer {
	return renamer{
		key:   renameKey{op: "drop"},
		keyed: true,
		fn:    func(string) string { return "" },
	}
}

// Rename returns a copy of the tree with group names replaced according to
// names. Names absent from the map pass through; mapping a name to ""
// anonymizes the group. Identity preservation: renaming the same tree twice
// with equal maps returns the same group nodes, so backreferences by node
// stay coherent across the renamed trees.
func (x *Expr) Rename(names map[string]string) (*Expr, error) {
	return x.rename(mapRenamer(names))
}

// RenameFunc is Rename with a function computing each new name. Returning
// the input name keeps it; returning "" anonymizes the group. Identity is
// preserved within the call: a group referenced from several places renames
// to one node. Unlike Rename, separate calls do not share renamed nodes,
// even when given the same function value.
func (x *Expr) RenameFunc(f func(string) string) (*Expr, error) {
	return x.rename(funcRenamer(f))
}

// DropNames returns a copy of the tree with every named group turned into
// an anonymous one. By-name backreferences cannot survive this and report
// an error; references by node or by index are preserved. DropNames is a
// fixed operation, so repeated calls reuse the same dropped group nodes.
func (x *Expr) DropNames() (*Expr, error) {
	return x.rename(dropRenamer())
}

func (x *Expr) rename(r renamer) (*Expr, error) {
	switch x.kind {
	case KindInvalid,
		KindLiteral, KindCharSet, KindCharRange, KindCharClass, KindNegatedClass,
		KindShorthand, KindAnchor, KindSymbol, KindComment,
		KindIntBackref:
		return x, nil

	case KindCapture:
		return x.cachedRename(r, func() (*Expr, error) {
			child, err := x.sub[0].rename(r)
			if err != nil {
				return nil, err
			}
			return child.Capture(), nil
		})

	case KindNamedCapture:
		return x.cachedRename(r, func() (*Expr, error) {
			child, err := x.sub[0].rename(r)
			if err != nil {
				return nil, err
			}
			newName := r.fn(x.str)
			if newName == "" {
				return child.Capture(), nil
			}
			return child.As(newName), nil
		})

	case KindNamedBackref:
		newName := r.fn(x.refName)
		if newName == "" {
			return nil, newError(CodeAmbiguousRename,
				"cannot drop the name of group %q: a by-name backreference depends on it", x.refName)
		}
		if newName == x.refName {
			return x, nil
		}
		ref := RefName(newName)
		if ref.err != nil {
			return nil, ref.err
		}
		return ref, nil

	case KindRefBackref, KindNamedRefBackref:
		target, err := x.target.rename(r)
		if err != nil {
			return nil, err
		}
		// Re-dispatch on the renamed target: a named group that lost its
		// name turns this into an anonymous identity reference.
		ref := RefTo(target)
		if ref.err != nil {
			return nil, ref.err
		}
		return ref, nil
	}

	sub := make([]*Expr, len(x.sub))
	for i, c := range x.sub {
		renamed, err := c.rename(r)
		if err != nil {
			return nil, err
		}
		sub[i] = renamed
	}
	return x.cloneWith(sub), nil
}

// cachedRename memoizes the rename of a capture group, so every reference
// to the group resolves to one renamed node. Content-keyed renames persist
// on the node across calls; function renames memoize per invocation only.
func (x *Expr) cachedRename(r renamer, build func() (*Expr, error)) (*Expr, error) {
	if !r.keyed {
		if got, ok := r.memo[x]; ok {
			return got, nil
		}
		renamed, err := build()
		if err != nil {
			return nil, err
		}
		r.memo[x] = renamed
		return renamed, nil
	}

	x.renameMu.Lock()
	defer x.renameMu.Unlock()
	if got, ok := x.renames[r.key]; ok {
		return got, nil
	}
	renamed, err := build()
	if err != nil {
		return nil, err
	}
	if x.renames == nil {
		x.renames = make(map[renameKey]*Expr)
	}
	x.renames[r.key] = renamed
	return renamed, nil
}

// cloneWith copies the node's payload with new children. The rename cache
// and compiled matcher are deliberately not carried over.
func (x *Expr) cloneWith(sub []*Expr) *Expr {
	return &Expr{
		kind:       x.kind,
		str:        x.str,
		ch:         x.ch,
		sub:        sub,
		set:        x.set,
		rng:        x.rng,
		ranges:     x.ranges,
		shorthands: x.shorthands,
		m:          x.m,
		n:          x.n,
		refIndex:   x.refIndex,
		refName:    x.refName,
		target:     x.target,
		posFlags:   x.posFlags,
		negFlags:   x.negFlags,
		err:        x.err,
	}
}
