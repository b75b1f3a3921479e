package capture

import (
	"fmt"
	"iter"
	"reflect"
	"strings"
)

// Invocation is one recorded call: the method name, the arguments it was
// given and the type of the value it returned (nil for methods without results).
type Invocation struct {
	Method string
	Args   []any
	Result reflect.Type

	prev *Invocation
}

// String renders the call as Method(arg, ...).
func (i Invocation) String() string {
	var sb strings.Builder

	sb.WriteString(i.Method)
	sb.WriteByte('(')
	for n, arg := range i.Args {
		if n > 0 {
			sb.WriteString(", ")
		}

		if a, ok := arg.(*Argument); ok {
			sb.WriteString(a.String())
			continue
		}

		fmt.Fprintf(&sb, "%#v", arg)
	}
	sb.WriteByte(')')

	return sb.String()
}

// Argument is the chain of invocations recorded from a root type up to the
// point where the caller stopped calling.
//
// Chains are persistent: Append never modifies the receiver, it returns a
// longer chain sharing the receiver's invocations. Two calls made on the same
// stand-in therefore produce two independent chains with a common prefix.
type Argument struct {
	root reflect.Type
	last *Invocation
	size int
}

// NewArgument returns an empty chain rooted at root.
func NewArgument(root reflect.Type) *Argument {
	return &Argument{root: root}
}

// Append records a call of method returning result with args.
func (a *Argument) Append(method string, result reflect.Type, args ...any) *Argument {
	return &Argument{
		root: a.root,
		last: &Invocation{
			Method: method,
			Args:   append([]any(nil), args...),
			Result: result,
			prev:   a.last,
		},
		size: a.size + 1,
	}
}

// RootType is the type the chain was started from.
func (a *Argument) RootType() reflect.Type {
	return a.root
}

// ReturnType is the type produced by the last recorded call, or the root type
// when nothing was called.
func (a *Argument) ReturnType() reflect.Type {
	if a.last == nil {
		return a.root
	}

	return a.last.Result
}

// Len returns the number of recorded invocations.
func (a *Argument) Len() int {
	return a.size
}

// Last returns the most recent invocation.
func (a *Argument) Last() (Invocation, bool) {
	if a.last == nil {
		return Invocation{}, false
	}

	return *a.last, true
}

// Invocations returns the recorded calls in the order they were made.
func (a *Argument) Invocations() []Invocation {
	res := make([]Invocation, a.size)
	i := a.size - 1
	for inv := a.last; inv != nil; inv = inv.prev {
		res[i] = *inv
		i--
	}

	return res
}

// All iterates the recorded calls in order. The sequence can be ranged over
// any number of times.
func (a *Argument) All() iter.Seq2[int, Invocation] {
	return func(yield func(int, Invocation) bool) {
		for i, inv := range a.Invocations() {
			if !yield(i, inv) {
				return
			}
		}
	}
}

// Path joins the invoked method names with dots, e.g. "Address.City".
func (a *Argument) Path() string {
	names := make([]string, 0, a.size)
	for _, inv := range a.All() {
		names = append(names, inv.Method)
	}

	return strings.Join(names, ".")
}

// String renders the chain as Root.Method(args).Method(args).
func (a *Argument) String() string {
	var sb strings.Builder

	sb.WriteString(typeName(a.root))
	for _, inv := range a.All() {
		sb.WriteByte('.')
		sb.WriteString(inv.String())
	}

	return sb.String()
}

// Equal reports whether both chains have the same root and the same
// invocations with equal arguments.
func (a *Argument) Equal(b *Argument) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil || a.root != b.root || a.size != b.size {
		return false
	}

	for x, y := a.last, b.last; x != nil; x, y = x.prev, y.prev {
		if x == y {
			return true
		}

		if x.Method != y.Method || x.Result != y.Result || !argsEqual(x.Args, y.Args) {
			return false
		}
	}

	return true
}

func argsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		x, xok := a[i].(*Argument)
		y, yok := b[i].(*Argument)
		if xok || yok {
			if !xok || !yok || !x.Equal(y) {
				return false
			}

			continue
		}

		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}

	return true
}
