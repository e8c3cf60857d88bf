package ast

import (
	"elide/internal/source"
)

type TypeKind uint8

const (
	// TypePath is a (possibly qualified) named type: str, Foo, std::vec::Vec<T>.
	TypePath TypeKind = iota
	// TypeRef is a reference: &T, &'a T, &'static mut T.
	TypeRef
	// TypeSlice is [T].
	TypeSlice
	// TypeArray is [T; N].
	TypeArray
	// TypeTuple is (T, U, ...). The empty tuple () is a tuple with no elements.
	TypeTuple
	// TypeFn is a function pointer: fn(A, B) -> R.
	TypeFn
	// TypeRawPtr is *const T or *mut T.
	TypeRawPtr
	// TypeOther covers everything recognized but not modeled: impl Trait,
	// dyn Trait, macro types, inferred _.
	TypeOther
)

// Type is the per-node header; kind-specific data lives in payload arenas.
type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

// Lifetime is a lifetime annotation as written, including the quote.
type Lifetime struct {
	Name source.StringID
	Span source.Span
}

// RefType is the payload of TypeRef.
type RefType struct {
	AmpSpan     source.Span
	Lifetime    Lifetime
	HasLifetime bool
	Mut         bool
	MutSpan     source.Span
	Inner       TypeID
}

// SliceType is the payload of TypeSlice.
type SliceType struct {
	Elem TypeID
}

// ArrayType is the payload of TypeArray. The length expression is kept only
// as its source span.
type ArrayType struct {
	Elem    TypeID
	LenSpan source.Span
}

// TupleType is the payload of TypeTuple.
type TupleType struct {
	Elems []TypeID
}

// PathType is the payload of TypePath. Generic arguments are not modeled
// beyond their covering span.
type PathType struct {
	Name         source.StringID
	NameSpan     source.Span
	HasGenerics  bool
	GenericsSpan source.Span
}

type Types struct {
	Arena  *Arena[Type]
	Refs   *Arena[RefType]
	Slices *Arena[SliceType]
	Arrays *Arena[ArrayType]
	Tuples *Arena[TupleType]
	Paths  *Arena[PathType]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Types{
		Arena:  NewArena[Type](capHint),
		Refs:   NewArena[RefType](capHint),
		Slices: NewArena[SliceType](capHint),
		Arrays: NewArena[ArrayType](capHint),
		Tuples: NewArena[TupleType](capHint),
		Paths:  NewArena[PathType](capHint),
	}
}

func (t *Types) New(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(Type{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewRef(span source.Span, payload RefType) TypeID {
	id := PayloadID(t.Refs.Allocate(payload))
	return t.New(TypeRef, span, id)
}

func (t *Types) NewSlice(span source.Span, elem TypeID) TypeID {
	id := PayloadID(t.Slices.Allocate(SliceType{Elem: elem}))
	return t.New(TypeSlice, span, id)
}

func (t *Types) NewArray(span source.Span, elem TypeID, lenSpan source.Span) TypeID {
	id := PayloadID(t.Arrays.Allocate(ArrayType{Elem: elem, LenSpan: lenSpan}))
	return t.New(TypeArray, span, id)
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	id := PayloadID(t.Tuples.Allocate(TupleType{Elems: elems}))
	return t.New(TypeTuple, span, id)
}

func (t *Types) NewPath(span source.Span, payload PathType) TypeID {
	id := PayloadID(t.Paths.Allocate(payload))
	return t.New(TypePath, span, id)
}

// Ref returns the payload of a TypeRef node, or nil when the node is not one.
func (t *Types) Ref(id TypeID) *RefType {
	node := t.Get(id)
	if node == nil || node.Kind != TypeRef {
		return nil
	}
	return t.Refs.Get(uint32(node.Payload))
}

func (t *Types) Slice(id TypeID) *SliceType {
	node := t.Get(id)
	if node == nil || node.Kind != TypeSlice {
		return nil
	}
	return t.Slices.Get(uint32(node.Payload))
}

func (t *Types) Array(id TypeID) *ArrayType {
	node := t.Get(id)
	if node == nil || node.Kind != TypeArray {
		return nil
	}
	return t.Arrays.Get(uint32(node.Payload))
}

func (t *Types) Tuple(id TypeID) *TupleType {
	node := t.Get(id)
	if node == nil || node.Kind != TypeTuple {
		return nil
	}
	return t.Tuples.Get(uint32(node.Payload))
}

func (t *Types) Path(id TypeID) *PathType {
	node := t.Get(id)
	if node == nil || node.Kind != TypePath {
		return nil
	}
	return t.Paths.Get(uint32(node.Payload))
}
