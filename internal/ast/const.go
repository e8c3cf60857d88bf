package ast

import (
	"elide/internal/source"
)

// ConstItem is the payload shared by const and static declarations; the
// owning Item.Kind tells them apart.
type ConstItem struct {
	Name       source.StringID
	Type       TypeID
	Visibility Visibility
	// Mutable is set for `static mut`.
	Mutable bool
	// Assoc is set for consts declared inside an impl or trait block.
	Assoc bool
	// FromExpansion is set for declarations inside a macro_rules! body.
	FromExpansion bool
	AttrStart     AttrID
	AttrCount     uint32
	KwSpan        source.Span
	NameSpan      source.Span
	ColonSpan     source.Span
	EqualsSpan    source.Span
	// ValueSpan covers the initializer expression; empty for extern statics
	// and trait consts without a default.
	ValueSpan     source.Span
	SemicolonSpan source.Span
	Span          source.Span
}

// Const returns the payload of a const or static item.
func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || (item.Kind != ItemConst && item.Kind != ItemStatic) {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

// NewConst allocates a const or static item. kind must be ItemConst or
// ItemStatic.
func (i *Items) NewConst(kind ItemKind, payload ConstItem, attrs []Attr) ItemID {
	payload.AttrStart, payload.AttrCount = i.allocateAttrs(attrs)
	payloadID := PayloadID(i.Consts.Allocate(payload))
	return i.New(kind, payload.Span, payloadID)
}
