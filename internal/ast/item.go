package ast

import (
	"fmt"

	"fortio.org/safecast"

	"elide/internal/source"
)

type ItemKind uint8

const (
	ItemConst ItemKind = iota
	ItemStatic
)

// Visibility of an item. Restricted forms (pub(crate), pub(super)) collapse
// into VisPub; the distinction never matters here.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPub
)

// Attr is an outer attribute (#[...]) kept as its source span.
type Attr struct {
	Span  source.Span
	Inner bool // #![...]
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena  *Arena[Item]
	Consts *Arena[ConstItem]
	Attrs  *Arena[Attr]
}

// NewItems creates an *Items with arenas preallocated to capHint.
// If capHint is 0, a default of 1<<8 is used.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:  NewArena[Item](capHint),
		Consts: NewArena[ConstItem](capHint),
		Attrs:  NewArena[Attr](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// CollectAttrs returns a copy of attributes starting at attrStart with count attrCount.
func (i *Items) CollectAttrs(attrStart AttrID, attrCount uint32) []Attr {
	if attrCount == 0 || !attrStart.IsValid() {
		return nil
	}
	result := make([]Attr, 0, attrCount)

	base := uint32(attrStart)
	for offset := uint32(0); offset < attrCount; offset++ {
		attr := i.Attrs.Get(base + offset)
		if attr == nil {
			continue
		}
		result = append(result, *attr)
	}
	return result
}

func (i *Items) allocateAttrs(attrs []Attr) (attr AttrID, attrCount uint32) {
	if len(attrs) == 0 {
		return NoAttrID, 0
	}
	var start AttrID
	for idx, a := range attrs {
		id := AttrID(i.Attrs.Allocate(a))
		if idx == 0 {
			start = id
		}
	}
	count, err := safecast.Conv[uint32](len(attrs))
	if err != nil {
		panic(fmt.Errorf("attrs count overflow: %w", err))
	}
	return start, count
}
