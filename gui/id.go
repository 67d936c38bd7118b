package gui

import (
	"encoding/binary"
	"hash/fnv"
)

// ID identifies a widget or area across frames. IDs are derived by hashing
// a parent id with a source value, so they are stable as long as the
// layout code produces the same sequence of widgets.
type ID uint64

func IDFrom(source string) ID {
	return ID(0).With(source)
}

func (id ID) With(source string) ID {
	h := fnv.New64a()
	_ = binary.Write(h, binary.LittleEndian, uint64(id))
	_, _ = h.Write([]byte(source))
	return ID(h.Sum64())
}

func (id ID) WithIndex(idx int) ID {
	h := fnv.New64a()
	_ = binary.Write(h, binary.LittleEndian, uint64(id))
	_ = binary.Write(h, binary.LittleEndian, int64(idx))
	return ID(h.Sum64())
}
