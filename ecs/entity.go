package ecs

import (
	"math/bits"
	"strconv"
)

// Identifier is the set of integer types usable as entity identifiers.
// An identifier packs an index (low bits) and a version (high bits).
type Identifier interface {
	~uint32 | ~uint64
}

// Entity is a 32-bit identifier: 20 bits of index, 12 bits of version.
type Entity uint32

// Entity64 is a 64-bit identifier: 32 bits of index, 32 bits of version.
type Entity64 uint64

const (
	// NullEntity has every index bit set. It never refers to a live entity.
	NullEntity Entity = 0xFFFFFFFF
	// TombstoneEntity has every version bit set.
	TombstoneEntity Entity = 0xFFFFFFFF

	NullEntity64      Entity64 = 0xFFFFFFFFFFFFFFFF
	TombstoneEntity64 Entity64 = 0xFFFFFFFFFFFFFFFF
)

// IndexBits returns the width of the index field for E.
func IndexBits[E Identifier]() int {
	if bits.OnesCount64(uint64(^E(0))) == 32 {
		return 20
	}
	return 32
}

// VersionBits returns the width of the version field for E.
func VersionBits[E Identifier]() int {
	return bits.OnesCount64(uint64(^E(0))) - IndexBits[E]()
}

// IndexMask has the low IndexBits bits set.
func IndexMask[E Identifier]() E {
	return E(1)<<IndexBits[E]() - 1
}

// VersionMask has the low VersionBits bits set (unshifted).
func VersionMask[E Identifier]() E {
	return E(1)<<VersionBits[E]() - 1
}

// Compose packs index and version into an identifier. Bits beyond each
// field's width are discarded.
func Compose[E Identifier](index, version E) E {
	return index&IndexMask[E]() | (version&VersionMask[E]())<<IndexBits[E]()
}

// Split is the inverse of Compose.
func Split[E Identifier](e E) (index, version E) {
	return IndexOf(e), VersionOf(e)
}

// IndexOf extracts the index field.
func IndexOf[E Identifier](e E) E {
	return e & IndexMask[E]()
}

// VersionOf extracts the version field.
func VersionOf[E Identifier](e E) E {
	return e >> IndexBits[E]() & VersionMask[E]()
}

// Null returns the null sentinel for E.
func Null[E Identifier]() E {
	return ^E(0)
}

// Tombstone returns the tombstone sentinel for E.
func Tombstone[E Identifier]() E {
	return ^E(0)
}

// IsNull reports whether e compares equal to null: its index field is all
// ones, whatever the version.
func IsNull[E Identifier](e E) bool {
	return IndexOf(e) == IndexMask[E]()
}

// IsTombstone reports whether e compares equal to tombstone: its version
// field is all ones, whatever the index.
func IsTombstone[E Identifier](e E) bool {
	return VersionOf(e) == VersionMask[E]()
}

// NewEntity creates an Entity from an index and a version.
func NewEntity(index, version uint32) Entity {
	return Compose(Entity(index), Entity(version))
}

// Index extracts the entity index
func (e Entity) Index() uint32 {
	return uint32(IndexOf(e))
}

// Version extracts the entity version
func (e Entity) Version() uint32 {
	return uint32(VersionOf(e))
}

func (e Entity) IsNull() bool      { return IsNull(e) }
func (e Entity) IsTombstone() bool { return IsTombstone(e) }

func (e Entity) String() string {
	return formatIdentifier(e)
}

// NewEntity64 creates an Entity64 from an index and a version.
func NewEntity64(index, version uint32) Entity64 {
	return Compose(Entity64(index), Entity64(version))
}

func (e Entity64) Index() uint32 {
	return uint32(IndexOf(e))
}

func (e Entity64) Version() uint32 {
	return uint32(VersionOf(e))
}

func (e Entity64) IsNull() bool      { return IsNull(e) }
func (e Entity64) IsTombstone() bool { return IsTombstone(e) }

func (e Entity64) String() string {
	return formatIdentifier(e)
}

func formatIdentifier[E Identifier](e E) string {
	if IsNull(e) {
		return "null"
	}
	index, version := Split(e)
	return strconv.FormatUint(uint64(index), 10) + "v" + strconv.FormatUint(uint64(version), 10)
}
