package nbt

import "encoding/binary"

const (
	// DefaultInitialCapacity is the size of the encoder's first output
	// buffer when none is requested.
	DefaultInitialCapacity = 0x40

	// DefaultMaxDepth bounds how deeply lists and objects may nest.
	DefaultMaxDepth = 512
)

// Codec holds the settings for encoding and decoding. The zero value encodes
// little-endian with the default allocator and limits.
type Codec struct {
	// BigEndian selects the byte order of every multi-byte field.
	BigEndian bool

	// InitialCapacity is the size of the encoder's first output buffer. The
	// buffer doubles whenever a write would overflow it.
	InitialCapacity int

	// MaxDepth is the deepest nesting of lists and objects the codec will
	// read or write.
	MaxDepth int

	// Strict rejects input with bytes left over after the root tag.
	Strict bool

	// Allocator backs payload and output buffers. Nil means the process
	// default returned by GetAllocator.
	Allocator Allocator
}

// Decode parses data into a new tree using the given byte order and default
// limits.
func Decode(data []byte, bigEndian bool) (*Tag, error) {
	c := &Codec{BigEndian: bigEndian}
	return c.Decode(data)
}

// Encode serializes tag using the given byte order. An initialCapacity of 0
// selects DefaultInitialCapacity. The returned buffer may be handed back to
// the allocator with FreeBuffer.
func Encode(tag *Tag, initialCapacity int, bigEndian bool) ([]byte, error) {
	c := &Codec{
		BigEndian:       bigEndian,
		InitialCapacity: initialCapacity,
	}
	return c.Encode(tag)
}

// FreeBuffer returns a buffer produced by Encode to the default allocator.
func FreeBuffer(buf []byte) {
	freeBuf(GetAllocator(), buf)
}

// FreeBuffer returns a buffer produced by c.Encode to c's allocator.
func (c *Codec) FreeBuffer(buf []byte) {
	freeBuf(c.allocator(), buf)
}

// Delete destroys a tree. It is equivalent to the package-level Delete; tags
// always release their buffers to the allocator that created them.
func (c *Codec) Delete(tag *Tag) {
	Delete(tag)
}

func (c *Codec) byteOrder() binary.ByteOrder {
	if c.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (c *Codec) allocator() Allocator {
	if c.Allocator == nil {
		return GetAllocator()
	}
	return c.Allocator
}

func (c *Codec) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Codec) initialCapacity() int {
	if c.InitialCapacity <= 0 {
		return DefaultInitialCapacity
	}
	return c.InitialCapacity
}
