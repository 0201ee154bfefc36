/*
Package nbt implements a compact, typed, hierarchical binary tag format.

A document is a tree of Tags. Every Tag has a Type and a payload. Two container
types nest other Tags: Lists hold an ordered run of Tags that all share one
declared element type and carry no keys, and Objects hold an ordered run of
keyed Tags of any type.

Wire layout (all multi-byte fields use the byte order selected for the call):

	- Root: type byte, key string, payload.
	- Int8/16/32/64: 1/2/4/8 bytes, two's complement.
	- Float32/64: the IEEE-754 bit pattern, 4/8 bytes.
	- String: uint16 length followed by that many raw bytes.
	- ByteArray8/32/64: int32 element count followed by the elements.
	- List: element type byte, int32 count, then count payloads without type
	  bytes or keys.
	- Object: repeated (type byte, key string, payload) entries, terminated by
	  a single End (0x00) byte.

To decode a buffer:

	root, err := nbt.Decode(data, true)

To build and encode a tree:

	root := nbt.NewObject()
	if err := root.Add(nbt.NewInt32(42), "x"); err != nil {
		return err
	}
	data, err := nbt.Encode(root, 0, true)

Trees are not safe for concurrent mutation. Independent trees may be used from
different goroutines, including with different Allocators bound through a
Codec.
*/
package nbt
