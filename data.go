package vkr

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// IndexSliceUint16 is mesh index data in the 16 bit form understood by
// CmdBindIndexBuffer. Bytes aliases the slice contents rather than
// copying them.
type IndexSliceUint16 []uint16

func (i IndexSliceUint16) Bytes() []byte {
	if len(i) == 0 {
		return nil
	}
	return ToBytes(unsafe.Pointer(&i[0]), len(i)*int(unsafe.Sizeof(i[0])))
}

func (i IndexSliceUint16) IndexType() vk.IndexType {
	return vk.IndexTypeUint16
}

// IndexSliceUint32 is the 32 bit counterpart for meshes with more than
// 65535 vertices.
type IndexSliceUint32 []uint32

func (i IndexSliceUint32) Bytes() []byte {
	if len(i) == 0 {
		return nil
	}
	return ToBytes(unsafe.Pointer(&i[0]), len(i)*int(unsafe.Sizeof(i[0])))
}

func (i IndexSliceUint32) IndexType() vk.IndexType {
	return vk.IndexTypeUint32
}
