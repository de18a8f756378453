package vkr

import (
	"unsafe"
)

var end = "\x00"
var endChar byte = '\x00'

// IDestructable is anything which owns device state that must be released
// before the device itself goes away.
type IDestructable interface {
	Destroy()
}

// ToBytes will take an unsafe.Pointer and length in bytes and convert it
// to a byte slice
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(ptr)[:lenInBytes]
}

// sliceUint32 reinterprets SPIR-V bytes as the uint32 slice Vulkan wants.
// The caller must keep data alive for as long as the result is in use.
func sliceUint32(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer(&data[0]))[: len(data)/4 : len(data)/4]
}

func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	for i := range list {
		list[i] = safeString(list[i])
	}
	return list
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
