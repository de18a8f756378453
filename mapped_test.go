package vkr

import (
	"bytes"
	"errors"
	"testing"
	"unsafe"
)

// hostMappedBuffer builds a MappedBuffer over plain host memory, which
// exercises the overwrite rules without a device.
func hostMappedBuffer(size int) (*MappedBuffer, []byte) {
	backing := make([]byte, size)
	return &MappedBuffer{size: size, ptr: unsafe.Pointer(&backing[0])}, backing
}

func TestOverwrite(t *testing.T) {
	m, backing := hostMappedBuffer(4)

	if err := m.Overwrite([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backing, []byte{1, 2, 3, 4}) {
		t.Errorf("contents %v", backing)
	}

	if err := m.Overwrite([]byte{5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backing, []byte{5, 6, 7, 8}) {
		t.Errorf("contents %v", backing)
	}
}

func TestOverwriteRejectsWrongSize(t *testing.T) {
	m, backing := hostMappedBuffer(4)
	if err := m.Overwrite([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}

	err := m.Overwrite([]byte{9, 9})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short write: got %v", err)
	}

	err = m.Overwrite([]byte{9, 9, 9, 9, 9})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("long write: got %v", err)
	}

	err = m.Overwrite(nil)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("nil write: got %v", err)
	}

	// A rejected overwrite must leave the previous contents in place.
	if !bytes.Equal(backing, []byte{1, 2, 3, 4}) {
		t.Errorf("rejected write touched the contents: %v", backing)
	}
}

func TestMappedBufferBytes(t *testing.T) {
	m, backing := hostMappedBuffer(4)

	if m.Size() != 4 {
		t.Errorf("size %d", m.Size())
	}

	backing[2] = 7
	if m.Bytes()[2] != 7 {
		t.Error("Bytes does not expose the live contents")
	}
}
