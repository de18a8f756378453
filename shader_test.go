package vkr

import (
	"errors"
	"testing"
)

func TestLoadShaderModuleRejectsBadCode(t *testing.T) {
	// The word size check runs before any device work, so a zero device
	// is enough to exercise it.
	d := &Device{}

	_, err := d.LoadShaderModule(nil)
	if !errors.Is(err, ErrShaderAlignment) {
		t.Errorf("empty code: got %v", err)
	}

	_, err = d.LoadShaderModule([]byte{1, 2, 3})
	if !errors.Is(err, ErrShaderAlignment) {
		t.Errorf("3 bytes: got %v", err)
	}

	_, err = d.LoadShaderModule(make([]byte, 6))
	if !errors.Is(err, ErrShaderAlignment) {
		t.Errorf("6 bytes: got %v", err)
	}
}
