// ABOUTME: Tests for the tagged image variant.
// ABOUTME: Verifies raw and stored items keep their bytes and tag.

package models

import (
	"bytes"
	"testing"
)

func TestRawImage(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	item := RawImage(data)

	if item.IsStored() {
		t.Error("raw item must not report stored")
	}
	if !bytes.Equal(item.Data(), data) {
		t.Error("raw item bytes changed")
	}
}

func TestStoredImage(t *testing.T) {
	data := []byte{0xff, 0xd8, 0xff}
	item := StoredImage(data)

	if !item.IsStored() {
		t.Error("stored item must report stored")
	}
	if !bytes.Equal(item.Data(), data) {
		t.Error("stored item bytes changed")
	}
}
