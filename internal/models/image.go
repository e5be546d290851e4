// ABOUTME: Tagged image variant for update payloads.
// ABOUTME: Distinguishes raw inputs needing compression from stored payloads.

package models

// ImageItem is one entry in an update's image sequence. Exactly one of
// the constructors applies: a raw item still needs compression, a stored
// item is a payload returned from a previous read and must be persisted
// byte-identical, never re-encoded.
type ImageItem struct {
	data   []byte
	stored bool
}

// RawImage wraps a freshly selected, uncompressed image.
func RawImage(data []byte) ImageItem {
	return ImageItem{data: data}
}

// StoredImage wraps an already-compressed payload being carried forward.
func StoredImage(data []byte) ImageItem {
	return ImageItem{data: data, stored: true}
}

// IsStored reports whether the item is an already-compressed payload.
func (i ImageItem) IsStored() bool { return i.stored }

// Data returns the item's bytes.
func (i ImageItem) Data() []byte { return i.data }
