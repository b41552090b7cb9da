// Package serialize provides the compact binary form of filter documents:
// MessagePack compressed with ZStandard. Used by the preset store.
package serialize

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/hugr-lab/crnk-filtering/internal/document"
	"github.com/hugr-lab/crnk-filtering/internal/msgpack"
)

// Codec encodes and decodes documents.
// Create once and reuse to eliminate allocations.
// Safe for concurrent use from multiple goroutines.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a reusable document codec.
// Uses SpeedDefault (level 3) for balanced compression ratio and speed.
// Caller must call Close() when done to release resources.
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Codec{
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Marshal serializes doc to compressed MessagePack.
func (c *Codec) Marshal(doc *document.Document) ([]byte, error) {
	data, err := msgpack.Encode(doc)
	if err != nil {
		return nil, err
	}

	// EncodeAll is goroutine-safe
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Unmarshal restores a document produced by Marshal.
func (c *Codec) Unmarshal(data []byte) (*document.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document data")
	}

	// DecodeAll is goroutine-safe
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return document.Decode(raw, document.FormatMsgpack)
}

// Close releases codec resources.
func (c *Codec) Close() error {
	if c.decoder != nil {
		c.decoder.Close()
	}
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}
