// Package msgpack provides MessagePack encoding/decoding for filter
// documents. Struct fields are matched by their json tags so one set of
// tags serves JSON and MessagePack alike.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const structTag = "json"

// Encode serializes a Go value into MessagePack format.
// Integers are written in their most compact form.
//
// Example:
//
//	data, err := msgpack.Encode(&document.Document{Combinator: "OR"})
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	enc.UseCompactInts(true)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode deserializes MessagePack data into a Go value.
// The v parameter should be a pointer to the target structure.
// Untyped maps are decoded as map[string]any.
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty MessagePack data")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	dec.SetMapDecoder(func(d *msgpack.Decoder) (any, error) {
		return d.DecodeMap()
	})

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	return nil
}
