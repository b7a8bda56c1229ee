// Package msgpack provides a MessagePack codec implementation.
//
// Integers use the smallest encoding that fits. Keys of map[string]string,
// map[string]bool and map[string]any are written in sorted order, so those
// maps encode to the same bytes on every call.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/fieldmap"
)

// msgpackCodec implements fieldmap.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() fieldmap.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
