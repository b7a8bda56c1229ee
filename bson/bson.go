// Package bson provides a BSON codec implementation.
//
// A BSON document must have a document at its root. Slices and arrays are
// therefore wrapped as {"items": [...]} and unwrapped again on decode.
package bson

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoobzio/fieldmap"
)

// bsonCodec implements fieldmap.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() fieldmap.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// envelope is the root document used for sequences.
type envelope struct {
	Items any `bson:"items"`
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	if isSequence(v) {
		return bson.Marshal(envelope{Items: v})
	}
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. A pointer to a slice reads the
// "items" array of the root document.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Slice {
		var raw struct {
			Items bson.RawValue `bson:"items"`
		}
		if err := bson.Unmarshal(data, &raw); err != nil {
			return err
		}
		return raw.Items.Unmarshal(v)
	}
	return bson.Unmarshal(data, v)
}

func isSequence(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	k := rv.Kind()
	return (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8
}
