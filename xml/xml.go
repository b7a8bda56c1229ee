// Package xml provides an XML codec implementation.
//
// encoding/xml needs a named root element, which a bare slice lacks. Slices
// and arrays are therefore wrapped in an <items> root with one <item> child
// per element, unless the element type names itself through XMLName.
package xml

import (
	"encoding/xml"
	"reflect"

	"github.com/zoobzio/fieldmap"
)

// xmlCodec implements fieldmap.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec.
func New() fieldmap.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// items is the root element used for sequences.
type items struct {
	XMLName xml.Name `xml:"items"`
	Items   any      `xml:"item"`
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	if isSequence(v) {
		return xml.Marshal(items{Items: v})
	}
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v. A pointer to a slice reads the
// children of an <items> root.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Slice {
		return unmarshalSequence(data, rv.Elem())
	}
	return xml.Unmarshal(data, v)
}

func isSequence(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	k := rv.Kind()
	return (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8
}

// unmarshalSequence decodes every child element of the root into a new slice element.
func unmarshalSequence(data []byte, slice reflect.Value) error {
	var root struct {
		Children []rawElement `xml:",any"`
	}
	if err := xml.Unmarshal(data, &root); err != nil {
		return err
	}

	out := reflect.MakeSlice(slice.Type(), 0, len(root.Children))
	for _, child := range root.Children {
		raw, err := child.raw()
		if err != nil {
			return err
		}
		elem := reflect.New(slice.Type().Elem())
		if err := xml.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	slice.Set(out)
	return nil
}

// rawElement keeps a child element verbatim so it can be decoded on its own.
type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

func (r rawElement) raw() ([]byte, error) {
	return xml.Marshal(r)
}
