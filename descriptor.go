package fieldmap

import (
	"encoding/xml"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

// tagKey is the struct tag consulted for field exclusion: `map:"-"`.
const tagKey = "map"

// maxAncestorDepth bounds the walk over embedded structs.
const maxAncestorDepth = 16

var xmlNameType = reflect.TypeOf(xml.Name{})

func init() {
	sentinel.Tag(tagKey)
}

// descriptors caches one Descriptor per struct type.
var descriptors sync.Map

// Parent links a descriptor to one of its embedded structs.
type Parent struct {
	Index   int          // position of the embedded field in the owning struct
	Pointer bool         // embedded as *T
	Type    reflect.Type // embedded struct type, pointer removed
}

// Descriptor exposes the mappable fields of a struct type.
//
// Metadata holds the type's own fields only. Fields promoted from embedded
// structs are reached through Parents; Fields(true) walks them.
type Descriptor struct {
	Metadata sentinel.Metadata
	Type     reflect.Type
	Parents  []Parent
}

// Field is a mappable field reached from a descriptor, possibly through
// one or more embedded parents.
type Field struct {
	Name  string
	Type  reflect.Type
	Depth int // 0 for own fields, n for fields n embeddings away

	index      []int // reflect field path from the root struct
	ptrIndices []int // positions in index holding a pointer to dereference
}

// Describe returns the descriptor for rt, building and caching it on first use.
// Pointer types are dereferenced. A nil type fails with ErrInvalidArgument and
// a non-struct type with ErrUninstantiable.
func Describe(rt reflect.Type) (*Descriptor, error) {
	if rt == nil {
		return nil, newConfigError(ErrInvalidArgument, "", "nil type")
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, newConfigError(ErrUninstantiable, rt.String(), "not a struct")
	}

	if cached, ok := descriptors.Load(rt); ok {
		return cached.(*Descriptor), nil
	}

	actual, _ := descriptors.LoadOrStore(rt, describe(rt))
	return actual.(*Descriptor), nil
}

// describe scans the declared fields of a struct type. Metadata already held
// by the sentinel registry is reused for own fields; embedded structs and
// excluded fields are always classified from the struct type itself.
func describe(rt reflect.Type) *Descriptor {
	d := &Descriptor{
		Metadata: sentinel.Metadata{
			TypeName:    rt.Name(),
			PackageName: rt.PkgPath(),
			Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
		},
		Type: rt,
	}

	registered := make(map[string]sentinel.FieldMetadata)
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		d.Metadata.TypeName = spec.TypeName
		d.Metadata.PackageName = spec.PackageName
		for _, fm := range spec.Fields {
			registered[fm.Name] = fm
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)

		if sf.Anonymous {
			et, ptr := sf.Type, false
			if et.Kind() == reflect.Pointer {
				et, ptr = et.Elem(), true
			}
			if et.Kind() == reflect.Struct {
				d.Parents = append(d.Parents, Parent{Index: i, Pointer: ptr, Type: et})
				continue
			}
		}

		if excluded(sf) {
			continue
		}

		d.Metadata.Fields = append(d.Metadata.Fields, fieldMetadata(sf, registered))
	}

	return d
}

// fieldMetadata returns the registry entry for sf when it describes the same
// declared field, otherwise metadata built from sf.
func fieldMetadata(sf reflect.StructField, registered map[string]sentinel.FieldMetadata) sentinel.FieldMetadata {
	if fm, ok := registered[sf.Name]; ok && fm.ReflectType == sf.Type && len(fm.Index) == 1 && fm.Index[0] == sf.Index[0] {
		if fm.Tags == nil {
			fm.Tags = make(map[string]string)
		}
		if val, ok := sf.Tag.Lookup(tagKey); ok {
			fm.Tags[tagKey] = val
		}
		return fm
	}

	return sentinel.FieldMetadata{
		Name:        sf.Name,
		Type:        sf.Type.String(),
		ReflectType: sf.Type,
		Index:       sf.Index,
		Kind:        kindOf(sf.Type),
		Tags:        parseTags(sf.Tag),
	}
}

// excluded reports whether a declared field never takes part in mapping:
// unexported and blank fields, fields tagged map:"-", and the XMLName marker.
func excluded(sf reflect.StructField) bool {
	if sf.Name == "_" || !sf.IsExported() {
		return true
	}
	if sf.Tag.Get(tagKey) == "-" {
		return true
	}
	return sf.Name == "XMLName" && sf.Type == xmlNameType
}

func kindOf(rt reflect.Type) sentinel.FieldKind {
	switch rt.Kind() {
	case reflect.Struct:
		return sentinel.KindStruct
	case reflect.Ptr:
		return sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		return sentinel.KindSlice
	case reflect.Map:
		return sentinel.KindMap
	case reflect.Interface:
		return sentinel.KindInterface
	default:
		return sentinel.KindScalar
	}
}

func parseTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup(tagKey); ok {
		tags[tagKey] = val
	}
	return tags
}

// pendingParent is a queued step of the ancestor walk.
type pendingParent struct {
	typ        reflect.Type
	index      []int
	ptrIndices []int
	depth      int
	path       []reflect.Type // types from the root down to typ
}

// Fields returns the mappable fields of the type in declaration order.
// With walk set, fields promoted from embedded structs follow the own fields,
// shallower embeddings first. A shallower field hides deeper fields of the
// same name; two same-named fields at equal depth hide each other.
func (d *Descriptor) Fields(walk bool) []Field {
	type entry struct {
		field     Field
		ambiguous bool
	}

	byName := make(map[string]*entry)
	var order []string

	queue := []pendingParent{{typ: d.Type, path: []reflect.Type{d.Type}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cd := d
		if cur.depth > 0 {
			cd, _ = Describe(cur.typ)
		}

		for _, fm := range cd.Metadata.Fields {
			if prev, ok := byName[fm.Name]; ok {
				if prev.field.Depth == cur.depth {
					prev.ambiguous = true
				}
				continue
			}
			byName[fm.Name] = &entry{field: Field{
				Name:       fm.Name,
				Type:       fm.ReflectType,
				Depth:      cur.depth,
				index:      append(append([]int{}, cur.index...), fm.Index...),
				ptrIndices: cur.ptrIndices,
			}}
			order = append(order, fm.Name)
		}

		if !walk || cur.depth >= maxAncestorDepth {
			continue
		}

		for _, p := range cd.Parents {
			// A type embedding itself along one path ends that path. The
			// same type reached through two paths is walked twice.
			if onPath(cur.path, p.Type) {
				continue
			}
			index := append(append([]int{}, cur.index...), p.Index)
			ptrIndices := cur.ptrIndices
			if p.Pointer {
				ptrIndices = append(append([]int{}, ptrIndices...), len(index)-1)
			}
			queue = append(queue, pendingParent{
				typ:        p.Type,
				index:      index,
				ptrIndices: ptrIndices,
				depth:      cur.depth + 1,
				path:       append(append([]reflect.Type{}, cur.path...), p.Type),
			})
		}
	}

	fields := make([]Field, 0, len(order))
	for _, name := range order {
		if e := byName[name]; !e.ambiguous {
			fields = append(fields, e.field)
		}
	}
	return fields
}

func onPath(path []reflect.Type, t reflect.Type) bool {
	for _, p := range path {
		if p == t {
			return true
		}
	}
	return false
}

// Field looks up a mappable field by name.
func (d *Descriptor) Field(name string, walk bool) (Field, bool) {
	for _, f := range d.Fields(walk) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Get reads the field from v, a struct value of the descriptor's type.
// It reports false when a pointer parent on the path is nil.
func (f Field) Get(v reflect.Value) (reflect.Value, bool) {
	if len(f.ptrIndices) == 0 {
		return v.FieldByIndex(f.index), true
	}

	current := v
	for i, idx := range f.index {
		current = current.Field(idx)
		if f.isPointerStep(i) {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}
	return current, true
}

// Set writes val into the field of v, which must be addressable.
// Nil pointer parents are allocated on the way. It reports false when the
// field cannot be written: an unexported pointer parent is nil, or val is not
// assignable to the field type.
func (f Field) Set(v, val reflect.Value) bool {
	current := v
	for i, idx := range f.index {
		current = current.Field(idx)
		if f.isPointerStep(i) {
			if current.IsNil() {
				if !current.CanSet() {
					return false
				}
				current.Set(reflect.New(current.Type().Elem()))
			}
			current = current.Elem()
		}
	}

	if !current.CanSet() || !val.Type().AssignableTo(current.Type()) {
		return false
	}
	current.Set(val)
	return true
}

func (f Field) isPointerStep(i int) bool {
	for _, p := range f.ptrIndices {
		if p == i {
			return true
		}
	}
	return false
}
