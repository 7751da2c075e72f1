package errpath

import (
	"reflect"
	"strings"
)

type field struct {
	Name  string
	Type  reflect.Type
	Index []int
}

// fieldsToSerialize returns the decodable fields of a struct type in
// declaration order. Embedded structs are flattened breadth first, so a
// field at a shallower depth hides same-named fields of embedded types.
// Among equally deep conflicts an explicitly tagged field wins; if the
// conflict remains, the name is dropped without error.
func fieldsToSerialize(ty reflect.Type, structTag string) []field {
	if ty.Kind() != reflect.Struct {
		panic("not a struct")
	}

	type located struct {
		field    field
		explicit bool
		depth    int
	}

	type level struct {
		ty     reflect.Type
		parent []int
	}

	byName := map[string][]located{}
	var order []string

	depth := 0

	queue := []level{{ty: ty}}
	for len(queue) > 0 {
		var next []level

		for _, item := range queue {
			for idx := range item.ty.NumField() {
				fi := item.ty.Field(idx)
				if !fi.IsExported() {
					continue
				}

				name, explicit := nameOf(fi, structTag)
				if name == "" {
					continue
				}

				// copy the parent index so appends never share backing storage
				parent := item.parent
				index := append(parent[:len(parent):len(parent)], fi.Index...)

				if fi.Anonymous && !explicit {
					if fi.Type.Kind() != reflect.Struct {
						continue
					}

					next = append(next, level{ty: fi.Type, parent: index})
					continue
				}

				if len(byName[name]) == 0 {
					order = append(order, name)
				}

				byName[name] = append(byName[name], located{
					field:    field{Name: name, Type: fi.Type, Index: index},
					explicit: explicit,
					depth:    depth,
				})
			}
		}

		queue = next
		depth++
	}

	var fields []field

	for _, name := range order {
		candidates := byName[name]

		// breadth first walking sorts candidates by depth, only the
		// shallowest prefix is visible
		visible := candidates
		for idx, c := range candidates {
			if c.depth != candidates[0].depth {
				visible = candidates[:idx]
				break
			}
		}


		if len(visible) == 1 {
			fields = append(fields, visible[0].field)
			continue
		}

		// the conflict resolves if exactly one candidate is tagged
		var explicit []located
		for _, c := range visible {
			if c.explicit {
				explicit = append(explicit, c)
			}
		}

		if len(explicit) == 1 {
			fields = append(fields, explicit[0].field)
		}
	}

	return fields
}

func nameOf(fi reflect.StructField, structTag string) (name string, explicit bool) {
	tag := fi.Tag.Get(structTag)

	if tag == "" {
		return fi.Name, false
	}

	if tag == "-" {
		// skip this field
		return "", true
	}

	alias, _, found := strings.Cut(tag, ",")
	switch {
	case !found:
		return tag, true

	case alias != "":
		return alias, true

	default:
		// empty alias before the comma, keep the field name
		return fi.Name, false
	}
}
