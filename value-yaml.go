package errpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLSource is a [Deserializer] over a parsed YAML document. Mapping entry
// order is preserved and scalar kinds follow the resolved YAML tag, so
// unquoted integer keys arrive as integers, not strings.
type YAMLSource struct {
	node *yaml.Node
}

var _ Deserializer = YAMLSource{}

func NewYAMLSource(data []byte) (YAMLSource, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return YAMLSource{}, err
	}

	return YAMLSource{node: &node}, nil
}

// resolve strips the document wrapper and follows alias nodes.
func (s YAMLSource) resolve() *yaml.Node {
	node := s.node

	for {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]

		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias

		default:
			return node
		}
	}
}

func (s YAMLSource) DecodeAny(v Visitor) (any, error) {
	node := s.resolve()

	switch node.Kind {
	case yaml.SequenceNode:
		return v.VisitSeq(&yamlSeqAccess{nodes: node.Content})

	case yaml.MappingNode:
		return v.VisitMap(&yamlMapAccess{nodes: node.Content})

	case yaml.ScalarNode:
		return visitYAMLScalar(v, node)

	default:
		// empty document
		return v.VisitNil()
	}
}

func visitYAMLScalar(v Visitor, node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return v.VisitNil()

	case "!!bool":
		value, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, fmt.Errorf("parse bool %q: %w", node.Value, err)
		}

		return v.VisitBool(value)

	case "!!int":
		if value, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return v.VisitInt(value)
		}

		value, err := strconv.ParseUint(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parse integer %q: %w", node.Value, err)
		}

		return v.VisitUint(value)

	case "!!float":
		switch node.Value {
		case ".inf", "+.inf", ".Inf", "+.Inf":
			return v.VisitFloat(math.Inf(1))
		case "-.inf", "-.Inf":
			return v.VisitFloat(math.Inf(-1))
		case ".nan", ".NaN":
			return v.VisitFloat(math.NaN())
		}

		value, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse float %q: %w", node.Value, err)
		}

		return v.VisitFloat(value)

	default:
		return v.VisitString(node.Value)
	}
}

func (s YAMLSource) DecodeBool(v Visitor) (any, error)    { return s.DecodeAny(v) }
func (s YAMLSource) DecodeInt8(v Visitor) (any, error)    { return s.DecodeAny(v) }
func (s YAMLSource) DecodeInt16(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s YAMLSource) DecodeInt32(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s YAMLSource) DecodeInt64(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s YAMLSource) DecodeInt(v Visitor) (any, error)     { return s.DecodeAny(v) }
func (s YAMLSource) DecodeUint8(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s YAMLSource) DecodeUint16(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s YAMLSource) DecodeUint32(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s YAMLSource) DecodeUint64(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s YAMLSource) DecodeUint(v Visitor) (any, error)    { return s.DecodeAny(v) }
func (s YAMLSource) DecodeFloat32(v Visitor) (any, error) { return s.DecodeAny(v) }
func (s YAMLSource) DecodeFloat64(v Visitor) (any, error) { return s.DecodeAny(v) }
func (s YAMLSource) DecodeString(v Visitor) (any, error)  { return s.DecodeAny(v) }
func (s YAMLSource) DecodeBytes(v Visitor) (any, error)   { return s.DecodeAny(v) }
func (s YAMLSource) DecodeUnit(v Visitor) (any, error)    { return s.DecodeAny(v) }

func (s YAMLSource) DecodeUnitStruct(name string, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

func (s YAMLSource) DecodeNewtypeStruct(name string, v Visitor) (any, error) {
	return v.VisitNewtypeStruct(s)
}

func (s YAMLSource) DecodeOption(v Visitor) (any, error) {
	node := s.resolve()

	if node.Kind == 0 || node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return v.VisitNil()
	}

	return v.VisitSome(s)
}

func (s YAMLSource) DecodeSeq(v Visitor) (any, error) { return s.DecodeAny(v) }

func (s YAMLSource) DecodeTuple(n int, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

func (s YAMLSource) DecodeTupleStruct(name string, n int, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

func (s YAMLSource) DecodeMap(v Visitor) (any, error) { return s.DecodeAny(v) }

func (s YAMLSource) DecodeStruct(name string, fields []string, v Visitor) (any, error) {
	return s.DecodeAny(v)
}

// DecodeEnum decodes a plain string as a variant without payload and a
// mapping with a single entry as a variant with payload.
func (s YAMLSource) DecodeEnum(name string, variants []string, v Visitor) (any, error) {
	node := s.resolve()

	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!str":
		return v.VisitEnum(yamlEnumAccess{variant: node})

	case node.Kind == yaml.MappingNode && len(node.Content) == 2:
		return v.VisitEnum(yamlEnumAccess{variant: node.Content[0], payload: node.Content[1]})

	default:
		return s.DecodeAny(v)
	}
}

func (s YAMLSource) DecodeIdentifier(v Visitor) (any, error) { return s.DecodeAny(v) }

func (s YAMLSource) DecodeIgnoredAny(v Visitor) (any, error) {
	// the node tree is already parsed, nothing to drain
	return v.VisitNil()
}

type yamlSeqAccess struct {
	nodes []*yaml.Node
}

func (a *yamlSeqAccess) NextElement(seed Seed) (any, bool, error) {
	if len(a.nodes) == 0 {
		return nil, false, nil
	}

	node := a.nodes[0]
	a.nodes = a.nodes[1:]

	val, err := seed.DecodeValue(YAMLSource{node: node})
	return val, true, err
}

func (a *yamlSeqAccess) SizeHint() (int, bool) {
	return len(a.nodes), true
}

// yamlMapAccess iterates the Content of a mapping node, which holds keys
// and values alternating.
type yamlMapAccess struct {
	nodes   []*yaml.Node
	pending *yaml.Node
}

func (a *yamlMapAccess) NextKey(seed Seed) (any, bool, error) {
	if len(a.nodes) < 2 {
		return nil, false, nil
	}

	key, value := a.nodes[0], a.nodes[1]
	a.nodes = a.nodes[2:]
	a.pending = value

	val, err := seed.DecodeValue(YAMLSource{node: key})
	return val, true, err
}

func (a *yamlMapAccess) NextValue(seed Seed) (any, error) {
	return seed.DecodeValue(YAMLSource{node: a.pending})
}

func (a *yamlMapAccess) SizeHint() (int, bool) {
	return len(a.nodes) / 2, true
}

type yamlEnumAccess struct {
	variant *yaml.Node
	payload *yaml.Node
}

func (a yamlEnumAccess) Variant(seed Seed) (any, VariantAccess, error) {
	val, err := seed.DecodeValue(YAMLSource{node: a.variant})
	if err != nil {
		return nil, nil, err
	}

	return val, yamlVariantAccess{payload: a.payload}, nil
}

type yamlVariantAccess struct {
	payload *yaml.Node
}

func (a yamlVariantAccess) UnitVariant() error {
	if a.payload != nil {
		return errors.New("unexpected variant payload")
	}

	return nil
}

func (a yamlVariantAccess) NewtypeVariant(seed Seed) (any, error) {
	if a.payload == nil {
		return nil, errors.New("missing variant payload")
	}

	return seed.DecodeValue(YAMLSource{node: a.payload})
}

func (a yamlVariantAccess) TupleVariant(n int, v Visitor) (any, error) {
	if a.payload == nil {
		return nil, errors.New("missing variant payload")
	}

	return YAMLSource{node: a.payload}.DecodeTuple(n, v)
}

func (a yamlVariantAccess) StructVariant(fields []string, v Visitor) (any, error) {
	if a.payload == nil {
		return nil, errors.New("missing variant payload")
	}

	return YAMLSource{node: a.payload}.DecodeStruct("", fields, v)
}
