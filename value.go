package radix

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind enumerates the kinds in the gateway's programmatic JSON value
// model. The set is closed: ParseScryptoValue handles every constant, and the
// kind matrix test fails the suite if a constant gains no rendering.
type ValueKind string

const (
	ValueKindBool               ValueKind = "Bool"
	ValueKindI8                 ValueKind = "I8"
	ValueKindI16                ValueKind = "I16"
	ValueKindI32                ValueKind = "I32"
	ValueKindI64                ValueKind = "I64"
	ValueKindI128               ValueKind = "I128"
	ValueKindU8                 ValueKind = "U8"
	ValueKindU16                ValueKind = "U16"
	ValueKindU32                ValueKind = "U32"
	ValueKindU64                ValueKind = "U64"
	ValueKindU128               ValueKind = "U128"
	ValueKindDecimal            ValueKind = "Decimal"
	ValueKindPreciseDecimal     ValueKind = "PreciseDecimal"
	ValueKindString             ValueKind = "String"
	ValueKindBytes              ValueKind = "Bytes"
	ValueKindArray              ValueKind = "Array"
	ValueKindTuple              ValueKind = "Tuple"
	ValueKindMap                ValueKind = "Map"
	ValueKindEnum               ValueKind = "Enum"
	ValueKindReference          ValueKind = "Reference"
	ValueKindOwn                ValueKind = "Own"
	ValueKindNonFungibleLocalId ValueKind = "NonFungibleLocalId"
)

var AllValueKinds = []ValueKind{
	ValueKindBool,
	ValueKindI8,
	ValueKindI16,
	ValueKindI32,
	ValueKindI64,
	ValueKindI128,
	ValueKindU8,
	ValueKindU16,
	ValueKindU32,
	ValueKindU64,
	ValueKindU128,
	ValueKindDecimal,
	ValueKindPreciseDecimal,
	ValueKindString,
	ValueKindBytes,
	ValueKindArray,
	ValueKindTuple,
	ValueKindMap,
	ValueKindEnum,
	ValueKindReference,
	ValueKindOwn,
	ValueKindNonFungibleLocalId,
}

func (k ValueKind) Valid() bool {
	for _, known := range AllValueKinds {
		if k == known {
			return true
		}
	}
	return false
}

// The ledger wraps optional values in an enum named Option with a Some
// variant carrying one field, or a None variant carrying nothing.
const (
	OptionTypeName    = "Option"
	OptionVariantSome = "Some"
	OptionVariantNone = "None"
)

// ScryptoValue is one node of the gateway's programmatic JSON tagged union.
// Only the fields relevant to the declared Kind are populated on the wire;
// everything else stays at its zero value.
type ScryptoValue struct {
	Kind        ValueKind         `json:"kind"`
	TypeName    string            `json:"type_name,omitempty"`
	FieldName   string            `json:"field_name,omitempty"`
	VariantId   int               `json:"variant_id,omitempty"`
	VariantName string            `json:"variant_name,omitempty"`
	ElementKind ValueKind         `json:"element_kind,omitempty"`
	KeyKind     ValueKind         `json:"key_kind,omitempty"`
	ValueKind   ValueKind         `json:"value_kind,omitempty"`
	Value       interface{}       `json:"value,omitempty"`
	Hex         string            `json:"hex,omitempty"`
	Fields      []ScryptoValue    `json:"fields,omitempty"`
	Elements    []ScryptoValue    `json:"elements,omitempty"`
	Entries     []ScryptoMapEntry `json:"entries,omitempty"`
}

type ScryptoMapEntry struct {
	Key   ScryptoValue `json:"key"`
	Value ScryptoValue `json:"value"`
}

// NameValue is the flattened rendering of one value node: the field name the
// parent tuple declared for it (empty at the root) and a manifest compatible
// string representation.
type NameValue struct {
	Name  string
	Value string
}

// ParseScryptoValue renders a node into a NameValue, recursing through
// composite kinds. Parsing is total: every kind renders to some string, and
// nested structures render parenthesized without loss. The declared field
// name is threaded through unchanged so callers can re-identify well known
// attributes.
func ParseScryptoValue(v *ScryptoValue) (out NameValue) {
	out.Name = v.FieldName

	switch v.Kind {
	case ValueKindBool,
		ValueKindI8, ValueKindI16, ValueKindI32, ValueKindI64, ValueKindI128,
		ValueKindU8, ValueKindU16, ValueKindU32, ValueKindU64, ValueKindU128,
		ValueKindDecimal, ValueKindPreciseDecimal,
		ValueKindString, ValueKindReference, ValueKindOwn, ValueKindNonFungibleLocalId:
		out.Value = v.scalarString()

	case ValueKindBytes:
		out.Value = strings.ToLower(v.Hex)

	case ValueKindArray:
		out.Value = "(" + joinScryptoValues(v.Elements) + ")"

	case ValueKindTuple:
		out.Value = "(" + joinScryptoValues(v.Fields) + ")"

	case ValueKindMap:
		rendered := make([]string, 0, len(v.Entries))
		for i := range v.Entries {
			key := ParseScryptoValue(&v.Entries[i].Key)
			value := ParseScryptoValue(&v.Entries[i].Value)
			rendered = append(rendered, fmt.Sprintf("%s => %s", key.Value, value.Value))
		}
		prefix := ""
		if v.KeyKind != "" && v.ValueKind != "" {
			prefix = fmt.Sprintf("Map<%s,%s>", v.KeyKind, v.ValueKind)
		}
		out.Value = prefix + "(" + strings.Join(rendered, ",") + ")"

	case ValueKindEnum:
		if v.TypeName == OptionTypeName {
			if v.VariantName == OptionVariantNone {
				out.Value = OptionVariantNone
				return
			}
			if v.VariantName == OptionVariantSome && len(v.Fields) == 1 {
				out.Value = ParseScryptoValue(&v.Fields[0]).Value
				return
			}
		}
		if len(v.Fields) == 0 {
			out.Value = v.VariantName
			return
		}
		out.Value = v.VariantName + "(" + joinScryptoValues(v.Fields) + ")"

	default:
		// An unknown kind can only come from a gateway newer than this
		// library. Render whatever scalar payload it carries.
		log.Debug().Msgf("unhandled value kind '%s'", v.Kind)
		out.Value = v.scalarString()
	}

	return
}

func joinScryptoValues(values []ScryptoValue) string {
	rendered := make([]string, 0, len(values))
	for i := range values {
		rendered = append(rendered, ParseScryptoValue(&values[i]).Value)
	}
	return strings.Join(rendered, ",")
}

func (v *ScryptoValue) scalarString() string {
	switch t := v.Value.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		// Numeric kinds arrive as JSON strings, but tolerate a bare number.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
