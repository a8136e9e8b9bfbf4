package radix

import (
	"testing"
)

// Every kind in the closed set must render without panicking. Go cannot
// enforce switch exhaustiveness at compile time, so a kind added to
// AllValueKinds without a rendering shows up here.
func TestParseScryptoValueAllKinds(t *testing.T) {
	samples := map[ValueKind]*ScryptoValue{
		ValueKindBool:               {Kind: ValueKindBool, Value: true},
		ValueKindI8:                 {Kind: ValueKindI8, Value: "-8"},
		ValueKindI16:                {Kind: ValueKindI16, Value: "-16"},
		ValueKindI32:                {Kind: ValueKindI32, Value: "-32"},
		ValueKindI64:                {Kind: ValueKindI64, Value: "-64"},
		ValueKindI128:               {Kind: ValueKindI128, Value: "-128"},
		ValueKindU8:                 {Kind: ValueKindU8, Value: "8"},
		ValueKindU16:                {Kind: ValueKindU16, Value: "16"},
		ValueKindU32:                {Kind: ValueKindU32, Value: "32"},
		ValueKindU64:                {Kind: ValueKindU64, Value: "64"},
		ValueKindU128:               {Kind: ValueKindU128, Value: "128"},
		ValueKindDecimal:            {Kind: ValueKindDecimal, Value: "10.5"},
		ValueKindPreciseDecimal:     {Kind: ValueKindPreciseDecimal, Value: "10.51"},
		ValueKindString:             {Kind: ValueKindString, Value: "text"},
		ValueKindBytes:              {Kind: ValueKindBytes, Hex: "DEADBEEF"},
		ValueKindArray:              {Kind: ValueKindArray, Elements: []ScryptoValue{{Kind: ValueKindU8, Value: "1"}}},
		ValueKindTuple:              {Kind: ValueKindTuple, Fields: []ScryptoValue{{Kind: ValueKindU8, Value: "1"}}},
		ValueKindMap:                {Kind: ValueKindMap, Entries: []ScryptoMapEntry{{Key: ScryptoValue{Kind: ValueKindString, Value: "k"}, Value: ScryptoValue{Kind: ValueKindU8, Value: "1"}}}},
		ValueKindEnum:               {Kind: ValueKindEnum, VariantName: "Variant"},
		ValueKindReference:          {Kind: ValueKindReference, Value: "resource_rdx1abc"},
		ValueKindOwn:                {Kind: ValueKindOwn, Value: "internal_vault_rdx1abc"},
		ValueKindNonFungibleLocalId: {Kind: ValueKindNonFungibleLocalId, Value: "#1#"},
	}

	for _, kind := range AllValueKinds {
		sample, ok := samples[kind]
		if !ok {
			t.Fatalf("no sample value for kind %s", kind)
		}

		out := ParseScryptoValue(sample)
		if out.Value == "" {
			t.Fatalf("kind %s rendered empty", kind)
		}
	}
}

func TestParseScryptoValueScalars(t *testing.T) {
	testCases := []struct {
		name   string
		value  *ScryptoValue
		expect string
	}{
		{"bool true", &ScryptoValue{Kind: ValueKindBool, Value: true}, "true"},
		{"bool false", &ScryptoValue{Kind: ValueKindBool, Value: false}, "false"},
		{"decimal", &ScryptoValue{Kind: ValueKindDecimal, Value: "123.456"}, "123.456"},
		{"bytes lowercased", &ScryptoValue{Kind: ValueKindBytes, Hex: "DEADBEEF"}, "deadbeef"},
		{"string", &ScryptoValue{Kind: ValueKindString, Value: "Radix"}, "Radix"},
		{"reference", &ScryptoValue{Kind: ValueKindReference, Value: "component_rdx1xyz"}, "component_rdx1xyz"},
		{"local id", &ScryptoValue{Kind: ValueKindNonFungibleLocalId, Value: "#42#"}, "#42#"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			out := ParseScryptoValue(testCase.value)
			if out.Value != testCase.expect {
				t.Fatalf("expected %q, got %q", testCase.expect, out.Value)
			}
		})
	}
}

func TestParseScryptoValueTupleFields(t *testing.T) {
	tuple := &ScryptoValue{
		Kind: ValueKindTuple,
		Fields: []ScryptoValue{
			{Kind: ValueKindString, FieldName: "name", Value: "Radix"},
			{Kind: ValueKindString, FieldName: "symbol", Value: "XRD"},
		},
	}

	out := ParseScryptoValue(tuple)
	if out.Value != "(Radix,XRD)" {
		t.Fatalf("unexpected tuple rendering: %q", out.Value)
	}

	// Each field must remain independently extractable as a (name, value)
	// pair, not just concatenated into the parent rendering.
	name := ParseScryptoValue(&tuple.Fields[0])
	if name.Name != "name" || name.Value != "Radix" {
		t.Fatalf("unexpected field pair: %+v", name)
	}

	symbol := ParseScryptoValue(&tuple.Fields[1])
	if symbol.Name != "symbol" || symbol.Value != "XRD" {
		t.Fatalf("unexpected field pair: %+v", symbol)
	}
}

func TestParseScryptoValueOptionEnum(t *testing.T) {
	some := &ScryptoValue{
		Kind:        ValueKindEnum,
		TypeName:    "Option",
		VariantName: "Some",
		Fields:      []ScryptoValue{{Kind: ValueKindString, Value: "foo"}},
	}
	if out := ParseScryptoValue(some); out.Value != "foo" {
		t.Fatalf("expected Some to unwrap to inner value, got %q", out.Value)
	}

	none := &ScryptoValue{
		Kind:        ValueKindEnum,
		TypeName:    "Option",
		VariantName: "None",
	}
	if out := ParseScryptoValue(none); out.Value != "None" {
		t.Fatalf("expected literal None, got %q", out.Value)
	}
}

func TestParseScryptoValueEnum(t *testing.T) {
	withFields := &ScryptoValue{
		Kind:        ValueKindEnum,
		VariantName: "Color",
		Fields: []ScryptoValue{
			{Kind: ValueKindU8, Value: "255"},
			{Kind: ValueKindU8, Value: "0"},
		},
	}
	if out := ParseScryptoValue(withFields); out.Value != "Color(255,0)" {
		t.Fatalf("unexpected enum rendering: %q", out.Value)
	}

	noFields := &ScryptoValue{Kind: ValueKindEnum, VariantName: "Empty"}
	if out := ParseScryptoValue(noFields); out.Value != "Empty" {
		t.Fatalf("expected parens omitted with zero fields, got %q", out.Value)
	}
}

func TestParseScryptoValueMap(t *testing.T) {
	typed := &ScryptoValue{
		Kind:      ValueKindMap,
		KeyKind:   ValueKindString,
		ValueKind: ValueKindU32,
		Entries: []ScryptoMapEntry{
			{Key: ScryptoValue{Kind: ValueKindString, Value: "a"}, Value: ScryptoValue{Kind: ValueKindU32, Value: "1"}},
			{Key: ScryptoValue{Kind: ValueKindString, Value: "b"}, Value: ScryptoValue{Kind: ValueKindU32, Value: "2"}},
		},
	}
	if out := ParseScryptoValue(typed); out.Value != "Map<String,U32>(a => 1,b => 2)" {
		t.Fatalf("unexpected map rendering: %q", out.Value)
	}

	untyped := &ScryptoValue{
		Kind: ValueKindMap,
		Entries: []ScryptoMapEntry{
			{Key: ScryptoValue{Kind: ValueKindString, Value: "a"}, Value: ScryptoValue{Kind: ValueKindU32, Value: "1"}},
		},
	}
	if out := ParseScryptoValue(untyped); out.Value != "(a => 1)" {
		t.Fatalf("expected no prefix without declared kinds, got %q", out.Value)
	}
}

func TestParseScryptoValueNested(t *testing.T) {
	nested := &ScryptoValue{
		Kind: ValueKindTuple,
		Fields: []ScryptoValue{
			{
				Kind: ValueKindArray,
				Elements: []ScryptoValue{
					{Kind: ValueKindU8, Value: "1"},
					{Kind: ValueKindU8, Value: "2"},
				},
			},
			{
				Kind:        ValueKindEnum,
				TypeName:    "Option",
				VariantName: "Some",
				Fields:      []ScryptoValue{{Kind: ValueKindString, Value: "inner"}},
			},
		},
	}

	if out := ParseScryptoValue(nested); out.Value != "((1,2),inner)" {
		t.Fatalf("unexpected nested rendering: %q", out.Value)
	}
}
