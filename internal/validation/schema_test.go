package validation

import "testing"

var formSchema = Schema{Fields: []Field{
	{Name: "name", Required: true, Type: TypeString, MinLen: 2, MaxLen: 50},
	{Name: "email", Required: true, Type: TypeString},
	{Name: "phone", Type: TypeString, MaxLen: 20},
}}

func TestAccumulatesErrorsInDeclarationOrder(t *testing.T) {
	_, errs := formSchema.Validate(map[string]any{"phone": "0800"}, Options{})
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "name" || errs[1].Field != "email" {
		t.Fatalf("errors out of declaration order: %v", errs)
	}
	if errs[0].Message != "name is required" {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestAbortEarlyStopsAtFirstFailure(t *testing.T) {
	_, errs := formSchema.Validate(map[string]any{}, Options{AbortEarly: true})
	if len(errs) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(errs))
	}
	if errs[0].Field != "name" {
		t.Fatalf("expected first declared field, got %q", errs[0].Field)
	}
}

func TestNumericCoercion(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "price", Required: true, Type: TypeNumber, Min: Num(0)},
		{Name: "stock_quantity", Required: true, Type: TypeInt, Min: Num(0)},
	}}

	normalized, errs := schema.Validate(map[string]any{
		"price":          "19.99",
		"stock_quantity": "5",
	}, Options{})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if got := normalized["price"].(float64); got != 19.99 {
		t.Fatalf("price not coerced: got %v", got)
	}
	if got := normalized["stock_quantity"].(int64); got != 5 {
		t.Fatalf("stock_quantity not coerced: got %v", got)
	}
}

func TestNonNumericStringRejected(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "price", Required: true, Type: TypeNumber},
	}}

	_, errs := schema.Validate(map[string]any{"price": "abc"}, Options{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Field != "price" || errs[0].Message != "price must be a number" {
		t.Fatalf("unexpected error: %v", errs[0])
	}
}

func TestNonFiniteRejected(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "price", Required: true, Type: TypeNumber},
	}}

	for _, bad := range []string{"NaN", "Inf", "-Inf"} {
		_, errs := schema.Validate(map[string]any{"price": bad}, Options{})
		if len(errs) != 1 {
			t.Fatalf("%s should be rejected, got %v", bad, errs)
		}
	}
}

func TestIntRejectsFraction(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "stock_quantity", Required: true, Type: TypeInt},
	}}

	_, errs := schema.Validate(map[string]any{"stock_quantity": 2.5}, Options{})
	if len(errs) != 1 || errs[0].Message != "stock_quantity must be an integer" {
		t.Fatalf("unexpected result: %v", errs)
	}
}

func TestEnumMembership(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "condition", Required: true, Type: TypeEnum, Enum: []string{"new", "like_new", "used"}},
	}}

	if _, errs := schema.Validate(map[string]any{"condition": "used"}, Options{}); len(errs) != 0 {
		t.Fatalf("valid enum value rejected: %v", errs)
	}

	_, errs := schema.Validate(map[string]any{"condition": "broken"}, Options{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Message != "condition must be one of: new, like_new, used" {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestStringBoundsAndTrimming(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "name", Required: true, Type: TypeString, MinLen: 3, MaxLen: 5},
	}}

	normalized, errs := schema.Validate(map[string]any{"name": "  abc  "}, Options{})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if normalized["name"].(string) != "abc" {
		t.Fatalf("string not trimmed: %q", normalized["name"])
	}

	if _, errs := schema.Validate(map[string]any{"name": "ab"}, Options{}); len(errs) != 1 {
		t.Fatalf("too-short string should fail")
	}
	if _, errs := schema.Validate(map[string]any{"name": "abcdef"}, Options{}); len(errs) != 1 {
		t.Fatalf("too-long string should fail")
	}
}

func TestNumericRange(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "price", Required: true, Type: TypeNumber, Min: Num(1), Max: Num(100)},
	}}

	if _, errs := schema.Validate(map[string]any{"price": 0.5}, Options{}); len(errs) != 1 {
		t.Fatalf("below-min value should fail")
	}
	if _, errs := schema.Validate(map[string]any{"price": 101}, Options{}); len(errs) != 1 {
		t.Fatalf("above-max value should fail")
	}
	if _, errs := schema.Validate(map[string]any{"price": 50}, Options{}); len(errs) != 0 {
		t.Fatalf("in-range value should pass")
	}
}

func TestOptionalFieldSkippedWhenAbsent(t *testing.T) {
	normalized, errs := formSchema.Validate(map[string]any{
		"name":  "Ana",
		"email": "ana@campus.edu",
	}, Options{})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if _, present := normalized["phone"]; present {
		t.Fatalf("absent optional field should not appear in normalized output")
	}
}

func TestUnknownKeysDropped(t *testing.T) {
	normalized, errs := formSchema.Validate(map[string]any{
		"name":    "Ana",
		"email":   "ana@campus.edu",
		"extra":   "ignored",
		"another": 1,
	}, Options{})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if _, present := normalized["extra"]; present {
		t.Fatalf("unknown keys must be dropped")
	}
}
