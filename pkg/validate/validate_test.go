package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bhandar/pkg/validate"
)

type productInput struct {
	Name       string  `json:"name"       validate:"required,min=2,max=100"`
	Category   string  `json:"category"   validate:"required"`
	Price      float64 `json:"price"      validate:"required,gt=0"`
	Quantity   int     `json:"quantity"   validate:"gte=0"`
	Unit       string  `json:"unit"       validate:"nullable,in=pcs,kg,ltr,box"`
	ExpiryDate string  `json:"expiryDate" validate:"nullable,date"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:       "Basmati Rice",
		Category:   "Grocery",
		Price:      120.50,
		Quantity:   40,
		Unit:       "kg",
		ExpiryDate: "2026-12-31",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["category"]; !ok {
		t.Error("expected category to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0,lte=100000"`
	}
	if errs := validate.Struct(in{Price: -5}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 49.99}); validate.HasErrors(errs) {
		t.Errorf("expected price 49.99 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Gender string `json:"gender" validate:"required,in=male,female,other"`
	}
	if errs := validate.Struct(in{Gender: "unknown"}); !validate.HasErrors(errs) {
		t.Error("expected invalid gender to fail")
	}
	if errs := validate.Struct(in{Gender: "female"}); validate.HasErrors(errs) {
		t.Errorf("expected female to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	// Empty string is nullable, so it passes even though it is not a URL.
	if errs := validate.Struct(in{Website: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Website: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Discount float64 `json:"discount" validate:"required,between=0,100"`
	}
	if errs := validate.Struct(in{Discount: 150}); !validate.HasErrors(errs) {
		t.Error("expected discount above 100 to fail")
	}
	if errs := validate.Struct(in{Discount: 12.5}); validate.HasErrors(errs) {
		t.Errorf("expected discount 12.5 to pass: %v", errs)
	}
}

func TestDateRule(t *testing.T) {
	type in struct {
		ExpiryDate string `json:"expiryDate" validate:"required,date"`
	}
	if errs := validate.Struct(in{ExpiryDate: "soonish"}); !validate.HasErrors(errs) {
		t.Error("expected unparseable date to fail")
	}
	for _, s := range []string{"2026-09-15", "15/09/2026", "Sep 15, 2026"} {
		if errs := validate.Struct(in{ExpiryDate: s}); validate.HasErrors(errs) {
			t.Errorf("expected %q to parse as a date: %v", s, errs)
		}
	}
}

func TestMultiValueInWithTrailingRules(t *testing.T) {
	type in struct {
		Unit string `json:"unit" validate:"required,in=pcs,kg,ltr,max=10"`
	}
	if errs := validate.Struct(in{Unit: "kg"}); validate.HasErrors(errs) {
		t.Errorf("expected kg to pass: %v", errs)
	}
	if errs := validate.Struct(in{Unit: "crate"}); !validate.HasErrors(errs) {
		t.Error("expected unit outside the list to fail")
	}
}
