package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/amontes/storefront-backend/pkg/errors"
	"github.com/google/uuid"
)

func TestParseQueryIntDefaultsWhenAbsent(t *testing.T) {
	req := httptest.NewRequest("GET", "/products", nil)

	value, err := ParseQueryInt(req, "limit", 25, 0, 200)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != 25 {
		t.Fatalf("expected default 25, got %d", value)
	}
}

func TestParseQueryIntParsesValue(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?limit=12", nil)

	value, err := ParseQueryInt(req, "limit", 0, 0, 200)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != 12 {
		t.Fatalf("expected 12, got %d", value)
	}
}

func TestParseQueryIntRejectsNonNumeric(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?limit=lots", nil)

	_, err := ParseQueryInt(req, "limit", 0, 0, 200)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryIntRejectsOutOfRange(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?limit=9999", nil)

	_, err := ParseQueryInt(req, "limit", 0, 0, 200)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParsePathUUID(t *testing.T) {
	id := uuid.New()

	parsed, err := ParsePathUUID(id.String(), "productID")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != id {
		t.Fatalf("expected %s, got %s", id, parsed)
	}

	if _, err := ParsePathUUID("not-a-uuid", "productID"); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
}
