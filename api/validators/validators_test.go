package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
)

type addItemBody struct {
	ProductID string `json:"product_id" validate:"required"`
}

func TestDecodeJSONBody(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"product_id":"1"}`},
		{name: "missing field", body: `{}`, wantErr: true},
		{name: "unknown field", body: `{"product_id":"1","price":1}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "trailing object", body: `{"product_id":"1"}{"product_id":"2"}`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dest addItemBody
			err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
					t.Fatalf("expected validation code, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dest.ProductID != "1" {
				t.Fatalf("unexpected product id %q", dest.ProductID)
			}
		})
	}
}

func TestParseSortQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?sort=price-high", nil)
	mode, ok, err := ParseSortQuery(req, "sort")
	if err != nil || !ok || mode != enums.SortModePriceHigh {
		t.Fatalf("unexpected result mode=%q ok=%v err=%v", mode, ok, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok, err := ParseSortQuery(req, "sort"); ok || err != nil {
		t.Fatalf("absent sort should be ok=false err=nil")
	}

	req = httptest.NewRequest(http.MethodGet, "/?sort=rating", nil)
	if _, _, err := ParseSortQuery(req, "sort"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseStringQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?category=+Furniture+", nil)
	got, ok := ParseStringQuery(req, "category", 64)
	if !ok || got != "Furniture" {
		t.Fatalf("unexpected %q ok=%v", got, ok)
	}
	if _, ok := ParseStringQuery(httptest.NewRequest(http.MethodGet, "/", nil), "category", 64); ok {
		t.Fatalf("absent parameter should report ok=false")
	}
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	if got := SanitizeString("  héllo ", 2); got != "h" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
	if got := SanitizeString(" abc ", 0); got != "abc" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
}
