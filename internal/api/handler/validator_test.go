package handler

import (
	"errors"
	"testing"
)

func TestValidNIF(t *testing.T) {
	tests := map[string]bool{
		"12345678Z": true,
		"00000000T": true,
		"12345678A": false,
		"1234567Z":  false,
		"12345678z": false,
		"":          false,
	}
	for in, want := range tests {
		if got := validNIF(in); got != want {
			t.Fatalf("validNIF(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidator_CustomTags(t *testing.T) {
	v := NewValidator()

	company := companyRequest{Name: "Acme", CIF: "B12345678", Street: "Main", Number: 1, Postal: 28001, City: "Madrid", Province: "Madrid"}
	if err := v.Validate(&company); err != nil {
		t.Fatalf("valid company rejected: %v", err)
	}

	company.CIF = "12345678B"
	company.Postal = 999
	err := v.Validate(&company)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", ve.Fields)
	}
	if ve.Fields[0].Field != "cif" || ve.Fields[0].Message != "cif must be a valid CIF" {
		t.Fatalf("unexpected cif error: %+v", ve.Fields[0])
	}
	if ve.Fields[1].Field != "postal" {
		t.Fatalf("unexpected postal error: %+v", ve.Fields[1])
	}
}

func TestValidator_ProjectDates(t *testing.T) {
	v := NewValidator()
	req := createProjectRequest{
		Name:        "Warehouse",
		ProjectCode: "P-1",
		Code:        "W",
		Address:     addressRequest{Street: "Main", Number: 3, Postal: 28001, City: "Madrid", Province: "Madrid"},
		ClientID:    "65f1a2b3c4d5e6f7a8b9c0d1",
		Begin:       "01-02-2025",
		End:         "2025-02-10",
	}

	err := v.Validate(&req)
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 1 || ve.Fields[0].Field != "end" {
		t.Fatalf("expected a single end error, got %v", err)
	}

	req.End = "10-02-2025"
	if err := v.Validate(&req); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	req.ClientID = "not-an-id"
	if err := v.Validate(&req); err == nil {
		t.Fatalf("expected clientId error")
	}
}

func TestValidator_DeliveryNoteFormat(t *testing.T) {
	v := NewValidator()
	zero := 0.0
	req := createDeliveryNoteRequest{
		ClientID:    "65f1a2b3c4d5e6f7a8b9c0d1",
		ProjectID:   "65f1a2b3c4d5e6f7a8b9c0d2",
		Format:      "hours",
		Hours:       &zero,
		Description: "Plastering",
	}
	if err := v.Validate(&req); err != nil {
		t.Fatalf("valid note rejected: %v", err)
	}

	req.Format = "days"
	if err := v.Validate(&req); err == nil {
		t.Fatalf("expected format error")
	}
}
