// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	UserID string  `json:"user_id" validate:"required,entity_id,max=16"`
	Role   string  `json:"role" validate:"omitempty,oneof=user assistant"`
	Weight float64 `json:"weight" validate:"gt=0,lte=10"`
	Note   string  `json:"-" validate:"max=3"`
	Plain  int     `validate:"gte=1"`
}

func validSample() sampleRequest {
	return sampleRequest{UserID: "u1", Role: "user", Weight: 1, Plain: 1}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*sampleRequest)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing id", func(r *sampleRequest) { r.UserID = "" }, "user_id", "required", "user_id is required"},
		{"id with space", func(r *sampleRequest) { r.UserID = "a b" }, "user_id", "entity_id", "user_id must be a non-empty id without whitespace"},
		{"id with newline", func(r *sampleRequest) { r.UserID = "a\nb" }, "user_id", "entity_id", ""},
		{"long id", func(r *sampleRequest) { r.UserID = strings.Repeat("x", 17) }, "user_id", "max", "user_id must be at most 16 characters"},
		{"bad role", func(r *sampleRequest) { r.Role = "system" }, "role", "oneof", "role must be one of: user assistant"},
		{"zero weight", func(r *sampleRequest) { r.Weight = 0 }, "weight", "gt", "weight must be greater than 0"},
		{"heavy weight", func(r *sampleRequest) { r.Weight = 11 }, "weight", "lte", "weight must be less than or equal to 10"},
		{"untagged field", func(r *sampleRequest) { r.Plain = 0 }, "Plain", "gte", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSample()
			tt.modify(&req)

			verr := ValidateStruct(&req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want failure")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	req := validSample()
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("ValidateStruct() = %v", verr)
	}
}

func TestToAPIError(t *testing.T) {
	req := validSample()
	req.UserID = ""
	single := ValidateStruct(&req).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Details["field"] != "user_id" {
		t.Errorf("single = %+v", single)
	}

	req.Weight = 0
	multi := ValidateStruct(&req).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("multi details = %+v", multi.Details)
	}
	if !strings.Contains(multi.Message, "user_id is required") || !strings.Contains(multi.Message, "weight must be greater than 0") {
		t.Errorf("multi message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty message = %q", empty.Message)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil || verr.Errors()[0].Field() != "unknown" {
		t.Errorf("ValidateStruct(string) = %v", verr)
	}
}
