package validation_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

type sample struct {
	Title    string  `json:"title" validate:"required,max=10"`
	Category string  `json:"category" validate:"required,oneof=a b"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	bad := "nope"

	tests := []struct {
		name       string
		value      sample
		wantFields []string
	}{
		{"valid", sample{Title: "ok", Category: "a"}, nil},
		{"missing title", sample{Category: "b"}, []string{"title"}},
		{"long title", sample{Title: strings.Repeat("x", 11), Category: "a"}, []string{"title"}},
		{"bad category", sample{Title: "ok", Category: "c"}, []string{"category"}},
		{"bad email", sample{Title: "ok", Category: "a", Email: &bad}, []string{"email"}},
		{"several", sample{}, []string{"category", "title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Struct(tt.value)

			got := errs.Fields()
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Fields() = %v, want %v", got, tt.wantFields)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("Fields()[%d] = %q, want %q", i, got[i], tt.wantFields[i])
				}
			}
		})
	}
}

func TestErrors_Err(t *testing.T) {
	errs := validation.Errors{}
	if errs.Err() != nil {
		t.Error("Err() on empty Errors should be nil")
	}

	errs.Add("pdf", "The pdf field is required.")
	err := fmt.Errorf("create project: %w", errs.Err())

	got, ok := validation.As(err)
	if !ok {
		t.Fatal("As() did not find Errors in wrapped error")
	}
	if !got.Has("pdf") {
		t.Errorf("Has(pdf) = false, errors = %v", got)
	}
	if !errors.As(err, new(validation.Errors)) {
		t.Error("errors.As failed")
	}
}

func TestErrors_Message(t *testing.T) {
	errs := validation.Errors{}
	errs.Add("category", "The selected category is invalid.")
	errs.Add("title", "The title field is required.")
	errs.Add("pdf", "The pdf field is required.")

	want := "The selected category is invalid. (and 2 more errors)"
	if got := errs.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
