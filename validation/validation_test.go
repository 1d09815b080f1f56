package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/seqinput/errors"
)

func TestValidatorMinAndCustom(t *testing.T) {
	v := New().Min("num_readers", 0, 1).Custom(false, "target_files", "must match source_files")
	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "num_readers: must be at least 1") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestValidatorPasses(t *testing.T) {
	v := New().Min("capacity", 1, 1).Min("num_epochs", 0, 0).Custom(true, "target_files", "unused")
	if appErr := v.Validate(); appErr != nil {
		t.Errorf("expected no error, got %v", appErr)
	}
	if len(v.Errors()) != 0 {
		t.Errorf("expected no failed checks, got %v", v.Errors())
	}
}

func TestValidatorSingleFieldDetail(t *testing.T) {
	appErr := New().Min("num_epochs", -1, 0).Validate()
	if appErr == nil || appErr.Details["field"] != "num_epochs" {
		t.Fatalf("expected field=num_epochs detail, got %v", appErr)
	}
}

type sampleArgs struct {
	Files      []string `mapstructure:"files" validate:"required,min=1"`
	NumReaders int      `mapstructure:"num_readers" validate:"gte=1"`
	Field      string   `json:"field_name" validate:"required"`
	Plain      string   `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	err := Validate(sampleArgs{})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	for _, want := range []string{"files: is required", "num_readers: must be at least 1", "field_name: is required", "plain: is required"} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected %q in %q", want, appErr.Message)
		}
	}
}

func TestValidateStructSingleFieldDetail(t *testing.T) {
	err := Validate(sampleArgs{Files: []string{"a"}, NumReaders: 1, Field: "x"})
	appErr, _ := errors.AsAppError(err)
	if appErr == nil || appErr.Details["field"] != "plain" {
		t.Fatalf("expected field=plain detail, got %v", err)
	}
}

func TestValidateStructOK(t *testing.T) {
	if err := Validate(sampleArgs{Files: []string{"a"}, NumReaders: 2, Field: "f", Plain: "p"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("SourceFiles"); got != "source_files" {
		t.Errorf("got %q", got)
	}
}
