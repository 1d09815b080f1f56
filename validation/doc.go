// Package validation checks constructor arguments and options.
//
// Struct tag validation (go-playground/validator) reports fields under their
// mapstructure names, so a missing `source_files` argument reads as
// "source_files: is required". Programmatic checks collect errors the same way.
// Both produce INVALID_ARGUMENT errors.
//
// # Struct Tag Validation
//
//	type args struct {
//	    Files []string `mapstructure:"files" validate:"required,min=1"`
//	}
//	err := validation.Validate(a)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("num_readers", n, 1)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
