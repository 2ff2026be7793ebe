// Package validator wraps go-playground/validator behind a small struct so
// handlers can take it as a dependency.
package validator

import "github.com/go-playground/validator/v10"

// Validator validates transport structs against their validate tags.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator. Custom rules register through RegisterValidation.
func New() *Validator {
	return &Validator{
		v: validator.New(),
	}
}

// Struct validates s against its validate tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single value against a tag expression.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation adds a custom named rule.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
