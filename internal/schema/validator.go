package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	js "github.com/santhosh-tekuri/jsonschema/v5"
)

// FieldError is one entry of a 422 validation body.
type FieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// Validator compiles the per-payload JSON Schemas on first use and keeps the
// compiled forms in an expiring LRU.
type Validator struct {
	compiler *js.Compiler
	cache    *expirable.LRU[string, *js.Schema]
}

// NewValidator creates a validator with a bounded compile cache.
func NewValidator(maxSize int) *Validator {
	c := js.NewCompiler()
	c.ExtractAnnotations = true
	c.AssertFormat = true

	return &Validator{
		compiler: c,
		cache:    expirable.NewLRU[string, *js.Schema](maxSize, nil, time.Hour),
	}
}

func (v *Validator) schemaFor(kind string) (*js.Schema, error) {
	if s, ok := v.cache.Get(kind); ok {
		return s, nil
	}

	src, ok := payloadSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %q", kind)
	}

	url := "mem://schema/" + kind + ".json"
	if err := v.compiler.AddResource(url, bytes.NewReader([]byte(src))); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := v.compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.cache.Add(kind, compiled)
	return compiled, nil
}

// Validate checks a request body against the named payload schema. A non-nil
// error means the body was not valid JSON or the schema is unknown; a
// non-empty slice carries per-field failures for a 422 response.
func (v *Validator) Validate(kind string, payload []byte) ([]FieldError, error) {
	compiled, err := v.schemaFor(kind)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	err = compiled.Validate(value)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*js.ValidationError)
	if !ok {
		return nil, err
	}
	return flatten(ve), nil
}

// flatten walks the cause tree down to leaf failures and maps each one to a
// body location the way FastAPI reports them.
func flatten(ve *js.ValidationError) []FieldError {
	var out []FieldError
	var walk func(e *js.ValidationError)
	walk = func(e *js.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		out = append(out, leafErrors(e)...)
	}
	walk(ve)
	return out
}

func leafErrors(e *js.ValidationError) []FieldError {
	loc := []any{"body"}
	for _, seg := range strings.Split(strings.TrimPrefix(e.InstanceLocation, "/"), "/") {
		if seg != "" {
			loc = append(loc, seg)
		}
	}

	// Missing required properties are reported at the parent instance; split
	// them into one error per property name.
	if names, ok := missingProperties(e.Message); ok {
		errs := make([]FieldError, 0, len(names))
		for _, name := range names {
			fieldLoc := append(append([]any{}, loc...), name)
			errs = append(errs, FieldError{Loc: fieldLoc, Msg: "field required"})
		}
		return errs
	}

	return []FieldError{{Loc: loc, Msg: e.Message}}
}

func missingProperties(msg string) ([]string, bool) {
	const prefix = "missing properties: "
	if !strings.HasPrefix(msg, prefix) {
		return nil, false
	}
	var names []string
	for _, part := range strings.Split(strings.TrimPrefix(msg, prefix), ",") {
		names = append(names, strings.Trim(strings.TrimSpace(part), "'"))
	}
	return names, true
}
