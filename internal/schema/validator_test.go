package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locs(errs []FieldError) [][]any {
	out := make([][]any, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Loc)
	}
	return out
}

func TestValidPayloadPasses(t *testing.T) {
	v := NewValidator(16)
	errs, err := v.Validate("technology", []byte(`{"name":"Go","category":"BACKEND","icon_url":null}`))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestMissingRequiredFieldsReportedPerField(t *testing.T) {
	v := NewValidator(16)
	errs, err := v.Validate("technology", []byte(`{}`))
	require.NoError(t, err)
	require.NotEmpty(t, errs)

	assert.Contains(t, locs(errs), []any{"body", "name"})
	assert.Contains(t, locs(errs), []any{"body", "category"})
	for _, e := range errs {
		assert.Equal(t, "field required", e.Msg)
	}
}

func TestEnumViolationLocatesField(t *testing.T) {
	v := NewValidator(16)
	errs, err := v.Validate("technology", []byte(`{"name":"Go","category":"QUANTUM"}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, []any{"body", "category"}, errs[0].Loc)
	assert.NotEmpty(t, errs[0].Msg)
}

func TestNestedArrayErrorsKeepIndexInLocation(t *testing.T) {
	v := NewValidator(16)
	errs, err := v.Validate("project", []byte(`{
		"title": "Portfolio",
		"category": "WEB",
		"previews": [{"image_url": "http://x/1.png"}, {}]
	}`))
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, locs(errs), []any{"body", "previews", "1", "image_url"})
}

func TestDatePatternEnforced(t *testing.T) {
	v := NewValidator(16)
	errs, err := v.Validate("experience", []byte(`{
		"job_title": "Engineer",
		"company": "Initech",
		"start_date": "March 2022"
	}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, []any{"body", "start_date"}, errs[0].Loc)
}

func TestUnknownKindIsAnError(t *testing.T) {
	v := NewValidator(16)
	_, err := v.Validate("gadget", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gadget")
}

func TestMalformedJSONIsAnError(t *testing.T) {
	v := NewValidator(16)
	_, err := v.Validate("client", []byte(`{"name": `))
	require.Error(t, err)
}

func TestCompiledSchemaIsCached(t *testing.T) {
	v := NewValidator(16)
	_, err := v.Validate("social", []byte(`{"platform":"github","url":"https://github.com/ada"}`))
	require.NoError(t, err)

	_, ok := v.cache.Get("social")
	assert.True(t, ok)

	// Second validation reuses the cached compile.
	errs, err := v.Validate("social", []byte(`{"platform":"github","url":"ftp://nope"}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, []any{"body", "url"}, errs[0].Loc)
}
