package provider

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierString(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   string
		wantOK bool
	}{
		{"json number", json.Number("660271"), "660271", true},
		{"json number float form", json.Number("660271.0"), "660271", true},
		{"float64", float64(545361), "545361", true},
		{"fractional float", 1.5, "", false},
		{"infinite float", math.Inf(1), "", false},
		{"int", 12345, "12345", true},
		{"int64", int64(7), "7", true},
		{"string", " 42 ", "42", true},
		{"empty string", "", "", false},
		{"nil", nil, "", false},
		{"bool", true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IdentifierString(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFrom(t *testing.T) {
	r := ResolveFrom("1", nil)
	assert.Equal(t, Found, r.Outcome)
	assert.Equal(t, "1", r.ID)

	r = ResolveFrom("", ErrNotFound)
	assert.Equal(t, NotFound, r.Outcome)
	assert.NoError(t, r.Err)

	boom := errors.New("boom")
	r = ResolveFrom("", boom)
	assert.Equal(t, LookupFailed, r.Outcome)
	assert.ErrorIs(t, r.Err, boom)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "failed", LookupFailed.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
