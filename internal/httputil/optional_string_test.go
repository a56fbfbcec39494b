package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString_Decode(t *testing.T) {
	type patch struct {
		CategoryID OptionalString `json:"category_id"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"category_id":null}`, true, nil},
		{"value", `{"category_id":"guides"}`, true, strPtr("guides")},
		{"empty", `{"category_id":""}`, true, strPtr("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantPresent, p.CategoryID.Present)
			assert.Equal(t, tt.wantValue, p.CategoryID.Value)
		})
	}

	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"category_id":42}`), &p))
}

func TestOptionalString_Apply(t *testing.T) {
	current := strPtr("policies")

	assert.Same(t, current, OptionalString{}.Apply(current))
	assert.Nil(t, OptionalString{Present: true}.Apply(current))
	assert.Nil(t, Set("  ").Apply(current))
	assert.Equal(t, strPtr("guides"), Set(" guides ").Apply(current))
}

func TestOptionalString_Marshal(t *testing.T) {
	out, err := json.Marshal(map[string]OptionalString{"a": {}, "b": Set("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":"x"}`, string(out))
}

func strPtr(s string) *string { return &s }
