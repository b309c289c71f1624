package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		str  string
		zero bool
	}{
		{name: "number", in: `12`, str: "12"},
		{name: "string", in: `"abc-1"`, str: "abc-1"},
		{name: "null", in: `null`, zero: true},
		{name: "empty string", in: `""`, zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &id))
			assert.Equal(t, tt.zero, id.IsZero())
			assert.Equal(t, tt.str, id.String())

			out, err := json.Marshal(id)
			require.NoError(t, err)
			if tt.zero {
				assert.Equal(t, "null", string(out))
			} else {
				assert.Equal(t, tt.in, string(out))
			}
		})
	}
}

func TestID_RejectsObjects(t *testing.T) {
	var id ID
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
}

func TestParseID(t *testing.T) {
	b, err := json.Marshal(ParseID("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", string(b))

	b, err = json.Marshal(ParseID("img_7"))
	require.NoError(t, err)
	assert.Equal(t, `"img_7"`, string(b))

	assert.True(t, ParseID("").IsZero())
	assert.True(t, ParseID("42").Equal(StringID("42")))
	assert.Equal(t, []string{"1", "x"}, IDs([]ID{NumericID(1), StringID("x")}))
}

func TestPatientCase_Decode(t *testing.T) {
	body := `{
		"id": 5, "name": "Pulpitis", "status": "PUBLISHED",
		"clinicalExResults": [{"id": 1, "testCategoryId": 3, "textResult": "ok", "notes": "",
			"images": [{"id": "k1", "url": "http://img/k1"}]}],
		"paraclinicalExResults": []
	}`

	var pc PatientCase
	require.NoError(t, json.Unmarshal([]byte(body), &pc))
	assert.True(t, pc.Published())
	require.Len(t, pc.ClinicalExResults, 1)
	assert.Equal(t, "3", pc.ClinicalExResults[0].TestCategoryID.String())
	assert.Equal(t, "http://img/k1", pc.ClinicalExResults[0].Images[0].URL)
}

func TestUser_HasRole(t *testing.T) {
	u := User{Roles: []Role{{ID: NumericID(1), RoleName: "ROLE_ADMIN"}}}
	assert.True(t, u.HasRole("ROLE_ADMIN"))
	assert.False(t, u.HasRole("ROLE_SUPER_ADMIN"))
}
