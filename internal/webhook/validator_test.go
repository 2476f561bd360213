package webhook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_MissingTypeOrData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing data", `{"type":"call"}`},
		{"missing type", `{"data":{}}`},
		{"null data", `{"type":"call","data":null}`},
		{"empty type", `{"type":"","data":{}}`},
		{"not json", `not json at all`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Validate([]byte(tc.body))
			require.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestValidate_UnsupportedKind(t *testing.T) {
	_, _, err := Validate([]byte(`{"type":"ghost","data":{}}`))

	var unsupported *UnsupportedKindError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "ghost", unsupported.Kind)
}

func TestValidate_CallRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing []string
	}{
		{
			"all required fields absent",
			`{"type":"call","data":{"duration":60}}`,
			[]string{"time", "cost", "result"},
		},
		{
			"duration as string is wrong-typed at the endpoint",
			`{"type":"call","data":{"time":"2024-03-15T10:30:00Z","duration":"180","cost":2.45,"result":"success"}}`,
			[]string{"duration"},
		},
		{
			"cost as string is wrong-typed at the endpoint",
			`{"type":"call","data":{"time":"2024-03-15T10:30:00Z","duration":180,"cost":"2.45","result":"success"}}`,
			[]string{"cost"},
		},
		{
			"unparseable time",
			`{"type":"call","data":{"time":"yesterday","duration":180,"cost":2.45,"result":"success"}}`,
			[]string{"time"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Validate([]byte(tc.body))

			var missing *MissingFieldsError
			require.True(t, errors.As(err, &missing), "got %v", err)
			require.Equal(t, tc.missing, missing.Fields)
		})
	}
}

func TestValidate_CallResultEnum(t *testing.T) {
	_, _, err := Validate([]byte(`{"type":"call","data":{"time":"2024-03-15T10:30:00Z","duration":180,"cost":2.45,"result":"answered"}}`))

	var badEnum *InvalidEnumError
	require.True(t, errors.As(err, &badEnum))
	require.Equal(t, "result", badEnum.Field)
	require.Equal(t, "answered", badEnum.Value)
}

func TestValidate_CallAccepted(t *testing.T) {
	kind, data, err := Validate([]byte(`{"type":"call","data":{"time":"2024-03-15T10:30:00Z","duration":180,"cost":2.45,"result":"success"}}`))
	require.NoError(t, err)
	require.Equal(t, KindCall, kind)
	require.NotEmpty(t, data)
}

func TestValidate_ClientNeedsOnlyStructuralData(t *testing.T) {
	// Per-kind asymmetry: client field validation is delegated downstream.
	kind, _, err := Validate([]byte(`{"type":"client","data":{"anything":"goes"}}`))
	require.NoError(t, err)
	require.Equal(t, KindClient, kind)
}
