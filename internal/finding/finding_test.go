package finding

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParsePlatform(t *testing.T) {
	var testCases = []struct {
		Token    string
		Expected Platform
	}{
		{"solana", Solana},
		{"SOLANA", Solana},
		{"Near", Near},
		{"cosmwasm", CosmWasm},
		{" substrate ", Substrate},
		{"all", All},
		{"ethereum", All},
		{"", All},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.Expected, ParsePlatform(tc.Token), tc.Token)
	}
}

func Test_ParsePlatformStrict(t *testing.T) {
	p, err := ParsePlatformStrict("CosmWasm")
	assert.Nil(t, err)
	assert.Equal(t, CosmWasm, p)

	_, err = ParsePlatformStrict("solanna")
	assert.NotNil(t, err)
}

func Test_SeverityOrder(t *testing.T) {
	assert.Equal(t, []Severity{High, Medium, Low, Info}, Severities)
	for i, s := range Severities {
		assert.Equal(t, i, s.Rank())
		assert.True(t, s.Valid())
	}
	assert.False(t, Severity(7).Valid())
	assert.Equal(t, "UNKNOWN", Severity(7).String())
}

func Test_SeverityText(t *testing.T) {
	data, err := json.Marshal(struct {
		S Severity `json:"s"`
	}{Medium})
	require.Nil(t, err)
	assert.Equal(t, `{"s":"MEDIUM"}`, string(data))

	var s Severity
	assert.Nil(t, s.UnmarshalText([]byte("low")))
	assert.Equal(t, Low, s)
	assert.NotNil(t, s.UnmarshalText([]byte("critical")))
}

func Test_Fingerprint(t *testing.T) {
	f := Finding{Vulnerability: "Integer Overflow", File: "src/lib.rs", Line: 3}
	g := f
	g.Code = "different context"
	assert.Equal(t, f.Fingerprint(), g.Fingerprint())
	assert.Len(t, f.Fingerprint(), 64)

	g.Line = 4
	assert.NotEqual(t, f.Fingerprint(), g.Fingerprint())
}

func Test_IOError(t *testing.T) {
	assert.Nil(t, NewIOError("x", nil))

	err := errors.Wrap(NewIOError("/missing", os.ErrNotExist), "scan")
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "/missing", ioErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
