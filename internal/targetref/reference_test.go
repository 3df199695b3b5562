package targetref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_String(t *testing.T) {
	assert.Equal(t, "App", New("", "App").String())
	assert.Equal(t, "/work/App:App", New("/work/App", "App").String())
}

func TestReference_RoundTrip(t *testing.T) {
	for _, raw := range []string{"App", "/work/Core:Core", "../Feature:Feature_iOS"} {
		t.Run(raw, func(t *testing.T) {
			ref, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, ref.String())
		})
	}
}

func TestReference_Resolve(t *testing.T) {
	testCases := []struct {
		name     string
		ref      Reference
		base     string
		expected Reference
	}{
		{
			name:     "local reference takes the base",
			ref:      New("", "App"),
			base:     "/work/App/",
			expected: New("/work/App", "App"),
		},
		{
			name:     "relative path is joined",
			ref:      New("../Core", "Core"),
			base:     "/work/App",
			expected: New("/work/Core", "Core"),
		},
		{
			name:     "absolute path is kept",
			ref:      New("/other/Core/", "Core"),
			base:     "/work/App",
			expected: New("/other/Core", "Core"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.ref.Resolve(tc.base))
		})
	}
}
