package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_Canada(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"ON", "Ontario"},
		{"ontario", "Ontario"},
		{"Québec", "Quebec"},
		{"QC", "Quebec"},
		{"PEI", "Prince Edward Island"},
		{"Newfoundland", "Newfoundland and Labrador"},
		{"  BC ", "British Columbia"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Normalize(tc.raw, "Canada"), "raw=%q", tc.raw)
	}
}

func TestNormalize_CountryCaseInsensitive(t *testing.T) {
	require.Equal(t, "Ontario", Normalize("ON", "canada"))
	require.Equal(t, "Ontario", Normalize("ON", "CANADA"))
	require.Equal(t, "Texas", Normalize("TX", "United States"))
	require.Equal(t, "Greater London", Normalize("London", "united kingdom"))
}

func TestNormalize_PassThroughAndEmpty(t *testing.T) {
	// well-formed but unmapped input passes through trimmed
	require.Equal(t, "Atlantis", Normalize(" Atlantis ", "Canada"))
	// unknown country leaves the value untouched apart from trimming
	require.Equal(t, "Bavaria", Normalize("Bavaria", "Germany"))
	// empty and whitespace-only input maps to empty
	require.Equal(t, "", Normalize("", "Canada"))
	require.Equal(t, "", Normalize("   ", "Canada"))
}

func TestNormalize_CollapsesVariants(t *testing.T) {
	seen := map[string]struct{}{}
	for _, raw := range []string{"ON", "Ontario", "ontario", "Ont"} {
		seen[Normalize(raw, "Canada")] = struct{}{}
	}
	require.Len(t, seen, 1)
}
