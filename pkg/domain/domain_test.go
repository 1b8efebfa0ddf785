package domain_test

import (
	"testing"

	"emailfinder/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestConfidenceLevel(t *testing.T) {
	cases := map[float64]string{
		100:  "High",
		75:   "High",
		74.9: "Medium",
		50:   "Medium",
		49:   "Low",
		25:   "Low",
		24.5: "Very Low",
		0:    "Very Low",
	}

	for score, want := range cases {
		require.Equal(t, want, domain.ConfidenceLevel(score), "score %v", score)
	}
}

func TestMultiDomainProgressPercent(t *testing.T) {
	require.Zero(t, domain.MultiDomainProgress{}.Percent())
	require.InDelta(t, 0.5, domain.MultiDomainProgress{TotalDomains: 4, ProcessedDomains: 2}.Percent(), 1e-9)
}

func TestPaginationHasMore(t *testing.T) {
	require.True(t, domain.Pagination{Total: 25, Limit: 10, Skip: 10}.HasMore())
	require.False(t, domain.Pagination{Total: 20, Limit: 10, Skip: 10}.HasMore())
}

func TestNewFormDataDefaults(t *testing.T) {
	f := domain.NewFormData()
	require.Equal(t, domain.ModeAuto, f.Mode)
	require.Equal(t, []string{"info", "contact", "team", "support", "hello", "admin", "sales", "help"}, f.SelectedCustomNames)

	f.SelectedCustomNames[0] = "changed"
	require.Equal(t, "info", domain.DefaultCustomNames()[0])
}

func TestUserFullName(t *testing.T) {
	require.Equal(t, "Jane Doe", domain.User{FirstName: "Jane", LastName: "Doe"}.FullName())
	require.Equal(t, "Jane", domain.User{FirstName: "Jane"}.FullName())
	require.Equal(t, "Doe", domain.User{LastName: "Doe"}.FullName())
}
