package validation_test

import (
	"strings"
	"testing"

	"emailfinder/internal/validation"

	"github.com/stretchr/testify/require"
)

func TestExtractDomain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "plain domain", in: "example.com", out: "example.com"},
		{name: "url with www and path", in: "https://www.example.com/path", out: "example.com"},
		{name: "url with port", in: "http://example.com:8080/x?y=1", out: "example.com"},
		{name: "path without scheme", in: "example.com/about/team", out: "example.com"},
		{name: "www prefix and case", in: "  WWW.Example.COM ", out: "example.com"},
		{name: "empty", in: "   ", out: ""},
		{name: "subdomain kept", in: "https://mail.example.co.uk", out: "mail.example.co.uk"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, validation.ExtractDomain(tc.in))
		})
	}
}

func TestValidateDomainFormat(t *testing.T) {
	valid := []string{"example.com", "www.example.com", "sub.example.co.uk", "a-b.io", "x1.dev"}
	invalid := []string{"", "not a domain", "example", "-example.com", "example-.com", "example.c", "example.123", "exa_mple.com", strings.Repeat("a", 250) + ".com"}

	for _, d := range valid {
		require.True(t, validation.ValidateDomainFormat(d), d)
	}
	for _, d := range invalid {
		require.False(t, validation.ValidateDomainFormat(d), d)
	}
}

func TestValidateDomainRealTime(t *testing.T) {
	require.ErrorIs(t, validation.ValidateDomainRealTime(""), validation.ErrDomainRequired)
	require.EqualError(t, validation.ValidateDomainRealTime("  "), "Domain is required")
	require.EqualError(t, validation.ValidateDomainRealTime("not a domain"), "Invalid domain format")
	require.NoError(t, validation.ValidateDomainRealTime("https://www.example.com/careers"))
	require.NoError(t, validation.ValidateDomainRealTime("example.com"))
}

func TestSanitizers(t *testing.T) {
	require.Equal(t, "example.com", validation.SanitizeDomain("exa mple.com!"))
	require.Len(t, validation.SanitizeDomain(strings.Repeat("a", 300)), validation.MaxDomainLength)

	require.Equal(t, "scriptJane", validation.SanitizeName("<script>Jane"))
	require.Len(t, []rune(validation.SanitizeName(strings.Repeat("é", 60))), validation.MaxNameLength)

	require.Equal(t, "sales-team", validation.SanitizeCustomName("Sales-Team!"))
	require.Equal(t, "abcdefghijklmnopqrst", validation.SanitizeCustomName("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}

func TestValidateEmailAndName(t *testing.T) {
	require.True(t, validation.ValidateEmail("jane.doe+x@example.co"))
	require.False(t, validation.ValidateEmail("jane@example"))
	require.False(t, validation.ValidateEmail("not an email"))

	require.True(t, validation.ValidateName(""))
	require.True(t, validation.ValidateName("Anne-Marie O'Neil"))
	require.True(t, validation.ValidateName("José"))
	require.False(t, validation.ValidateName("R2D2"))
	require.False(t, validation.ValidateName(strings.Repeat("a", 51)))
}

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name        string
		file        string
		contentType string
		size        int64
		err         error
	}{
		{name: "text file", file: "domains.txt", contentType: "text/plain", size: 10},
		{name: "charset parameter", file: "domains.txt", contentType: "text/plain; charset=utf-8", size: 10},
		{name: "inferred from extension", file: "domains.TXT", size: 10},
		{name: "octet stream with txt extension", file: "domains.txt", contentType: "application/octet-stream", size: 10},
		{name: "csv rejected", file: "domains.csv", contentType: "text/csv", size: 10, err: validation.ErrInvalidFileType},
		{name: "no type no extension", file: "domains", size: 10, err: validation.ErrInvalidFileType},
		{name: "too large", file: "domains.txt", contentType: "text/plain", size: validation.MaxUploadSize + 1, err: validation.ErrFileTooLarge},
		{name: "exactly at limit", file: "domains.txt", contentType: "text/plain", size: validation.MaxUploadSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.ValidateUpload(tc.file, tc.contentType, tc.size, 0)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}

	require.ErrorIs(t, validation.ValidateUpload("d.txt", "text/plain", 11, 10), validation.ErrFileTooLarge)
}

func TestParseDomainList(t *testing.T) {
	require.Equal(t, []string{"a.com"}, validation.ParseDomainList("A.com\na.com\n# comment\n"))
	require.Equal(t,
		[]string{"example.com", "acme.io", "b.org"},
		validation.ParseDomainList("example.com\r\n\n  acme.io  \nlocalhost\n#skip.me\nB.org\nexample.com"),
	)
	require.Empty(t, validation.ParseDomainList(""))
}
