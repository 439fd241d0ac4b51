package params

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SuperBoats!!", "superboats"},
		{"Boat Trip", "boat-trip"},
		{"  TikTok ", "tiktok"},
		{"--Summer__2024--", "summer-2024"},
		{"a  &  b", "a-b"},
		{"Ação", "a-o"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"SuperBoats!!", "Boat Trip Lisbon", "x", "already-normal", " -A- B- ", "123 456"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestValidateDestination(t *testing.T) {
	assert.NoError(t, ValidateDestination("https://example.com"))
	assert.NoError(t, ValidateDestination("http://example.com/path?a=1"))

	for _, bad := range []string{"ftp://example.com", "example.com", "/relative", "https://", "javascript:alert(1)", "://x", ""} {
		err := ValidateDestination(bad)
		assert.ErrorIs(t, err, ErrInvalidDestination, "dest %q", bad)
	}
}

func TestParse_Valid(t *testing.T) {
	values := url.Values{
		"client":   {"SuperBoats!!"},
		"service":  {"Boat Trip"},
		"industry": {"Boats"},
		"channel":  {"TikTok"},
		"dest":     {"https://example.com"},
	}

	p, err := Parse(values)
	require.NoError(t, err)
	assert.Equal(t, Params{
		Client:   "superboats",
		Service:  "boat-trip",
		Industry: "boats",
		Channel:  "tiktok",
		Dest:     "https://example.com",
	}, p)
}

func TestParse_Campaign(t *testing.T) {
	values := url.Values{
		"client": {"a"}, "service": {"b"}, "industry": {"c"}, "channel": {"d"},
		"campaign": {"Summer 2024"},
		"dest":     {"https://example.com"},
	}
	p, err := Parse(values)
	require.NoError(t, err)
	assert.Equal(t, "summer-2024", p.Campaign)
}

func TestParse_MissingDest(t *testing.T) {
	values := url.Values{"client": {"a"}, "service": {"b"}, "industry": {"c"}, "channel": {"d"}}

	_, err := Parse(values)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"dest"}, verr.Missing)
	assert.Empty(t, verr.Invalid)
	assert.Contains(t, err.Error(), "dest")
}

func TestParse_MissingSeveral(t *testing.T) {
	_, err := Parse(url.Values{"service": {"b"}, "channel": {"!!"}})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"client", "industry", "channel", "dest"}, verr.Missing)
}

func TestParse_InvalidScheme(t *testing.T) {
	values := url.Values{
		"client": {"a"}, "service": {"b"}, "industry": {"c"}, "channel": {"d"},
		"dest": {"ftp://example.com"},
	}
	_, err := Parse(values)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.Missing)
	assert.Equal(t, []string{"dest"}, verr.Invalid)
	assert.Equal(t, []string{"dest"}, verr.Fields())
}
