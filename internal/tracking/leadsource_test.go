package tracking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveDefaults(t *testing.T) {
	rules := DefaultLeadRules()

	cases := []struct {
		name     string
		referrer string
		url      string
		utm      string
		want     string
	}{
		{"facebook referrer", "https://m.facebook.com/story", "https://shop.example/", "", "Facebook"},
		{"instagram referrer", "https://l.instagram.com/", "https://shop.example/", "newsletter", "Instagram"},
		{"whatsapp link", "", "https://wa.me/40700000000", "", "WhatsApp"},
		{"utm only", "", "https://shop.example/?utm_source=google", "google", "google"},
		{"nothing", "", "https://shop.example/", "", DirectWebsite},
		{"referrer beats utm", "https://facebook.com/", "", "google", "Facebook"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rules.Derive(tc.referrer, tc.url, tc.utm))
		})
	}
}

func TestLoadLeadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - field: referrer
    contains: tiktok.com
    source: TikTok
`), 0o644))

	rules, err := LoadLeadRules(path)
	require.NoError(t, err)
	require.Equal(t, "TikTok", rules.Derive("https://www.tiktok.com/@x", "", ""))
	require.Equal(t, DirectWebsite, rules.Derive("https://facebook.com", "", ""))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  - field: cookie\n    contains: x\n    source: y\n"), 0o644))
	_, err = LoadLeadRules(bad)
	require.Error(t, err)

	rules, err = LoadLeadRules("")
	require.NoError(t, err)
	require.Equal(t, DefaultLeadRules(), rules)
}
