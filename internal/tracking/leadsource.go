package tracking

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DirectWebsite = "Direct Website"

const (
	FieldReferrer = "referrer"
	FieldURL      = "url"
)

// LeadRule labels an event whose Field contains Contains.
type LeadRule struct {
	Field    string `yaml:"field"`
	Contains string `yaml:"contains"`
	Source   string `yaml:"source"`
}

type LeadRules struct {
	Rules []LeadRule `yaml:"rules"`
}

func DefaultLeadRules() LeadRules {
	return LeadRules{Rules: []LeadRule{
		{Field: FieldReferrer, Contains: "facebook.com", Source: "Facebook"},
		{Field: FieldReferrer, Contains: "instagram.com", Source: "Instagram"},
		{Field: FieldURL, Contains: "wa.me", Source: "WhatsApp"},
	}}
}

// LoadLeadRules reads a YAML rules file. An empty path yields the defaults.
func LoadLeadRules(path string) (LeadRules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultLeadRules(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return LeadRules{}, errors.Wrapf(err, "read lead source rules %s", path)
	}

	var rules LeadRules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return LeadRules{}, errors.Wrapf(err, "parse lead source rules %s", path)
	}

	for i, r := range rules.Rules {
		if r.Field != FieldReferrer && r.Field != FieldURL {
			return LeadRules{}, errors.Errorf("lead source rule %d: unknown field %q", i, r.Field)
		}
		if strings.TrimSpace(r.Contains) == "" || strings.TrimSpace(r.Source) == "" {
			return LeadRules{}, errors.Errorf("lead source rule %d: contains and source are required", i)
		}
	}

	return rules, nil
}

// Derive picks the label of the first matching rule, then the UTM source,
// then DirectWebsite.
func (l LeadRules) Derive(referrer string, pageURL string, utmSource string) string {
	referrer = strings.ToLower(referrer)
	pageURL = strings.ToLower(pageURL)

	for _, r := range l.Rules {
		needle := strings.ToLower(r.Contains)

		var haystack string
		switch r.Field {
		case FieldReferrer:
			haystack = referrer
		case FieldURL:
			haystack = pageURL
		}

		if haystack != "" && strings.Contains(haystack, needle) {
			return r.Source
		}
	}

	if s := strings.TrimSpace(utmSource); s != "" {
		return s
	}

	return DirectWebsite
}
