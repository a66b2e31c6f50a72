package provision

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
)

// Placeholder is the token replaced with the email local-part in every
// templated field.
const Placeholder = "$user"

// Template describes the identity synthesized for an eligible unknown user:
// the user document itself plus the roles created alongside it. Any string
// field may contain the placeholder.
type Template struct {
	User  domain.User   `json:"user"`
	Roles []domain.Role `json:"roles"`

	// raw is the canonical JSON form used for substitution. Substituting on
	// the serialized document keeps every templated field covered without
	// enumerating them; the local-part grammar guarantees the replacement
	// cannot break JSON syntax.
	raw string
}

// LoadTemplate reads and eagerly validates a provisioning template from a
// JSON file. Validation substitutes a probe value so a template that can
// never produce valid documents is rejected at boot, not at first access.
func LoadTemplate(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read provisioning template: %w", err)
	}
	tmpl, err := parseTemplate(raw)
	if err != nil {
		return nil, err
	}
	if _, err := tmpl.Instantiate("probe"); err != nil {
		return nil, fmt.Errorf("provisioning template does not produce valid documents: %w", err)
	}
	return tmpl, nil
}

func parseTemplate(raw []byte) (*Template, error) {
	var tmpl Template
	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return nil, fmt.Errorf("parse provisioning template: %w", err)
	}
	raw, err := json.Marshal(&tmpl)
	if err != nil {
		return nil, fmt.Errorf("encode provisioning template: %w", err)
	}
	tmpl.raw = string(raw)
	return &tmpl, nil
}

// Instantiate substitutes the placeholder with the given local-part and
// validates the resulting documents with the same rules normal writes use.
func (t *Template) Instantiate(local string) (*Template, error) {
	substituted := strings.ReplaceAll(t.raw, Placeholder, local)
	var out Template
	if err := json.Unmarshal([]byte(substituted), &out); err != nil {
		return nil, fmt.Errorf("substitute provisioning template: %w", err)
	}
	if err := out.User.Validate(); err != nil {
		return nil, err
	}
	for i := range out.Roles {
		if err := out.Roles[i].Validate(); err != nil {
			return nil, err
		}
	}
	out.raw = substituted
	return &out, nil
}
