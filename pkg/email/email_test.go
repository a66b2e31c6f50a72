package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		wantLocal  string
		wantDomain string
		wantOK     bool
	}{
		{"plain address", "john@example.org", "john", "example.org", true},
		{"dotted local part", "john.doe@example.org", "john.doe", "example.org", true},
		{"plus tag", "john+stats@example.org", "john+stats", "example.org", true},
		{"subdomain", "john@mail.example.org", "john", "mail.example.org", true},
		{"no at sign", "john", "", "", false},
		{"empty local part", "@example.org", "", "", false},
		{"empty domain", "john@", "", "", false},
		{"domain without dot", "john@localhost", "", "", false},
		{"two at signs", "john@doe@example.org", "", "", false},
		{"leading dot in local part", ".john@example.org", "", "", false},
		{"trailing dot in local part", "john.@example.org", "", "", false},
		{"quoted local part rejected", `"john doe"@example.org`, "", "", false},
		{"space in domain", "john@exa mple.org", "", "", false},
		{"empty address", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, domain, ok := Split(tt.address)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLocal, local)
			assert.Equal(t, tt.wantDomain, domain)
		})
	}
}
