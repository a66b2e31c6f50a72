// Package email holds the address handling the identity provisioner relies
// on: splitting an address into local part and domain, and deciding whether
// the local part is safe to substitute into templates.
package email

import (
	"regexp"
	"strings"
)

// localPartPattern is deliberately conservative. The local part is substituted
// verbatim into identifiers and template text, so exotic but technically legal
// forms (quoted strings, comments) are rejected.
var localPartPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._+-]*[A-Za-z0-9])?$`)

// Split breaks an address into local part and domain. ok is false when the
// address is not a plain, template-safe email: exactly one "@", a valid local
// part, and a dotted domain.
func Split(address string) (local, domain string, ok bool) {
	at := strings.IndexByte(address, '@')
	if at <= 0 || at != strings.LastIndexByte(address, '@') {
		return "", "", false
	}
	local, domain = address[:at], address[at+1:]
	if !localPartPattern.MatchString(local) {
		return "", "", false
	}
	if domain == "" || !strings.Contains(domain, ".") || strings.ContainsAny(domain, " @") {
		return "", "", false
	}
	return local, domain, true
}
