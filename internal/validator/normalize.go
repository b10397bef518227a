package validator

import "strings"

// NormalizeIdentifier canonicalizes a phone number as read from the store or
// typed by a user. The store prefixes values with a quote to keep leading
// zeros, auto-formats numbers with a trailing ".0", and drops the leading zero
// of a mobile number it took for an integer. Apply it to both sides of every
// comparison.
func NormalizeIdentifier(raw string) string {
	s := raw
	for {
		next := stripArtifacts(s)
		if next == s {
			break
		}
		s = next
	}
	if len(s) == 9 && allDigits(s) {
		return "0" + s
	}
	return s
}

// NormalizeInvoice only trims; invoices are free-form.
func NormalizeInvoice(raw string) string {
	return strings.TrimSpace(raw)
}

func stripArtifacts(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, `'\`)
	s = strings.TrimSuffix(s, ".0")
	return strings.TrimSpace(s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
