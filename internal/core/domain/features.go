package domain

import "strings"

// FeatureString serializes an activated feature list the way cargo renders it
// into fingerprint records: bracketed, comma-space separated, double-quoted.
//
// The format is an external contract. Fingerprint records store the rendered
// string, and feature-change invalidation works by comparing a freshly
// serialized list against it. Any drift here silently disables that check.
func FeatureString(features []string) string {
	var b strings.Builder
	size := 2
	for _, f := range features {
		size += len(f) + 4
	}
	b.Grow(size)

	b.WriteByte('[')
	for i, f := range features {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}
