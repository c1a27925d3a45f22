package domain

import "strings"

// Cache entry names encode "{logical-name}-{metadata-hash}". The hash suffix
// is the only linkage between independently named directory entries and the
// logical crate they belong to, so the split must stay exact: always on the
// LAST hyphen, since logical names routinely contain hyphens themselves.

// SplitNameHash splits an entry stem into its logical name and trailing
// metadata hash. It reports false when the stem contains no separator.
func SplitNameHash(stem string) (name, hash string, ok bool) {
	i := strings.LastIndexByte(stem, '-')
	if i < 0 {
		return "", "", false
	}
	return stem[:i], stem[i+1:], true
}

// MetaHashSuffix extracts the metadata hash from an entry stem. A stem with
// no separator is returned whole, matching how the sweep treats entries whose
// full name is the hash.
func MetaHashSuffix(stem string) string {
	if i := strings.LastIndexByte(stem, '-'); i >= 0 {
		return stem[i+1:]
	}
	return stem
}
