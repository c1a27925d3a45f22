package domain

import "strings"

// FirstDep parses the first declared source path out of a dep-info file.
//
// The first line has the form "{output-path}: {source paths}". Sources are
// space separated, with literal spaces escaped as "\ ", and the first entry
// is the unit's root source file (e.g. lib.rs) — which is the one that tells
// us where the unit's sources live.
func FirstDep(contents string) (string, error) {
	line, _, _ := strings.Cut(contents, "\n")
	_, sources, found := strings.Cut(line, ": ")
	if !found {
		return "", ErrMalformedDepInfo
	}

	var path strings.Builder
	rest := strings.TrimSpace(sources)
	for {
		seg, tail, _ := strings.Cut(rest, " ")
		if strings.HasSuffix(seg, "\\") {
			path.WriteString(seg[:len(seg)-1])
			path.WriteByte(' ')
			rest = tail
			continue
		}
		path.WriteString(seg)
		break
	}
	if path.Len() == 0 {
		return "", ErrMalformedDepInfo
	}
	return path.String(), nil
}
