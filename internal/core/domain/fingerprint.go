package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// Fingerprint mirrors cargo's persisted per-unit fingerprint record
// (cargo/core/compiler/fingerprint.rs). Field values are opaque to this tool
// except where noted; their only job is to feed the canonical hash and the
// dependency graph.
type Fingerprint struct {
	Rustc     uint64             `json:"rustc"`
	Features  string             `json:"features"`
	Target    uint64             `json:"target"`
	Profile   uint64             `json:"profile"`
	Path      uint64             `json:"path"`
	Deps      []DepFingerprint   `json:"deps"`
	Local     []LocalFingerprint `json:"local"`
	Rustflags []string           `json:"rustflags"`
	Metadata  uint64             `json:"metadata"`
	Config    uint64             `json:"config"`
}

// DepFingerprint is one dependency entry of a fingerprint record. On disk it
// is a four-element tuple, not an object.
type DepFingerprint struct {
	PkgID  uint64
	Name   string
	Public bool
	// Fingerprint is the dependency's own canonical hash as recorded by
	// cargo. It is trusted as-is and never recomputed; it is the join key
	// for graph edge resolution.
	Fingerprint uint64
}

// UnmarshalJSON decodes the [pkg_id, name, public, fingerprint] tuple form.
func (d *DepFingerprint) UnmarshalJSON(data []byte) error {
	tuple := []any{&d.PkgID, &d.Name, &d.Public, &d.Fingerprint}
	if err := json.Unmarshal(data, &tuple); err != nil {
		return zerr.Wrap(err, "malformed dependency tuple")
	}
	if len(tuple) != 4 {
		return zerr.With(ErrMalformedFingerprint, "dep_tuple_len", len(tuple))
	}
	return nil
}

// LocalKind tags the variant of a local invalidation trigger.
type LocalKind int

// Variant order matters: the canonical hash encodes the variant index.
const (
	LocalPrecalculated LocalKind = iota
	LocalCheckDepInfo
	LocalRerunIfChanged
	LocalRerunIfEnvChanged
)

// LocalFingerprint is one "local" invalidation trigger of a fingerprint
// record. On disk it is an externally tagged enum:
//
//	{"Precalculated": "..."}
//	{"CheckDepInfo": {"dep_info": "..."}}
//	{"RerunIfChanged": {"output": "...", "paths": [...]}}
//	{"RerunIfEnvChanged": {"var": "...", "val": "..." | null}}
type LocalFingerprint struct {
	Kind LocalKind

	// LocalPrecalculated
	Precalculated string
	// LocalCheckDepInfo
	DepInfo string
	// LocalRerunIfChanged
	Output string
	Paths  []string
	// LocalRerunIfEnvChanged
	Var string
	Val *string
}

// UnmarshalJSON decodes the externally tagged enum form.
func (l *LocalFingerprint) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return zerr.Wrap(err, "malformed local trigger")
	}
	if len(tagged) != 1 {
		return zerr.With(ErrMalformedFingerprint, "local_trigger_keys", len(tagged))
	}

	for tag, payload := range tagged {
		switch tag {
		case "Precalculated":
			l.Kind = LocalPrecalculated
			return decodePayload(payload, &l.Precalculated)
		case "CheckDepInfo":
			l.Kind = LocalCheckDepInfo
			var v struct {
				DepInfo string `json:"dep_info"`
			}
			if err := decodePayload(payload, &v); err != nil {
				return err
			}
			l.DepInfo = v.DepInfo
		case "RerunIfChanged":
			l.Kind = LocalRerunIfChanged
			var v struct {
				Output string   `json:"output"`
				Paths  []string `json:"paths"`
			}
			if err := decodePayload(payload, &v); err != nil {
				return err
			}
			l.Output = v.Output
			l.Paths = v.Paths
		case "RerunIfEnvChanged":
			l.Kind = LocalRerunIfEnvChanged
			var v struct {
				Var string  `json:"var"`
				Val *string `json:"val"`
			}
			if err := decodePayload(payload, &v); err != nil {
				return err
			}
			l.Var = v.Var
			l.Val = v.Val
		default:
			return zerr.With(ErrMalformedFingerprint, "local_trigger_tag", tag)
		}
	}
	return nil
}

func decodePayload(payload json.RawMessage, dest any) error {
	if err := json.Unmarshal(payload, dest); err != nil {
		return zerr.Wrap(err, "malformed local trigger payload")
	}
	return nil
}

// ParseFingerprint decodes one on-disk fingerprint record. A record that
// fails to decode is a fatal condition for the surrounding run: graph
// completeness cannot be guaranteed with partial loads.
func ParseFingerprint(data []byte) (*Fingerprint, error) {
	var f Fingerprint
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, zerr.Wrap(err, ErrMalformedFingerprint.Error())
	}
	return &f, nil
}
