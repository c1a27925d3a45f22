package domain

import (
	"encoding/binary"
	"strconv"

	"github.com/dchest/siphash"
)

// Hash computes the record's canonical hash, reproducing bit-for-bit what
// cargo computes for the same record: the byte stream Rust's derived Hash
// implementations feed into a hasher, finalized with SipHash-2-4 under a zero
// key (the legacy SipHasher default).
//
// The field order and every encoding rule below are an external contract. A
// deviation does not produce an error anywhere; dependency edges simply stop
// matching. Golden tests pin the output.
//
// Encoding rules (64-bit platforms; usize writes follow the host word size):
//   - u64: 8 bytes little-endian
//   - usize / enum discriminant: word-size bytes little-endian
//   - bool: one byte
//   - string: raw bytes, then a single 0xff terminator
//   - Option<T>: discriminant (0 none / 1 some), then the value if present
//   - Vec<T>: usize length prefix, then the elements
//   - paths: rustc's component-aware byte stream, see writePath
//
// The hash order is NOT the struct field order: rustc, features, target,
// path, profile, local, metadata, config, rustflags, then the dependency
// count and per dependency its package id, name, public flag and stored hash.
// Stored dependency hashes are trusted as-is, never recomputed.
func (f *Fingerprint) Hash() uint64 {
	var h recordHasher
	h.u64(f.Rustc)
	h.str(f.Features)
	h.u64(f.Target)
	h.u64(f.Path)
	h.u64(f.Profile)
	h.usize(uint64(len(f.Local)))
	for i := range f.Local {
		h.local(&f.Local[i])
	}
	h.u64(f.Metadata)
	h.u64(f.Config)
	h.usize(uint64(len(f.Rustflags)))
	for _, flag := range f.Rustflags {
		h.str(flag)
	}

	h.usize(uint64(len(f.Deps)))
	for i := range f.Deps {
		d := &f.Deps[i]
		h.u64(d.PkgID)
		h.str(d.Name)
		h.bool(d.Public)
		h.u64(d.Fingerprint)
	}

	return siphash.Hash(0, 0, h.buf)
}

// wordBytes is the usize width of the platform the fingerprints were written
// on, assumed to match the host. Cargo's hash is architecture-sensitive for
// the same reason.
const wordBytes = strconv.IntSize / 8

// recordHasher accumulates the canonical byte stream. SipHash has no
// streaming structure of its own, so buffering and finalizing once is
// equivalent to Rust's incremental writes.
type recordHasher struct {
	buf []byte
}

func (h *recordHasher) u64(v uint64) {
	h.buf = binary.LittleEndian.AppendUint64(h.buf, v)
}

func (h *recordHasher) usize(v uint64) {
	if wordBytes == 8 {
		h.buf = binary.LittleEndian.AppendUint64(h.buf, v)
	} else {
		h.buf = binary.LittleEndian.AppendUint32(h.buf, uint32(v))
	}
}

func (h *recordHasher) str(s string) {
	h.buf = append(h.buf, s...)
	h.buf = append(h.buf, 0xff)
}

func (h *recordHasher) bool(v bool) {
	if v {
		h.buf = append(h.buf, 1)
	} else {
		h.buf = append(h.buf, 0)
	}
}

func (h *recordHasher) optStr(s *string) {
	if s == nil {
		h.usize(0)
		return
	}
	h.usize(1)
	h.str(*s)
}

func (h *recordHasher) local(l *LocalFingerprint) {
	h.usize(uint64(l.Kind))
	switch l.Kind {
	case LocalPrecalculated:
		h.str(l.Precalculated)
	case LocalCheckDepInfo:
		h.path(l.DepInfo)
	case LocalRerunIfChanged:
		h.path(l.Output)
		h.usize(uint64(len(l.Paths)))
		for _, p := range l.Paths {
			h.path(p)
		}
	case LocalRerunIfEnvChanged:
		h.str(l.Var)
		h.optStr(l.Val)
	}
}

// path encodes a path the way rustc's Path::hash does: component bytes with
// redundant separators and interior "." components skipped, followed by a
// usize count of the bytes that were hashed. Only '/' is treated as a
// separator; records written by a Windows cargo hash '\' paths as plain
// bytes under the same rule rustc applies to verbatim prefixes, which this
// tool does not reproduce.
func (h *recordHasher) path(p string) {
	raw := []byte(p)
	componentStart := 0
	hashed := 0

	for i := 0; i < len(raw); i++ {
		if raw[i] != '/' {
			continue
		}
		if i > componentStart {
			h.buf = append(h.buf, raw[componentStart:i]...)
			hashed += i - componentStart
		}
		componentStart = i + 1
		tail := raw[componentStart:]
		if len(tail) > 0 && tail[0] == '.' && (len(tail) == 1 || tail[1] == '/') {
			componentStart++
		}
	}
	if componentStart < len(raw) {
		h.buf = append(h.buf, raw[componentStart:]...)
		hashed += len(raw) - componentStart
	}
	h.usize(uint64(hashed))
}
