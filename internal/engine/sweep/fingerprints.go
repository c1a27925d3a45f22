package sweep

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"go.trai.ch/zerr"
)

// loadUnits reads one fingerprint record per unit directory under
// .fingerprint/. Each unit directory holds exactly one JSON record next to the
// hash and dep-info files; the first one found wins. A record that fails to
// parse aborts the load, a partial record set would leave holes in the graph
// and delete things still in use.
func loadUnits(fingerprintDir string) ([]domain.Unit, error) {
	entries, err := os.ReadDir(fingerprintDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read fingerprint directory"), "path", fingerprintDir)
	}

	var units []domain.Unit
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		unitDir := filepath.Join(fingerprintDir, e.Name())
		files, err := os.ReadDir(unitDir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read unit directory"), "path", unitDir)
		}

		for _, f := range files {
			if filepath.Ext(f.Name()) != ".json" {
				continue
			}
			path := filepath.Join(unitDir, f.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to read fingerprint record"), "path", path)
			}
			record, err := domain.ParseFingerprint(data)
			if err != nil {
				return nil, zerr.With(err, "path", path)
			}
			units = append(units, domain.Unit{
				MetaHash: domain.MetaHashSuffix(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))),
				Record:   record,
			})
			break
		}
	}
	return units, nil
}
