package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wisp/trail"
)

// ParticleRecord is one live particle in a store dump.
type ParticleRecord struct {
	Slot     int            `csv:"slot"`
	X        float32        `csv:"x"`
	Y        float32        `csv:"y"`
	Age      float32        `csv:"age"`
	Lifetime float32        `csv:"lifetime"`
	Ribbon   trail.RibbonID `csv:"ribbon"`
}

// WriteStoreDump writes every live particle to particles_<tick>.csv in
// dir, for offline inspection of a run that went wrong. Returns the
// path it wrote.
func WriteStoreDump(dir string, tick int32, st *trail.Store) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create dump dir: %w", err)
	}

	records := make([]ParticleRecord, 0, st.Len())
	st.Each(func(i int) {
		records = append(records, ParticleRecord{
			Slot:     i,
			X:        st.X[i],
			Y:        st.Y[i],
			Age:      st.Age[i],
			Lifetime: st.Lifetime[i],
			Ribbon:   st.Ribbon[i],
		})
	})

	path := filepath.Join(dir, fmt.Sprintf("particles_%d.csv", tick))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dump: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&records, f); err != nil {
		return "", fmt.Errorf("write dump: %w", err)
	}

	return path, nil
}

// LoadStoreDump reads a dump back for analysis.
func LoadStoreDump(path string) ([]ParticleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	defer f.Close()

	var records []ParticleRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}

	return records, nil
}
