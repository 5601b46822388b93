package pmu

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the YAML layout of a correction table file:
//
//	contained:
//	  - name: R1
//	    min: 0
//	    max: 0.2
//	    include_min: true
//	    include_max: true
//	    quality: pass
//	    coeffs: [0.59, -6.89, 20.63]
//	  ...
//	uncontained:
//	  - name: U3
//	    min: 2.2
//	    max: .inf
//	    include_min: true
//	    coeffs: [1.9, -1.34, 0.03]
type tableFile struct {
	Contained   []regionFile `yaml:"contained"`
	Uncontained []regionFile `yaml:"uncontained"`
}

type regionFile struct {
	Name       string    `yaml:"name"`
	Min        float64   `yaml:"min"`
	Max        float64   `yaml:"max"`
	IncludeMin bool      `yaml:"include_min,omitempty"`
	IncludeMax bool      `yaml:"include_max,omitempty"`
	Quality    string    `yaml:"quality,omitempty"`
	Coeffs     []float64 `yaml:"coeffs,flow,omitempty"`
}

// LoadTables reads a YAML table file and returns a validated corrector.
func LoadTables(r io.Reader) (*Corrector, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f tableFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("pmu: decode table file: %w", err)
	}

	contained, err := buildTable("contained", f.Contained)
	if err != nil {
		return nil, err
	}

	uncontained, err := buildTable("uncontained", f.Uncontained)
	if err != nil {
		return nil, err
	}

	return NewCorrector(contained, uncontained)
}

// LoadTablesFile is LoadTables on the named file.
func LoadTablesFile(path string) (*Corrector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pmu: read table file: %w", err)
	}

	c, err := LoadTables(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func buildTable(name string, regions []regionFile) (Table, error) {
	t := Table{Name: name, Regions: make([]Region, 0, len(regions))}

	for _, rf := range regions {
		q, err := ParseQuality(rf.Quality)
		if err != nil {
			return Table{}, fmt.Errorf("%s region %s: %w", name, rf.Name, err)
		}

		t.Regions = append(t.Regions, Region{
			Name:         rf.Name,
			Min:          rf.Min,
			Max:          rf.Max,
			MinInclusive: rf.IncludeMin,
			MaxInclusive: rf.IncludeMax,
			Quality:      q,
			Coeffs:       rf.Coeffs,
		})
	}

	return t, nil
}

// WriteTables encodes the corrector's tables in the format read by
// LoadTables.
func WriteTables(w io.Writer, c *Corrector) error {
	f := tableFile{
		Contained:   regionFiles(c.contained),
		Uncontained: regionFiles(c.uncontained),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("pmu: encode table file: %w", err)
	}

	return enc.Close()
}

func regionFiles(t Table) []regionFile {
	out := make([]regionFile, len(t.Regions))
	for i, r := range t.Regions {
		rf := regionFile{
			Name:       r.Name,
			Min:        r.Min,
			Max:        r.Max,
			IncludeMin: r.MinInclusive,
			IncludeMax: r.MaxInclusive,
			Coeffs:     r.Coeffs,
		}
		if r.Quality != QualityAny {
			rf.Quality = r.Quality.String()
		}
		out[i] = rf
	}

	return out
}
