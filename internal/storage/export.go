package storage

import (
	"encoding/json"
	"io"
)

type runExport struct {
	Meta   RunMetadata `json:"meta"`
	Header []string    `json:"header"`
	Times  []float64   `json:"times"`
	Rows   [][]float64 `json:"rows"`
}

// ExportJSON writes a run's metadata and snapshot table as a single JSON
// document.
func ExportJSON(w io.Writer, meta RunMetadata, header []string, states [][]float64, times []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{
		Meta:   meta,
		Header: header,
		Times:  times,
		Rows:   states,
	})
}
