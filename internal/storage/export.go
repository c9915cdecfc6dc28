package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Frames []Record    `json:"frames"`
}

func ExportJSON(w io.Writer, meta RunMetadata, records []Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Frames: records})
}

// ExportFile writes the JSON export of a stored run to path.
func (s *Store) ExportFile(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, *meta, records)
}
