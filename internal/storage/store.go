package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrChecksumMismatch = errors.New("storage: frames checksum mismatch")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scene      string             `json:"scene"`
	Timestamp  time.Time          `json:"timestamp"`
	Scalar     string             `json:"scalar"`
	Dt         float64            `json:"dt"`
	Ticks      int                `json:"ticks"`
	TicksTaken int                `json:"ticks_taken"`
	Integrator string             `json:"integrator"`
	Bodies     []string           `json:"bodies"`
	Errors     int                `json:"errors"`
	Metrics    map[string]float64 `json:"metrics"`
	Checksum   string             `json:"checksum"`
}

// Save writes a run under a fresh id of the form <scene>_<8 hex chars>.
// The ID, Timestamp and Checksum fields of meta are filled in here.
func (s *Store) Save(meta RunMetadata, records []Record) (runID string, err error) {
	frames, err := encodeFrames(records)
	if err != nil {
		return "", err
	}

	runID = fmt.Sprintf("%s_%s", meta.Scene, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err := os.WriteFile(filepath.Join(runDir, framesFile), frames, 0644); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Checksum = Fingerprint(frames)

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return "", err
	}
	if err := metaFile.Close(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	return decodeFrames(data)
}

// Verify recomputes the fingerprint of a run's frames and compares it with
// the one recorded at save time.
func (s *Store) Verify(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return err
	}
	if got := Fingerprint(data); got != meta.Checksum {
		return fmt.Errorf("%w: run %s has %s, recorded %s", ErrChecksumMismatch, runID, got, meta.Checksum)
	}
	return nil
}

// Fingerprint hashes encoded frames. Two runs of the same scene with the
// same integrator produce the same fingerprint.
func Fingerprint(frames []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(frames))
}

func encodeFrames(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	dim := 0
	if len(records) > 0 {
		dim = len(records[0].Velocity)
	}

	header := []string{"tick", "id", "mass"}
	for _, prefix := range []string{"p", "v", "a"} {
		for i := 0; i < dim; i++ {
			header = append(header, fmt.Sprintf("%s%d", prefix, i))
		}
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range records {
		if len(r.Velocity) != dim || len(r.Acceleration) != dim {
			return nil, fmt.Errorf("storage: body %d at tick %d has %d components, want %d", r.ID, r.Tick, len(r.Velocity), dim)
		}
		if r.Position != nil && len(r.Position) != dim {
			return nil, fmt.Errorf("storage: body %d at tick %d has a %d-component position, want %d", r.ID, r.Tick, len(r.Position), dim)
		}
		row := []string{strconv.Itoa(r.Tick), strconv.FormatInt(r.ID, 10), formatFloat(r.Mass)}
		position := r.Position
		if position == nil {
			position = make([]float64, dim)
		}
		for _, vec := range [][]float64{position, r.Velocity, r.Acceleration} {
			for _, x := range vec {
				row = append(row, formatFloat(x))
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeFrames(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Record{}, nil
	}

	width := len(records[0])
	if width < 3 || (width-3)%3 != 0 {
		return nil, fmt.Errorf("storage: malformed frames header with %d columns", width)
	}
	dim := (width - 3) / 3

	out := make([]Record, 0, len(records)-1)
	for i, row := range records[1:] {
		vals := make([]float64, len(row))
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: frames line %d: %w", i+2, err)
			}
			vals[j] = v
		}
		out = append(out, Record{
			Tick:         int(vals[0]),
			ID:           int64(vals[1]),
			Mass:         vals[2],
			Position:     vals[3 : 3+dim],
			Velocity:     vals[3+dim : 3+2*dim],
			Acceleration: vals[3+2*dim : 3+3*dim],
		})
	}

	return out, nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
