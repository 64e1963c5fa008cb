package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/snake/config"
)

// csvStream is an append-only CSV file whose header is written with the first row.
type csvStream struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{name: name, file: f}, nil
}

func (s *csvStream) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
		s.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, s.file); err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager handles structured run output: CSV streams, the effective
// config and one transcript file per session.
type OutputManager struct {
	dir      string
	windows  *csvStream
	sessions *csvStream
	eats     *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.windows, err = openStream(dir, "windows.csv"); err != nil {
		return nil, err
	}
	if om.sessions, err = openStream(dir, "sessions.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.eats, err = openStream(dir, "eats.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.windows.write([]WindowStats{stats})
}

// WriteSession writes a session summary to sessions.csv.
func (om *OutputManager) WriteSession(stats SessionStats) error {
	if om == nil {
		return nil
	}
	return om.sessions.write([]SessionStats{stats})
}

// WriteEat writes an eat row to eats.csv.
func (om *OutputManager) WriteEat(rec EatRecord) error {
	if om == nil {
		return nil
	}
	return om.eats.write([]EatRecord{rec})
}

// WriteTranscript saves a session transcript into the output directory and returns its path.
func (om *OutputManager) WriteTranscript(st *SessionTranscript) (string, error) {
	if om == nil || st == nil {
		return "", nil
	}
	return SaveTranscript(st, om.dir)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvStream{om.windows, om.sessions, om.eats} {
		if s == nil {
			continue
		}
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
