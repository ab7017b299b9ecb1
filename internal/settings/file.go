package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rpggio/tally/internal/domain/habit"
)

// FileName is the fixed name of the settings blob inside the data directory.
const FileName = "settings.json"

// FileStore keeps the settings blob as one JSON file.
type FileStore struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

// NewFileStore returns a store for dir/settings.json. logger may be nil.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, FileName),
		now:    time.Now,
		logger: logger,
	}
}

// Path returns the settings file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the blob. A missing or unreadable blob yields defaults and no
// error; only filesystem failures other than absence are returned.
func (f *FileStore) Load(ctx context.Context) (AppSettings, error) {
	defaults := Defaults(f.now())

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return AppSettings{}, fmt.Errorf("reading settings: %w", err)
	}

	s, err := Decode(data, defaults)
	if err != nil {
		if f.logger != nil {
			f.logger.WarnContext(ctx, "settings corrupt, using defaults", "path", f.path, "error", err)
		}
		return defaults, nil
	}
	return s, nil
}

// Save writes the whole blob through a temporary file and a rename.
func (f *FileStore) Save(_ context.Context, s AppSettings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}

// Decode parses a settings blob and merges it over defaults: keys absent
// from the blob keep their default values and an unknown theme becomes
// light. Parse failures wrap ErrCorrupt.
func Decode(data []byte, defaults AppSettings) (AppSettings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return AppSettings{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	s := defaults.Clone()
	if _, ok := raw["habits"]; ok {
		s.Habits = nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return AppSettings{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, ok := raw["habits"]; ok {
		if s.Habits == nil {
			s.Habits = []habit.Habit{}
		}
		fillHabitDefaults(s.Habits, decodedAt(defaults))
	}
	if _, ok := s.Active(); !ok {
		s.ActiveHabitID = ""
	}
	if !s.Theme.Valid() {
		s.Theme = ThemeLight
	}
	return s, nil
}

// fillHabitDefaults gives habits stored without a colour or creation time
// the default colour and at.
func fillHabitDefaults(habits []habit.Habit, at time.Time) {
	for i := range habits {
		if habits[i].Color == "" {
			habits[i].Color = habit.DefaultColor
		}
		if habits[i].CreatedAt.IsZero() {
			habits[i].CreatedAt = at
		}
	}
}

// decodedAt is the creation time of the seeded default habit, which Load
// sets to the load time.
func decodedAt(defaults AppSettings) time.Time {
	for _, h := range defaults.Habits {
		if !h.CreatedAt.IsZero() {
			return h.CreatedAt
		}
	}
	return time.Now()
}
