package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ioutils "github.com/handiism/lesson-browser/internal/io"
	"github.com/handiism/lesson-browser/internal/model"
	"github.com/handiism/lesson-browser/internal/plan"
	"github.com/handiism/lesson-browser/internal/progress"
)

// DefaultCompanionTemplate is written into a new companion script.
const DefaultCompanionTemplate = "# Write your code here:\nprint('Hello World')"

// Settings holds all configuration options.
type Settings struct {
	// Workspace layout
	WorkspaceRoot string `json:"workspace_root" yaml:"workspace_root"`
	PlansDir      string `json:"plans_dir" yaml:"plans_dir"`

	// SaveLocation overrides where student_progress.json is written, as long
	// as the directory exists when a save happens.
	SaveLocation string `json:"save_location" yaml:"save_location"`

	// Listing rules
	LessonExtensions []string `json:"lesson_extensions" yaml:"lesson_extensions"`
	ExcludedNames    []string `json:"excluded_names" yaml:"excluded_names"`
	SortEntries      bool     `json:"sort_entries" yaml:"sort_entries"`

	// Notebook side effects
	LockNotebooks     bool   `json:"lock_notebooks" yaml:"lock_notebooks"`
	ScaffoldCompanion bool   `json:"scaffold_companion" yaml:"scaffold_companion"`
	CompanionTemplate string `json:"companion_template" yaml:"companion_template"`

	// Opener commands. Empty means the platform default.
	OpenCommand     string `json:"open_command" yaml:"open_command"`
	NotebookCommand string `json:"notebook_command" yaml:"notebook_command"`

	// Summary walk
	SummaryConcurrency int `json:"summary_concurrency" yaml:"summary_concurrency"`

	// Logging: debug, info, warn, error
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	cwd, _ := os.Getwd()
	return &Settings{
		WorkspaceRoot: cwd,
		PlansDir:      "plans",

		LessonExtensions: []string{model.ExtDocument, model.ExtNotebook},
		ExcludedNames:    []string{"Extensions"},
		SortEntries:      true,

		LockNotebooks:     true,
		ScaffoldCompanion: true,
		CompanionTemplate: DefaultCompanionTemplate,

		SummaryConcurrency: 4,

		LogLevel: "info",
	}
}

// Load reads settings from a JSON or YAML file. The format is picked from the
// file extension; anything other than .yaml/.yml is parsed as JSON.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// PlanRoot returns the absolute plan root directory.
func (s *Settings) PlanRoot() string {
	return filepath.Join(s.WorkspaceRoot, s.PlansDir)
}

// PlanKey returns the key prefix of every lesson under the plan root.
func (s *Settings) PlanKey() model.Key {
	return model.NormalizeKey(s.PlansDir)
}

// ToListerConfig converts settings to a plan.Config.
func (s *Settings) ToListerConfig() plan.Config {
	exts := s.LessonExtensions
	if len(exts) == 0 {
		exts = []string{model.ExtDocument, model.ExtNotebook}
	}
	return plan.Config{
		Extensions: exts,
		Excluded:   s.ExcludedNames,
		Sort:       s.SortEntries,
	}
}

// ToStoreOptions converts settings to progress.Options. The logger is left
// for the caller to fill in.
func (s *Settings) ToStoreOptions() progress.Options {
	return progress.Options{
		CustomSaveDir: s.SaveLocation,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
