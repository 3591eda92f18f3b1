package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingState   = errors.New("election.state is required")
	ErrMissingStage   = errors.New("election.stage is required")
	ErrInvalidDate    = errors.New("election.date must be an ISO date (YYYY-MM-DD)")
	ErrInvalidSpecial = errors.New("election.special must be TRUE or FALSE")
	ErrInvalidLevel   = errors.New("log level must be one of: debug, info, warn, error")
)

// Election holds the per-dataset constants stamped on every clean record.
type Election struct {
	State   string `yaml:"state"`
	Date    string `yaml:"date"`
	Stage   string `yaml:"stage"`
	Special string `yaml:"special"`
}

type profileFile struct {
	Election Election `yaml:"election"`
}

type Config struct {
	BaseDir    string
	InputDir   string
	OutputDir  string
	DataFile   string
	FIPSFile   string
	OutputFile string
	DBPath     string
	LogLevel   string
	Profile    string

	Election Election
}

func DefaultElection() Election {
	return Election{
		State:   "INDIANA",
		Date:    "2024-11-05",
		Stage:   "GEN",
		Special: "FALSE",
	}
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	base := getEnv("ELECTCLEAN_BASE_DIR", cwd)
	output := getEnv("ELECTCLEAN_OUTPUT_DIR", filepath.Join(base, "data", "processed"))

	cfg := Config{
		BaseDir:    base,
		InputDir:   getEnv("ELECTCLEAN_INPUT_DIR", filepath.Join(base, "data", "raw")),
		OutputDir:  output,
		DataFile:   getEnv("ELECTCLEAN_DATA_FILE", "part1_data.csv"),
		FIPSFile:   getEnv("ELECTCLEAN_FIPS_FILE", "part1_fips.csv"),
		OutputFile: getEnv("ELECTCLEAN_OUTPUT_FILE", "part1_clean.csv"),
		DBPath:     getEnv("ELECTCLEAN_DB_PATH", filepath.Join(base, "data", "ledger", "electclean.db")),
		LogLevel:   getEnv("ELECTCLEAN_LOG_LEVEL", "info"),
		Profile:    getEnv("ELECTCLEAN_PROFILE", ""),
		Election:   DefaultElection(),
	}

	if strings.TrimSpace(cfg.Profile) != "" {
		election, err := LoadProfile(cfg.Profile)
		if err != nil {
			return Config{}, err
		}
		cfg.Election = election
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadProfile reads an election profile YAML file. Fields left out of the
// file keep their default values.
func LoadProfile(path string) (Election, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Election{}, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := profileFile{Election: DefaultElection()}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Election{}, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	e := profile.Election
	e.State = strings.ToUpper(strings.TrimSpace(e.State))
	e.Stage = strings.ToUpper(strings.TrimSpace(e.Stage))
	e.Special = strings.ToUpper(strings.TrimSpace(e.Special))
	e.Date = strings.TrimSpace(e.Date)

	if err := e.Validate(); err != nil {
		return Election{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return e, nil
}

func (e Election) Validate() error {
	if e.State == "" {
		return ErrMissingState
	}
	if e.Stage == "" {
		return ErrMissingStage
	}
	if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}
	if e.Special != "TRUE" && e.Special != "FALSE" {
		return fmt.Errorf("%w: %q", ErrInvalidSpecial, e.Special)
	}
	return nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)
	}
	return c.Election.Validate()
}

func (c Config) DataPath() string {
	return filepath.Join(c.InputDir, c.DataFile)
}

func (c Config) FIPSPath() string {
	return filepath.Join(c.InputDir, c.FIPSFile)
}

func (c Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required setting: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
