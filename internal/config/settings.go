package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"cloudeng.io/datetime"
	"github.com/BurntSushi/toml"
)

// icalDuration is the dur-value grammar of RFC 5545: weeks, or days and a
// time part, never years or months and never fractions.
var icalDuration = regexp.MustCompile(`^-?P(\d+W|\d+D(T(\d+H)?(\d+M)?(\d+S)?)?|T(\d+H)?(\d+M)?(\d+S)?)$`)

// Settings holds the runtime options shared by the CLI and the HTTP server.
// Every field is optional in the TOML file; missing values keep their defaults.
type Settings struct {
	// Language is the ISO 639-1 code used for user-facing messages.
	Language string `toml:"language"`

	// ListenAddr is the interface the HTTP server binds to.
	ListenAddr string `toml:"listen_addr"`

	// Port is the TCP port of the HTTP server.
	Port string `toml:"port"`

	// ZeroPlaceholder renders result components equal to 0 as "--".
	// The historical form could not tell "not computed" from "computed as 0";
	// turning this off prints the numeral instead.
	ZeroPlaceholder bool `toml:"zero_placeholder"`

	// CalendarReminder is an ISO8601 duration (e.g. "-P1D") attached as a
	// VALARM to exported anniversary events. Empty disables reminders.
	CalendarReminder string `toml:"calendar_reminder"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Language:         DefaultLanguage,
		ListenAddr:       LocalhostBindAddr,
		Port:             DefaultPort,
		ZeroPlaceholder:  DefaultZeroPlaceholder,
		CalendarReminder: DefaultReminder,
	}
}

// LoadSettings loads the settings from the default location.
// Returns the defaults if the file doesn't exist.
func LoadSettings() (Settings, error) {
	path, err := DefaultSettingsPath()
	if err != nil {
		return DefaultSettings(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads the settings from a specific path, layered over the defaults.
func LoadSettingsFrom(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("%s %s: %w", ErrSettingsLoad, path, err)
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// DefaultSettingsPath returns <UserConfigDir>/go-age/config.toml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, BinaryName, SettingsFileName), nil
}

// Validate checks the values that cannot be corrected silently.
func (s Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLangUnsupported, s.Language)
	}
	return ValidateReminder(s.CalendarReminder)
}

// ValidateReminder accepts an empty value (no alarm) or an ISO8601 duration
// that calendar clients accept as a VALARM trigger.
func ValidateReminder(reminder string) error {
	if reminder == "" {
		return nil
	}
	if _, err := datetime.ParseISO8601Duration(reminder); err != nil {
		return fmt.Errorf("%s: %w", ErrReminder, err)
	}
	if !icalDuration.MatchString(reminder) || strings.HasSuffix(reminder, "T") {
		return fmt.Errorf("%s: %q", ErrReminder, reminder)
	}
	return nil
}

// ValidatePort enforces a numeric port in [MinPort, MaxPort].
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPortNumber, err)
	}
	if p < MinPort || p > MaxPort {
		return fmt.Errorf("%s: %d", ErrPortRange, p)
	}
	return nil
}
