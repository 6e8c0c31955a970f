package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"go-eix/version"
)

// Default locations
const (
	DefaultConfigDir    = "/etc/eix"
	ConfigFileName      = "eix.ini"
	DefaultDatabasePath = "/var/cache/eix/portage.eix"
	DefaultPortDir      = "/var/db/repos/gentoo"
	LegacyPortDir       = "/usr/portage"
	DefaultCacheMethod  = "metadata-md5"
	DefaultCacheDB      = "/var/cache/eix/cache.db"
	DefaultLogLevel     = "info"

	globalSection  = "Global"
	overlayPrefix  = "overlay "
	profileDefault = "default"
)

// Config holds go-eix configuration. It is loaded once at startup and
// passed explicitly to everything that needs it.
type Config struct {
	Profile string

	// ConfigFile is the file that was looked for; Loaded tells whether it
	// existed
	ConfigFile string
	Loaded     bool

	DatabasePath string
	PortDir      string
	CacheMethod  string
	CacheDB      string
	LogLevel     string

	// AcceptGarbage keeps versions with trailing unparsable text instead
	// of rejecting them
	AcceptGarbage bool

	Debug bool

	Overlays []OverlayConfig
}

// OverlayConfig describes one repository layered over PortDir.
type OverlayConfig struct {
	Path        string
	Label       string // empty: read profiles/repo_name at update time
	CacheMethod string // empty: Config.CacheMethod
}

// LoadConfig loads configuration from configDir/eix.ini (DefaultConfigDir
// when configDir is empty). A missing file is not an error; defaults
// apply. Values in the profile section override [Global].
func LoadConfig(configDir, profile string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir
	}
	cfg := &Config{
		Profile:    profile,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
	}

	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		iniFile, err := ini.Load(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.Loaded = true

		global := iniFile.Section(globalSection)
		if cfg.Profile == "" || cfg.Profile == profileDefault {
			cfg.Profile = global.Key("profile_selected").String()
		}

		cfg.loadFromSection(global)
		if cfg.Profile != "" && cfg.Profile != profileDefault {
			if !iniFile.HasSection(cfg.Profile) {
				return nil, fmt.Errorf("profile %q not found in %s", cfg.Profile, cfg.ConfigFile)
			}
			cfg.loadFromSection(iniFile.Section(cfg.Profile))
		}
		cfg.loadOverlays(iniFile)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// loadFromSection copies the keys present in sec, later calls win.
func (cfg *Config) loadFromSection(sec *ini.Section) {
	if sec == nil {
		return
	}

	if key := sec.Key("database_path"); key.String() != "" {
		cfg.DatabasePath = key.String()
	}
	if key := sec.Key("portdir"); key.String() != "" {
		cfg.PortDir = key.String()
	}
	if key := sec.Key("cache_method"); key.String() != "" {
		cfg.CacheMethod = key.String()
	}
	if key := sec.Key("cache_db"); key.String() != "" {
		cfg.CacheDB = key.String()
	}
	if key := sec.Key("log_level"); key.String() != "" {
		cfg.LogLevel = key.String()
	}
	if sec.HasKey("accept_garbage") {
		cfg.AcceptGarbage = parseBool(sec.Key("accept_garbage").String())
	}
	if sec.HasKey("debug") {
		cfg.Debug = parseBool(sec.Key("debug").String())
	}
	if sec.HasKey("overlays") {
		cfg.Overlays = cfg.Overlays[:0]
		for _, path := range strings.Fields(sec.Key("overlays").String()) {
			cfg.Overlays = append(cfg.Overlays, OverlayConfig{Path: path})
		}
	}
}

// loadOverlays fills label and cache method from [overlay <path>] sections.
func (cfg *Config) loadOverlays(f *ini.File) {
	for i := range cfg.Overlays {
		o := &cfg.Overlays[i]
		name := overlayPrefix + o.Path
		if !f.HasSection(name) {
			continue
		}
		sec := f.Section(name)
		o.Label = sec.Key("label").String()
		o.CacheMethod = sec.Key("cache_method").String()
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	if cfg.PortDir == "" {
		cfg.PortDir = DefaultPortDir
		// Fall back to the pre-2019 location if the new one does not exist
		if _, err := os.Stat(cfg.PortDir); err != nil {
			if _, err := os.Stat(LegacyPortDir); err == nil {
				cfg.PortDir = LegacyPortDir
			}
		}
	}
	if cfg.CacheMethod == "" {
		cfg.CacheMethod = DefaultCacheMethod
	}
	if cfg.CacheDB == "" {
		cfg.CacheDB = DefaultCacheDB
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	for i := range cfg.Overlays {
		if cfg.Overlays[i].CacheMethod == "" {
			cfg.Overlays[i].CacheMethod = cfg.CacheMethod
		}
	}
}

// VersionParser returns the version parse policy for this configuration.
func (cfg *Config) VersionParser() version.Parser {
	return version.Parser{AcceptGarbage: cfg.AcceptGarbage}
}

// Save writes cfg as a [Global] section plus one section per overlay.
func (cfg *Config) Save(path string) error {
	f := ini.Empty()
	sec, err := f.NewSection(globalSection)
	if err != nil {
		return err
	}

	var overlays []string
	for _, o := range cfg.Overlays {
		overlays = append(overlays, o.Path)
	}
	for _, kv := range [][2]string{
		{"database_path", cfg.DatabasePath},
		{"portdir", cfg.PortDir},
		{"cache_method", cfg.CacheMethod},
		{"cache_db", cfg.CacheDB},
		{"log_level", cfg.LogLevel},
		{"accept_garbage", strconv.FormatBool(cfg.AcceptGarbage)},
		{"overlays", strings.Join(overlays, " ")},
	} {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return err
		}
	}

	for _, o := range cfg.Overlays {
		osec, err := f.NewSection(overlayPrefix + o.Path)
		if err != nil {
			return err
		}
		if o.Label != "" {
			osec.Key("label").SetValue(o.Label)
		}
		if o.CacheMethod != "" && o.CacheMethod != cfg.CacheMethod {
			osec.Key("cache_method").SetValue(o.CacheMethod)
		}
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

func parseBool(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch strings.ToLower(s) {
	case "yes", "on":
		return true
	}
	return false
}
