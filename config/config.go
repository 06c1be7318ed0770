package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"provisionhub/logger"
	"provisionhub/models"

	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir string
	LogPath   string
	DBPath    string
	LogLevel  string
}

type Configuration struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port            string        `mapstructure:"port"`
		ViewIdleTimeout time.Duration `mapstructure:"view_idle_timeout"`
	} `mapstructure:"server"`
	Logging struct {
		Level      string `mapstructure:"level"`
		Path       string `mapstructure:"path"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	} `mapstructure:"logging"`
	Table struct {
		SortCycle         string `mapstructure:"sort_cycle"`
		SearchPlaceholder string `mapstructure:"search_placeholder"`
		EmptyMessage      string `mapstructure:"empty_message"`
	} `mapstructure:"table"`
	Import struct {
		RecordsPath string `mapstructure:"records_path"`
	} `mapstructure:"import"`
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ExpandTilde resolves a leading ~ to the user's home directory.
func ExpandTilde(path string) (string, error) { return expandTilde(path) }

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	paths.ConfigDir = filepath.Join(userConfigDirBase, "provisionhub")
	paths.LogPath = filepath.Join(paths.ConfigDir, "logs", "app.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "provisionhub.db")
	paths.LogLevel = "INFO"
	return paths
}

func setDefaults(v *viper.Viper) {
	defaults := GetDefaultConfigPaths()
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8778")
	v.SetDefault("server.view_idle_timeout", "30m")
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("logging.path", defaults.LogPath)
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("table.sort_cycle", string(models.SortCycleThreeState))
	v.SetDefault("table.search_placeholder", "")
	v.SetDefault("table.empty_message", "No records match the current filters.")
	v.SetDefault("import.records_path", "services")
}

// Load reads defaults, the optional YAML file and PROVISIONHUB_* environment variables into a Configuration.
// It does not touch the global AppConfig.
func Load(cfgFile string) (Configuration, string, error) {
	var cfg Configuration
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(GetDefaultConfigPaths().ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PROVISIONHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configUsedMsg := "Using default/environment configuration."
	if readErr := v.ReadInConfig(); readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
		return cfg, "", fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), readErr)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if _, err := models.ParseSortCycle(cfg.Table.SortCycle); err != nil {
		return cfg, "", fmt.Errorf("table.sort_cycle: %w", err)
	}

	var err error
	if cfg.Database.Path, err = expandTilde(cfg.Database.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in database.path '%s': %v.\n", cfg.Database.Path, err)
	}
	if cfg.Logging.Path, err = expandTilde(cfg.Logging.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in logging.path '%s': %v.\n", cfg.Logging.Path, err)
	}
	return cfg, configUsedMsg, nil
}

// Init loads the configuration into AppConfig, applies flag overrides and (re)initialises the loggers.
func Init(cfgFile string, flagLogPath, flagLogLevel string) error {
	cfg, configUsedMsg, err := Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		return err
	}
	AppConfig = cfg

	if flagLogPath != "" {
		expandedPath, err := expandTilde(flagLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --log-file path '%s': %v. Using original path.\n", flagLogPath, err)
			expandedPath = flagLogPath
		}
		AppConfig.Logging.Path = expandedPath
	}
	if flagLogLevel != "" {
		AppConfig.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	if err := logger.InitGlobalLoggers(logger.Options{
		Path:       AppConfig.Logging.Path,
		Level:      AppConfig.Logging.Level,
		MaxSizeMB:  AppConfig.Logging.MaxSizeMB,
		MaxBackups: AppConfig.Logging.MaxBackups,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize global loggers with final config: %v\n", err)
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info(configUsedMsg)
	if flagLogPath != "" || flagLogLevel != "" {
		logger.Info("Log path/level flags may have overridden config file/defaults.")
	}
	logger.Info("Table sort cycle: %s", AppConfig.Table.SortCycle)
	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}

// SortCycle returns the project-wide header click convention.
func SortCycle() models.SortCycle {
	c, _ := models.ParseSortCycle(AppConfig.Table.SortCycle)
	return c
}
