package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// LoggerConfig maps the application config onto the logger's
func LoggerConfig(cfg *config.Config) logger.Config {
	// source locations only in dev
	addSource := cfg.Environment == logger.EnvironmentDev
	return logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)
}

// SetupLogger installs the process logger. With LOG_DIR set, output also goes
// to a timestamped session file in that directory and older session files
// beyond the retention count are removed. The returned file is nil when no
// directory is configured; otherwise the caller must close it.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	lcfg := LoggerConfig(cfg)

	var (
		out     io.Writer = os.Stdout
		logFile *os.File
	)
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(lcfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", lcfg.LogLevel(), "log_dir", cfg.LogDir)
	slog.Info(LogMsgStartingCoffeePOS,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage_driver", cfg.StorageDriver)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"max_recipes", cfg.MaxRecipes,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"sqlite_path", cfg.SQLitePath,
		"amqp_enabled", cfg.AMQPURL != "")

	return logFile, nil
}

// cleanupLogs removes the oldest session logs so that at most keep remain.
// Session names sort by their timestamp.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	slices.Sort(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
