package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phildougherty/watsonassist/internal/app"
	"github.com/phildougherty/watsonassist/internal/config"
	"github.com/phildougherty/watsonassist/internal/logging"
)

// session holds what a command needs after configuration is loaded
type session struct {
	cfg     *config.Config
	logger  *logging.Logger
	app     *app.App
	closers []io.Closer
}

func (s *session) Close() {
	s.logger.Sync()
	for _, c := range s.closers {
		c.Close()
	}
}

// loadConfig reads the file named by --config
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newSession loads configuration, sets up logging and builds the app.
// With toFile set, logs go to the configured log file because the terminal
// belongs to the screen. Otherwise they go to stderr unless --log-file is given.
func newSession(cmd *cobra.Command, toFile bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "DEBUG"
	}
	logger := logging.NewLogger(level)
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetJSONFormat(cfg.Log.JSON)

	s := &session{cfg: cfg, logger: logger}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" && toFile {
		logFile = cfg.Log.File
	}
	if logFile != "" {
		f, err := logging.OpenFile(logFile)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(f)
		s.closers = append(s.closers, f)
	} else if toFile {
		logger.SetOutput(io.Discard)
	}

	a, err := app.New(cfg, logger.GetLogr())
	if err != nil {
		s.Close()
		return nil, err
	}
	s.app = a

	logger.WithFields(map[string]interface{}{
		"command": cmd.Name(),
		"target":  a.Target.Code(),
	}).Debug("Configuration loaded")
	return s, nil
}
