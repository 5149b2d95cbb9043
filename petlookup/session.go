package petlookup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Session bundles what every front-end needs: config, logger and controller
type Session struct {
	Config     *Config
	Log        *slog.Logger
	Client     *Client
	Controller *Controller

	logFile io.Closer
}

// OpenSession loads configuration and wires a controller to the service.
// Logs go to cfg.LogFile when set, else to fallback (nil discards).
func OpenSession(configPath string, fallback io.Writer) (*Session, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, fallback)
}

// NewSession wires a controller from an already loaded configuration
func NewSession(cfg *Config, fallback io.Writer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{Config: cfg}
	var err error

	out := fallback
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.logFile = f
		out = f
	}
	if out == nil {
		s.Log = discardLogger()
	} else {
		s.Log, err = NewLogger(out, cfg.LogLevel)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	s.Client, err = NewClient(cfg.Endpoint, cfg.Timeout, s.Log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Controller = NewController(s.Client, s.Log)

	return s, nil
}

// Close releases the log file, if any
func (s *Session) Close() error {
	if s.logFile != nil {
		return s.logFile.Close()
	}
	return nil
}
