// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shared

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/config"
	"github.com/tombee/moysklad/internal/log"
	"github.com/tombee/moysklad/internal/metrics"
	"github.com/tombee/moysklad/internal/secrets"
	"github.com/tombee/moysklad/internal/tracing"
	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/moysklad"
	"github.com/tombee/moysklad/pkg/transport"
)

// transportOverride replaces the HTTP transport in tests.
var transportOverride transport.Transport

// SetTransportForTest routes every session through t and returns a restore
// function.
func SetTransportForTest(t transport.Transport) func() {
	prev := transportOverride
	transportOverride = t
	return func() { transportOverride = prev }
}

// LoadConfig loads configuration from --config or the default path.
func LoadConfig() (*config.Config, error) {
	if path := GetConfigPath(); path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// ConfigPath returns the path login state is saved to.
func ConfigPath() (string, error) {
	if path := GetConfigPath(); path != "" {
		return path, nil
	}
	return config.ConfigPath()
}

// NewLogger builds the CLI logger. Environment switches win over the file,
// --verbose wins over both.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logCfg := log.FromEnv()
	logCfg.Output = w
	if os.Getenv("MOYSKLAD_DEBUG") == "" && os.Getenv("MOYSKLAD_LOG_LEVEL") == "" {
		logCfg.Level = cfg.Log.Level
	}
	logCfg.Format = log.Format(cfg.Log.Format)
	logCfg.AddSource = logCfg.AddSource || cfg.Log.AddSource
	if GetVerbose() {
		logCfg.Level = "debug"
	}
	return log.New(logCfg)
}

// NewKeychainResolver returns the password resolver for cfg: an explicit
// password first, then the keychain.
func NewKeychainResolver(cfg *config.Config) *secrets.Resolver {
	return secrets.NewResolver(
		secrets.NewStaticBackend(cfg.Password),
		secrets.NewKeychainBackend(),
	)
}

// Session bundles a configured client with its observability hooks.
type Session struct {
	Client *moysklad.Client
	Config *config.Config
	Logger *slog.Logger

	closers []func(context.Context) error
}

// NewSession loads configuration, resolves credentials and builds the client.
// Diagnostics go to errOut.
func NewSession(ctx context.Context, errOut io.Writer) (*Session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, errOut)

	if cfg.Login == "" {
		return nil, &skladerrors.ConfigError{
			Key:    "login",
			Reason: "no login configured; set MOYSKLAD_LOGIN or run 'moysklad login'",
		}
	}
	password, err := NewKeychainResolver(cfg).Password(ctx, cfg.Login)
	if err != nil {
		return nil, &skladerrors.ConfigError{
			Key:    "password",
			Reason: fmt.Sprintf("no password for %s; set MOYSKLAD_PASSWORD or run 'moysklad login'", log.SanitizeLogin(cfg.Login)),
			Cause:  err,
		}
	}

	s := &Session{Config: cfg, Logger: logger}

	t, err := s.buildTransport(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := append(cfg.ClientOptions(),
		moysklad.WithTransport(t),
		moysklad.WithLogger(logger),
	)

	if path := GetMetricsFile(); path != "" {
		collector := metrics.NewCollector()
		t = collector.Transport(t)
		opts = append(opts, moysklad.WithTransport(t), moysklad.WithRetryHook(collector.RecordRetry))
		s.closers = append(s.closers, func(context.Context) error {
			return collector.WriteTextFile(path)
		})
	}

	if GetTrace() {
		version, _, _ := GetVersion()
		provider, err := tracing.NewConsoleProvider(tracing.ConsoleConfig{Writer: errOut, ServiceVersion: version})
		if err != nil {
			return nil, err
		}
		opts = append(opts, moysklad.WithTransport(tracing.WrapTransport(t, provider.Tracer())))
		s.closers = append(s.closers, provider.Shutdown)
	}

	client, err := moysklad.New(cfg.Login, password, opts...)
	if err != nil {
		return nil, err
	}
	s.Client = client

	logger.Debug("session ready",
		"login", log.SanitizeLogin(cfg.Login),
		"base_url", client.BaseURL(),
	)
	return s, nil
}

func (s *Session) buildTransport(cfg *config.Config, logger *slog.Logger) (transport.Transport, error) {
	base := transportOverride
	if base == nil {
		httpCfg := cfg.HTTPTransportConfig()
		httpCfg.Logger = logger
		if GetInsecure() {
			httpCfg.InsecureSkipVerify = true
		}
		httpTransport, err := transport.NewHTTPTransport(httpCfg)
		if err != nil {
			return nil, &skladerrors.ConfigError{Key: "http", Reason: err.Error(), Cause: err}
		}
		base = httpTransport
	}
	return transport.NewLoggingTransport(base, log.WithComponent(logger, "transport")), nil
}

// Close flushes traces and writes the metrics file.
func (s *Session) Close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithSession opens a session for cmd, runs fn and flushes the session
// hooks even when fn fails.
func WithSession(cmd *cobra.Command, fn func(ctx context.Context, s *Session) error) (err error) {
	ctx := cmd.Context()
	s, err := NewSession(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(context.WithoutCancel(ctx)); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(ctx, s)
}
