package main

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/kbukum/seqinput/config"
	"github.com/kbukum/seqinput/corpus"
	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/inputpipeline"
	"github.com/kbukum/seqinput/logger"
	"github.com/kbukum/seqinput/observability"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg      config.AppConfig
	log      *logger.Logger
	registry *inputpipeline.Registry
	shutdown []func(context.Context) error
}

// commonFlags registers flags shared by every command.
type commonFlags struct {
	configFile string
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "config file (default: search ./cmd/seqinput, ./config, .)")
	fs.StringVar(&c.logLevel, "log-level", "", "override logging.level")
}

// newFlagSet returns a flag set that reports parse errors to stderr.
func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("seqinput "+name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

// parseFlags parses args. When parsing stops the command, ok is false and
// code is its exit code.
func parseFlags(fs *pflag.FlagSet, args []string) (code int, ok bool) {
	err := fs.Parse(args)
	switch {
	case err == nil:
		return exitOK, true
	case stderrors.Is(err, pflag.ErrHelp):
		return exitOK, false
	default:
		return exitUsage, false
	}
}

// setup loads configuration, installs the logger, registers the S3 opener
// and starts telemetry when enabled.
func setup(ctx context.Context, flags commonFlags, stderr io.Writer) (*app, error) {
	var opts []config.LoaderOption
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}
	a := &app{}
	if err := config.LoadConfig("seqinput", &a.cfg, opts...); err != nil {
		return nil, errors.InvalidArgument("config", err.Error()).WithCause(err)
	}
	if flags.logLevel != "" {
		a.cfg.Logging.Level = flags.logLevel
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return nil, errors.InvalidArgument("config", err.Error()).WithCause(err)
	}

	logger.SetGlobalLogger(logger.NewWithWriter(&a.cfg.Logging, a.cfg.Name, stderr))
	logger.RegisterComponents()
	a.log = logger.Get(logger.ComponentCLI)

	mux := corpus.NewMux()
	s3, err := corpus.NewS3Opener(ctx, a.cfg.Storage.S3)
	if err != nil {
		return nil, err
	}
	mux.Register("s3", s3)
	corpus.SetDefault(mux)

	if a.cfg.Telemetry.Enabled {
		tp, err := observability.InitTracer(ctx, a.cfg.TracerConfig())
		if err != nil {
			return nil, errors.Internal(err)
		}
		a.shutdown = append(a.shutdown, tp.Shutdown)
		mp, err := observability.InitMeter(ctx, a.cfg.MeterConfig())
		if err != nil {
			a.close(ctx)
			return nil, errors.Internal(err)
		}
		a.shutdown = append(a.shutdown, mp.Shutdown)
		a.log.Debug("telemetry enabled", logger.Fields("endpoint", a.cfg.Telemetry.Endpoint))
	}

	a.registry = inputpipeline.NewRegistry()
	inputpipeline.RegisterBuiltins(a.registry,
		inputpipeline.WithOpener(mux),
		inputpipeline.WithLogger(logger.Get(logger.ComponentReader)),
		inputpipeline.WithMetrics(observability.DefaultReaderMetrics()),
	)
	return a, nil
}

// close flushes telemetry.
func (a *app) close(ctx context.Context) {
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](context.WithoutCancel(ctx)); err != nil {
			a.log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
}

// fail writes err to stderr as a JSON error document and returns the exit
// code for it.
func fail(stderr io.Writer, err error) int {
	appErr := errors.FromError(err)
	_ = json.NewEncoder(stderr).Encode(appErr.ToResponse())
	return exitError
}
