package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/playcheck/internal/config"
	"github.com/five82/playcheck/internal/discovery"
	pcerrors "github.com/five82/playcheck/internal/errors"
	"github.com/five82/playcheck/internal/logging"
	"github.com/five82/playcheck/internal/processing"
	"github.com/five82/playcheck/internal/reporter"
)

func newCheckCommand(configFlag *string, verboseFlag *bool) *cobra.Command {
	var (
		jsonOut     bool
		noIntegrity bool
		noLog       bool
		logDir      string
		window      int
		sampleCount int
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Diagnose playback compatibility for a media file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("integrity-window") {
				cfg.IntegrityWindowSecs = window
			}
			if flags.Changed("sample-count") {
				cfg.FrameSampleCount = sampleCount
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("log-dir") {
				cfg.LogDir = logDir
			}
			if noIntegrity {
				cfg.SkipIntegrity = true
			}
			if noLog {
				cfg.NoLog = true
			}
			if *verboseFlag {
				cfg.Verbose = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runCheck(cfg, args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit NDJSON events instead of terminal output")
	cmd.Flags().BoolVar(&noIntegrity, "no-integrity", false, "Skip the decode validation pass")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "Disable run log file creation")
	cmd.Flags().StringVarP(&logDir, "log-dir", "l", "", "Run log directory")
	cmd.Flags().IntVar(&window, "integrity-window", config.DefaultIntegrityWindowSecs, "Decode validation window in seconds")
	cmd.Flags().IntVar(&sampleCount, "sample-count", config.DefaultFrameSampleCount, "Frames sampled per video stream for GOP estimation")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "Files analyzed concurrently in batch mode")

	return cmd
}

// loadConfig reads the config file named by the flag, or the default
// location when the flag is empty. An explicitly named file must exist.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}
	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(defaultPath, false)
}

func runCheck(cfg *config.Config, path string, jsonOut bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return pcerrors.NewInputNotFoundError(path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return pcerrors.NewInputNotFoundError(absPath, err)
	}

	logDir := cfg.LogDir
	if logDir == "" {
		if cache, err := os.UserCacheDir(); err == nil {
			logDir = filepath.Join(cache, appName, "logs")
		} else {
			cfg.NoLog = true
		}
	}

	runLog, err := logging.SetupRunLog(logDir, cfg.Verbose, cfg.NoLog)
	if err != nil {
		return err
	}
	defer func() { _ = runLog.Close() }()
	initGlobalLogging(cfg, runLog)

	var rep reporter.Reporter
	if jsonOut {
		rep = reporter.NewJSONReporter()
	} else {
		rep = reporter.NewTerminalReporter(cfg.Verbose)
	}

	if err := processing.CheckTools(cfg, rep); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if info.IsDir() {
		return runBatch(ctx, cfg, absPath, rep, runLog)
	}

	runLog.Info("checking file %s", absPath)
	if _, err := processing.AnalyzeFile(ctx, cfg, absPath, rep, logging.Global()); err != nil {
		runLog.Error("analysis failed: %v", err)
		return err
	}
	if runLog != nil {
		rep.Verbose("Run log: " + runLog.FilePath())
	}
	return nil
}

func runBatch(ctx context.Context, cfg *config.Config, dir string, rep reporter.Reporter, runLog *logging.RunLog) error {
	files, err := discovery.FindMediaFiles(dir)
	if err != nil {
		return err
	}
	runLog.Info("discovered %d media files in %s", len(files), dir)

	outcomes, err := processing.AnalyzeFiles(ctx, cfg, dir, files, rep, logging.Global())
	if err != nil {
		return err
	}

	failed := 0
	var firstErr error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			runLog.Error("analysis failed for %s: %v", outcome.Path, outcome.Err)
			failed++
			if firstErr == nil {
				firstErr = outcome.Err
			}
		}
	}
	if runLog != nil {
		rep.Verbose("Run log: " + runLog.FilePath())
	}

	// Per-file failures do not stop the batch, but a batch where nothing
	// could be analyzed is a failure.
	if failed == len(outcomes) && failed > 0 {
		return firstErr
	}
	return nil
}

func initGlobalLogging(cfg *config.Config, runLog *logging.RunLog) {
	level := logging.LevelInfo
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	switch {
	case runLog != nil:
		logging.Init(level, runLog.Writer())
	case cfg.Verbose:
		logging.Init(level, os.Stderr)
	default:
		logging.SetGlobal(logging.Disabled())
	}
}
