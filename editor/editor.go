package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"grayedit/constants"
	"grayedit/scheduler"
)

const usage = "editor data_dir [mode] [number of threads] [number of sub-threads]"

const long = `Applies the effects listed in the effects file to every image of the data directories.

data_dir              = The data directories to use to load the images, separated by '+' (e.g. small+big).
mode                  = (s) run sequentially, (parfiles) process multiple files in parallel,
                        (parslices) process row slices of each image in parallel. Defaults to s.
number of threads     = Number of goroutines for the parallel modes. Defaults to 1.
number of sub-threads = Only for parfiles. Number of row slices each worker splits an image into. Defaults to 1.`

func main() {
	if err := newEditorCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newEditorCommand() *cobra.Command {
	config := scheduler.Config{Mode: "s", ThreadCount: 1, SubThreadCount: 1}
	var debug bool

	cmd := &cobra.Command{
		Use:          usage,
		Short:        "Grayscale image editor",
		Long:         long,
		Args:         cobra.RangeArgs(1, 4),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseArgs(&config, args); err != nil {
				return err
			}
			config.Logger = initLogger(debug)

			start := time.Now()
			if err := scheduler.Schedule(config); err != nil {
				config.Logger.WithError(err).Error("editor failed")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", time.Since(start).Seconds())
			return nil
		},
	}
	cmd.Flags().StringVar(&config.EffectsPath, "effects", constants.EffectsPathFile, "file with the JSON stream of tasks")
	cmd.Flags().StringVar(&config.InDir, "in", constants.InDir, "root of the input data directories")
	cmd.Flags().StringVar(&config.OutDir, "out", constants.OutDir, "directory for the processed images")
	cmd.Flags().StringVar(&config.ResultsPath, "results", constants.ResultsPath, "file the run timings are appended to")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug mode with verbose logging")
	return cmd
}

// parseArgs fills 'config' from the positional arguments.
func parseArgs(config *scheduler.Config, args []string) error {
	config.DataDirs = args[0]
	if len(args) > 1 {
		config.Mode = args[1]
	}
	if len(args) > 2 {
		threads, err := strconv.Atoi(args[2])
		if err != nil || threads < 1 {
			return fmt.Errorf("invalid number of threads %q", args[2])
		}
		config.ThreadCount = threads
	}
	if len(args) > 3 {
		subThreads, err := strconv.Atoi(args[3])
		if err != nil || subThreads < 1 {
			return fmt.Errorf("invalid number of sub-threads %q", args[3])
		}
		config.SubThreadCount = subThreads
	}
	return nil
}

// initLogger initializes the logger with the appropriate level
func initLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	}
	return logger
}
