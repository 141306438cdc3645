package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"grayedit/constants"
	"grayedit/gray"
	"grayedit/utils"
)

// ErrInvalidMode is returned by Schedule for an unknown scheduling scheme.
var ErrInvalidMode = errors.New("scheduler: invalid scheduling scheme")

// Config selects the scheduling scheme and where tasks, images and results live.
type Config struct {
	DataDirs       string // Represents the data directories to use to load the images, e.g. "small+big".
	Mode           string // Represents which scheduler scheme to use: s, parfiles or parslices
	ThreadCount    int    // Runs parallel version with the specified number of threads
	SubThreadCount int    // Only for parfiles. Number of row slices each worker splits an image into.
	EffectsPath    string // JSON stream of tasks; defaults to constants.EffectsPathFile
	InDir          string // defaults to constants.InDir
	OutDir         string // defaults to constants.OutDir
	ResultsPath    string // results appended as JSON lines; defaults to constants.ResultsPath
	Logger         *logrus.Logger
}

// Result is one line of the results file. Read back by the benchmark.
type Result struct {
	Mode         string  `json:"mode"`
	Threads      int     `json:"threads"`
	TimeElapsed  float64 `json:"timeElapsed"`
	TimeParallel float64 `json:"timeParallel"`
	DataDir      string  `json:"datadir"`
}

// withDefaults fills the zero fields of 'config'.
func (config Config) withDefaults() Config {
	if config.EffectsPath == "" {
		config.EffectsPath = constants.EffectsPathFile
	}
	if config.InDir == "" {
		config.InDir = constants.InDir
	}
	if config.OutDir == "" {
		config.OutDir = constants.OutDir
	}
	if config.ResultsPath == "" {
		config.ResultsPath = constants.ResultsPath
	}
	if config.ThreadCount < 1 {
		config.ThreadCount = 1
	}
	if config.SubThreadCount < 1 {
		config.SubThreadCount = 1
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return config
}

// Schedule runs the correct version based on the Mode field of the configuration value
func Schedule(config Config) error {
	config = config.withDefaults()
	switch config.Mode {
	case "s":
		return RunSequential(config)
	case "parfiles":
		return RunParallelFiles(config)
	case "parslices":
		return RunParallelSlices(config)
	}
	return fmt.Errorf("%w: %q", ErrInvalidMode, config.Mode)
}

// processTask loads the image of 'task', applies its effects with 'engine' and saves the result.
func processTask(engine *gray.Engine, task *utils.Task, logger *logrus.Logger) error {
	log := logger.WithFields(logrus.Fields{
		"in":      task.InPath,
		"out":     task.OutPath,
		"effects": task.Effects,
	})
	log.Debug("processing image")

	effects, err := gray.ParseEffects(task.Effects)
	if err != nil {
		return err
	}
	img, err := gray.Load(task.InPath)
	if err != nil {
		return err
	}
	out, err := engine.ApplyAll(img, effects)
	if err != nil {
		return fmt.Errorf("%s: %w", task.InPath, err)
	}
	if err := saveOutput(out, task.OutPath); err != nil {
		return err
	}
	log.WithField("size", fmt.Sprintf("%dx%d", out.Width, out.Height)).Debug("image saved")
	return nil
}

// saveOutput saves 'img' to 'path', creating the output directory if needed.
func saveOutput(img *gray.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", gray.ErrSave, err)
	}
	return img.Save(path)
}

// writeResult appends the timings of a run to the results file.
func writeResult(config Config, threads int, elapsed, parallel time.Duration) error {
	line, err := json.Marshal(Result{
		Mode:         config.Mode,
		Threads:      threads,
		TimeElapsed:  elapsed.Seconds(),
		TimeParallel: parallel.Seconds(),
		DataDir:      config.DataDirs,
	})
	if err != nil {
		return err
	}
	config.Logger.WithFields(logrus.Fields{
		"mode":     config.Mode,
		"threads":  threads,
		"elapsed":  elapsed,
		"parallel": parallel,
		"datadir":  config.DataDirs,
	}).Info("run complete")
	return utils.WriteToFile(config.ResultsPath, string(line)+"\n")
}
