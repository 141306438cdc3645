package scheduler

import (
	"time"

	"grayedit/gray"
	"grayedit/utils"
)

// RunParallelSlices processes the images specified by 'config' one at a time, dividing
// every correlation into 'config.ThreadCount' row slices computed by separate goroutines.
// obs: effects of an image are still applied in sequence; each waits for all slices of the previous.
func RunParallelSlices(config Config) error {
	config = config.withDefaults()
	startTime := time.Now()

	taskQueue, err := utils.CreateTasks(config.EffectsPath, config.InDir, config.OutDir, config.DataDirs)
	if err != nil {
		return err
	}

	engine := gray.NewEngine(config.ThreadCount)
	// cumulative time spent applying effects
	var totalParallelTime time.Duration
	for i := range taskQueue.Tasks {
		task := &taskQueue.Tasks[i]
		effects, err := gray.ParseEffects(task.Effects)
		if err != nil {
			return err
		}
		img, err := gray.Load(task.InPath)
		if err != nil {
			return err
		}

		startParallel := time.Now()
		out, err := engine.ApplyAll(img, effects)
		if err != nil {
			return err
		}
		totalParallelTime += time.Since(startParallel)

		if err := saveOutput(out, task.OutPath); err != nil {
			return err
		}
		config.Logger.WithField("out", task.OutPath).Debug("image saved")
	}

	return writeResult(config, config.ThreadCount, time.Since(startTime), totalParallelTime)
}
