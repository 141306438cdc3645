package scheduler

import (
	"time"

	"grayedit/gray"
	"grayedit/utils"
)

// RunSequential processes the images specified by 'config' and the effects file one at a time,
// applying the effects of each on the calling goroutine.
func RunSequential(config Config) error {
	config = config.withDefaults()
	startTime := time.Now()

	taskQueue, err := utils.CreateTasks(config.EffectsPath, config.InDir, config.OutDir, config.DataDirs)
	if err != nil {
		return err
	}

	engine := gray.NewEngine(1)
	for i := range taskQueue.Tasks {
		if err := processTask(engine, &taskQueue.Tasks[i], config.Logger); err != nil {
			return err
		}
	}
	return writeResult(config, 1, time.Since(startTime), 0)
}
