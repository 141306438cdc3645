package scheduler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"grayedit/gray"
	"grayedit/utils"
)

// executeTasks picks tasks from 'taskQueue' and processes them until the queue is empty
// or 'ctx' is cancelled by a failing worker.
func executeTasks(ctx context.Context, taskQueue *utils.TaskQueue, engine *gray.Engine, config Config) error {
	for task := taskQueue.Dequeue(); task != nil; task = taskQueue.Dequeue() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processTask(engine, task, config.Logger); err != nil {
			return err
		}
	}
	return nil
}

// RunParallelFiles processes the images specified by 'config' deploying 'config.ThreadCount'
// goroutines that take whole images from a shared queue. Each worker splits the correlation
// of its image into 'config.SubThreadCount' row slices.
func RunParallelFiles(config Config) error {
	config = config.withDefaults()
	startTime := time.Now()

	taskQueue, err := utils.CreateTasks(config.EffectsPath, config.InDir, config.OutDir, config.DataDirs)
	if err != nil {
		return err
	}

	// if more threads than tasks, use number of tasks
	nThreads := min(config.ThreadCount, max(taskQueue.Len(), 1))

	engine := gray.NewEngine(config.SubThreadCount)
	parallelTime := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < nThreads; i++ {
		g.Go(func() error {
			return executeTasks(ctx, taskQueue, engine, config)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	totalParallelTime := time.Since(parallelTime)

	return writeResult(config, nThreads, time.Since(startTime), totalParallelTime)
}
