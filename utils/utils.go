package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"grayedit/gray"
	"grayedit/mysync"
)

// Task is a struct containing the information needed to process an image
// It is used both to parse the user input and as a task queue element to be processed by workers.
// @InPath: path to the input image
// @OutPath: path to the output image
// @Effects: effects to be applied in order, e.g. ["I", "blur:5", "edges"] (see gray.ParseEffect)
type Task struct {
	InPath  string   `json:"inPath"`
	OutPath string   `json:"outPath"`
	Effects []string `json:"effects"`
}

// TaskQueue is a list of tasks guarded by a TAS lock.
// obs: the sequential scheduler reads 'Tasks' directly, without the lock.
type TaskQueue struct {
	mysync.TASLock
	Tasks []Task
}

// NewTaskQueue creates an empty TaskQueue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{Tasks: make([]Task, 0)}
}

// Enqueue adds a new task to the queue in thread safe manner
func (tq *TaskQueue) Enqueue(task Task) {
	tq.Lock()
	tq.Tasks = append(tq.Tasks, task)
	tq.Unlock()
}

// Dequeue removes the first Task of the queue in thread safe manner and returns a pointer to it.
// Returns nil when the queue is empty.
func (tq *TaskQueue) Dequeue() *Task {
	tq.Lock()
	defer tq.Unlock()
	if len(tq.Tasks) == 0 {
		return nil
	}
	task := tq.Tasks[0]
	tq.Tasks = tq.Tasks[1:]
	return &task
}

// Len returns the number of queued tasks.
func (tq *TaskQueue) Len() int {
	tq.Lock()
	defer tq.Unlock()
	return len(tq.Tasks)
}

// CreateTasks combines the data directories given as "a+b" with the entries of the
// effects file to create a queue of tasks.
// Each entry yields one task per directory: inDir/dir/inPath -> outDir/dir_outPath.
func CreateTasks(effectsPath, inDir, outDir, dataDirs string) (*TaskQueue, error) {
	effectsFile, err := os.Open(effectsPath)
	if err != nil {
		return nil, fmt.Errorf("open effects file: %w", err)
	}
	defer effectsFile.Close()

	// e.g. "s+b" -> ["s", "b"]
	dirs := lo.Uniq(lo.Compact(strings.Split(dataDirs, "+")))
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no data directory in %q", dataDirs)
	}

	decoder := json.NewDecoder(effectsFile)
	tqueue := NewTaskQueue()
	for entry := 1; ; entry++ {
		var task Task
		if err := decoder.Decode(&task); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode effects file entry %d: %w", entry, err)
		}
		// fail before any image is loaded if an effect is misspelled
		if _, err := gray.ParseEffects(task.Effects); err != nil {
			return nil, fmt.Errorf("effects file entry %d: %w", entry, err)
		}
		tqueue.Tasks = append(tqueue.Tasks, lo.Map(dirs, func(dir string, _ int) Task {
			return Task{
				InPath:  filepath.Join(inDir, dir, task.InPath),
				OutPath: filepath.Join(outDir, dir+"_"+task.OutPath),
				Effects: task.Effects,
			}
		})...)
	}
	return tqueue, nil
}

// WriteToFile appends 'text' to 'filename', creating the file and its directory if needed.
func WriteToFile(filename string, text string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(text); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
