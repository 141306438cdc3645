// Compute best times and speedups for the different scheduling modes and data directories
// and plot the speedups for each mode.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"grayedit/scheduler"
)

// Times maps mode -> data directory -> number of threads -> seconds (or speedup).
type Times map[string]map[string]map[int]float64

//=============================================================================
// Parsing, best times and speedups
//=============================================================================

// ParseResults parses the JSON lines of a results file, grouped by mode.
func ParseResults(r io.Reader) (map[string][]scheduler.Result, error) {
	decoder := json.NewDecoder(r)
	var results []scheduler.Result
	for {
		var data scheduler.Result
		if err := decoder.Decode(&data); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode result %d: %w", len(results)+1, err)
		}
		results = append(results, data)
	}
	return lo.GroupBy(results, func(r scheduler.Result) string { return r.Mode }), nil
}

// ComputeBestTimes keeps the best total time for each mode, data directory and number of threads.
// e.g. best["parfiles"]["big"][4] = 100 (parfiles took 100 seconds on "big" with 4 threads on its best run)
func ComputeBestTimes(dataSets map[string][]scheduler.Result) Times {
	best := make(Times)
	for mode, data := range dataSets {
		best[mode] = make(map[string]map[int]float64)
		for _, d := range data {
			if best[mode][d.DataDir] == nil {
				best[mode][d.DataDir] = make(map[int]float64)
			}
			if cur, ok := best[mode][d.DataDir][d.Threads]; !ok || d.TimeElapsed < cur {
				best[mode][d.DataDir][d.Threads] = d.TimeElapsed
			}
		}
	}
	return best
}

// ComputeSpeedups divides the sequential time of every data directory by the time of each parallel run.
// e.g. speedups["parfiles"]["big"][4] = 2 (parfiles with 4 threads processed "big" 2 times faster than mode s)
// obs: directories without a sequential run are skipped, and so are modes left with none
func ComputeSpeedups(times Times) Times {
	speedups := make(Times)
	for mode, data := range times {
		if mode == "s" {
			continue
		}
		for dataDir, threadsData := range data {
			seq, ok := times["s"][dataDir][1]
			if !ok {
				continue
			}
			if speedups[mode] == nil {
				speedups[mode] = make(map[string]map[int]float64)
			}
			speedups[mode][dataDir] = make(map[int]float64)
			for threads, elapsed := range threadsData {
				if elapsed > 0 {
					speedups[mode][dataDir][threads] = seq / elapsed
				}
			}
		}
	}
	return speedups
}

//=============================================================================
// Plotting methods
//=============================================================================

// CustomYTicks forces the plotter to label every Y tick with two decimals.
type CustomYTicks struct{}

func (CustomYTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = fmt.Sprintf("%.2f", ticks[i].Value)
	}
	return ticks
}

// CustomXTicks forces the plotter to show every number of threads for which there are values.
type CustomXTicks struct {
	Threads []int
}

func (t CustomXTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, thread := range t.Threads {
		if float64(thread) >= min && float64(thread) <= max {
			ticks = append(ticks, plot.Tick{Value: float64(thread), Label: fmt.Sprintf("%d", thread)})
		}
	}
	return ticks
}

// PlotSpeedups saves one speedup-<mode>.png per mode into 'outDir' and returns the paths written.
func PlotSpeedups(speedups Times, outDir string) ([]string, error) {
	var paths []string
	modes := lo.Keys(speedups)
	slices.Sort(modes)
	for _, mode := range modes {
		data := speedups[mode]
		p := plot.New()
		p.Title.Text = fmt.Sprintf("\nEditor speedup graph (%s)", mode)
		p.X.Label.Text = "Number of Threads \n "
		p.Y.Label.Text = "\nSpeedup"
		p.Title.Padding = vg.Points(20)
		p.Title.TextStyle.Font.Size = vg.Points(15)
		p.X.Label.Padding = vg.Points(5)
		p.Y.Label.Padding = vg.Points(5)
		p.Add(plotter.NewGrid())
		p.Y.Tick.Marker = CustomYTicks{}
		p.Legend.Top = true
		p.Legend.Left = true

		var allThreads []int
		dataDirs := lo.Keys(data)
		slices.Sort(dataDirs)
		for i, dataDir := range dataDirs {
			threadsData := data[dataDir]
			threads := lo.Keys(threadsData)
			slices.Sort(threads)
			allThreads = append(allThreads, threads...)

			pts := make(plotter.XYs, len(threads))
			for j, k := range threads {
				pts[j].X = float64(k)
				pts[j].Y = threadsData[k]
			}

			line, scatter, err := plotter.NewLinePoints(pts)
			if err != nil {
				return paths, fmt.Errorf("plot %s/%s: %w", mode, dataDir, err)
			}
			c := lineColor(i)
			line.LineStyle.Width = vg.Points(1)
			line.LineStyle.Color = c
			scatter.GlyphStyle.Color = c
			scatter.GlyphStyle.Radius = vg.Points(2)
			p.Add(line, scatter)
			p.Legend.Add(dataDir, line)
		}
		p.X.Tick.Marker = CustomXTicks{Threads: lo.Uniq(allThreads)}

		// 2% padding around the data
		xpad, ypad := (p.X.Max-p.X.Min)*0.02, (p.Y.Max-p.Y.Min)*0.02
		p.X.Min, p.X.Max = p.X.Min-xpad, p.X.Max+xpad
		p.Y.Min, p.Y.Max = p.Y.Min-ypad, p.Y.Max+ypad

		path := filepath.Join(outDir, fmt.Sprintf("speedup-%s.png", mode))
		if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
			return paths, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// colors for the lines of each data directory
var palette = []color.RGBA{
	{R: 0, G: 160, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 200, G: 120, B: 0, A: 255},
}

func lineColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// saveToFile writes 'data' as indented JSON.
func saveToFile(data Times, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

//=============================================================================
// Main
//=============================================================================

// run reads 'resultsPath' and writes bestTimes.txt, speedups.txt and the plots into 'outDir'.
func run(resultsPath, outDir string, logger *logrus.Logger) error {
	file, err := os.Open(resultsPath)
	if err != nil {
		return err
	}
	defer file.Close()

	dataSets, err := ParseResults(file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	bestTimes := ComputeBestTimes(dataSets)
	if err := saveToFile(bestTimes, filepath.Join(outDir, "bestTimes.txt")); err != nil {
		return err
	}
	speedups := ComputeSpeedups(bestTimes)
	if err := saveToFile(speedups, filepath.Join(outDir, "speedups.txt")); err != nil {
		return err
	}
	paths, err := PlotSpeedups(speedups, outDir)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"results": resultsPath, "plots": paths}).Info("benchmark plots saved")
	return nil
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// benchmark [subdir]: reads ./benchmark/results_<subdir>.txt and writes into ./benchmark/<subdir>/
	resultsPath, outDir := "./benchmark/results.txt", "./benchmark/"
	if len(os.Args) >= 2 {
		resultsPath = fmt.Sprintf("./benchmark/results_%s.txt", os.Args[1])
		outDir = filepath.Join("./benchmark", os.Args[1])
	}
	if err := run(resultsPath, outDir, logger); err != nil {
		logger.WithError(err).Fatal("benchmark failed")
	}
}
