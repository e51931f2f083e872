package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/stint/internal/config"
	"github.com/wesleyorama2/stint/internal/output"
	"github.com/wesleyorama2/stint/malloc"
	"github.com/wesleyorama2/stint/meter"
	"github.com/wesleyorama2/stint/phase"
	"github.com/wesleyorama2/stint/result"
)

var (
	benchConfigPath string
	benchName       string
	benchBufferSize int
	benchIterations int
	benchOutput     string
	benchNoColor    bool
	benchShowJSON   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the instrumented example workload",
	Long: `Bench runs a small buffer fill-and-sum workload inside a fully
instrumented phase hierarchy: the root phase composes an allocation
counter, a latency sampler and a stopwatch, with child phases for the
fill and sum stages. It prints a summary, the RESULT line and
optionally the gathered JSON document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultBenchConfig()
		if benchConfigPath != "" {
			loaded, err := config.LoadConfig(benchConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("name") {
			cfg.Name = benchName
		}
		if cmd.Flags().Changed("size") {
			cfg.BufferSize = benchBufferSize
		}
		if cmd.Flags().Changed("iterations") {
			cfg.Iterations = benchIterations
		}
		if cmd.Flags().Changed("output") {
			cfg.Output = benchOutput
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		doc := runBench(cfg)

		scheme := output.DefaultColorScheme()
		if benchNoColor || !output.IsTerminal(os.Stdout) {
			scheme = output.NoColorScheme()
		}
		if err := printBench(os.Stdout, doc, scheme, benchShowJSON); err != nil {
			return err
		}

		if cfg.Output != "" {
			if err := writeDocument(cfg.Output, doc); err != nil {
				return fmt.Errorf("failed to write document: %w", err)
			}
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVarP(&benchConfigPath, "config", "c", "", "Workload config file (YAML or JSON)")
	benchCmd.Flags().StringVarP(&benchName, "name", "n", "Example", "Name of the root phase")
	benchCmd.Flags().IntVarP(&benchBufferSize, "size", "s", 1000000, "Buffer size in bytes")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "i", 1, "Number of workload iterations")
	benchCmd.Flags().StringVarP(&benchOutput, "output", "o", "", "Write the JSON document to a file")
	benchCmd.Flags().BoolVar(&benchNoColor, "no-color", false, "Disable colored output")
	benchCmd.Flags().BoolVar(&benchShowJSON, "json", false, "Print the gathered JSON document")
}

// runBench executes the workload under a fully instrumented phase
// hierarchy and returns the gathered document.
func runBench(cfg *config.BenchConfig) phase.Document {
	registry := malloc.NewRegistry()
	heap := malloc.NewHeap(nil, registry)

	sampler := meter.NewLatencySampler()

	// The stopwatch is declared last so its window excludes the other
	// meters' start/stop cost.
	root := phase.New(cfg.Name, meter.NewAllocCounterIn(registry), sampler, meter.NewStopwatch())
	fill := phase.NewTimed("Fill")
	sum := phase.NewTimed("Sum")

	total := 0

	root.Start()
	for it := 0; it < cfg.Iterations; it++ {
		itStart := time.Now()
		last := it == cfg.Iterations-1

		ptr := heap.Alloc(uintptr(cfg.BufferSize))
		buf := unsafe.Slice((*byte)(ptr), cfg.BufferSize)

		startOrResume(fill, it)
		for i := range buf {
			buf[i] = byte(i)
		}
		pauseOrStop(fill, last)

		startOrResume(sum, it)
		for i := range buf {
			total += int(int8(buf[i]))
		}
		pauseOrStop(sum, last)

		heap.Free(ptr)
		sampler.Record(time.Since(itStart))
	}
	root.Stop()

	root.AppendChild(fill)
	root.AppendChild(sum)
	root.Data().Put("sum", total)
	root.Data().Put("iterations", cfg.Iterations)
	root.Data().Put("bufferSize", cfg.BufferSize)

	return root.GatherData()
}

func startOrResume(p phase.Scope, iteration int) {
	if iteration == 0 {
		p.Start()
	} else {
		p.Resume()
	}
}

func pauseOrStop(p phase.Scope, last bool) {
	if last {
		p.Stop()
	} else {
		p.Pause()
	}
}

func printBench(w io.Writer, doc phase.Document, scheme *output.ColorScheme, showJSON bool) error {
	scheme.Title.Fprintln(w, doc.Name)

	if elapsed, ok := doc.Metrics["time"].(float64); ok {
		fmt.Fprintf(w, "%s %s\n", scheme.Key.Sprint("time:"), scheme.Value.Sprintf("%.3fms", elapsed))
	}
	if mem, ok := doc.Metrics["memory"].(meter.AllocMetrics); ok {
		fmt.Fprintf(w, "%s %s\n", scheme.Key.Sprint("peak memory:"), scheme.Value.Sprintf("%d bytes", mem.Peak))
	}

	r := result.New()
	r.AddDocument(doc)
	r.Sort()
	if err := r.Fprint(w); err != nil {
		return err
	}

	if showJSON {
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(raw))
	}
	return nil
}

func writeDocument(path string, doc phase.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}
