package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/binaryphile/cdj-prep/internal/convert"
	"github.com/binaryphile/cdj-prep/internal/discover"
	"github.com/binaryphile/cdj-prep/internal/ffmpeg"
	"github.com/binaryphile/cdj-prep/internal/profile"
	"github.com/binaryphile/cdj-prep/internal/song"
)

const (
	exitOK         = 0
	exitDiscovery  = 1 // bad arguments, unreadable input, setup failure
	exitConversion = 2 // one or more files failed to convert
)

// result classifies what happened to one file.
type result int

const (
	resultConverted result = iota
	resultPlanned           // dry run, would have been converted
	resultSkipped           // already satisfied the profile
	resultFiltered          // missing the conversion tag
	resultFailed
)

func main() {
	os.Exit(run())
}

func run() int {
	conversionTag := flag.String("conversion_tag", "", "Only convert files carrying this tag with value 1")

	profilePath := flag.String("profile", "", "JSON file overriding the CDJ target profile")

	jobs := flag.Int("j", 1, "Parallel conversions")
	flag.IntVar(jobs, "jobs", 1, "Parallel conversions")

	timeout := flag.Duration("timeout", 10*time.Minute, "Timeout per external engine pass (0 disables)")

	asciiNames := flag.Bool("ascii-names", false, "Sanitize output file names to shell-safe ASCII")

	dryRun := flag.Bool("dry-run", false, "Show what would be done")

	verbose := flag.Bool("v", false, "Verbose output")
	flag.BoolVar(verbose, "verbose", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input_path> <output_path>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert music files into a Pioneer CDJ friendly format.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		return exitDiscovery
	}

	inputPath := flag.Arg(0)
	outputDir := flag.Arg(1)

	if *jobs < 1 {
		*jobs = 1
	}

	// Check the engine
	if !ffmpeg.Available() || !ffmpeg.ProbeAvailable() {
		fmt.Fprintln(os.Stderr, "Error: ffmpeg and ffprobe not found on PATH")
		return exitDiscovery
	}

	prof := profile.Default()
	if *profilePath != "" {
		var err error
		prof, err = profile.Load(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitDiscovery
		}
	}

	entries, err := discover.List(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitDiscovery
	}
	if len(entries) == 0 {
		fmt.Println("No audio files found.")
		return exitOK
	}

	// Two sources with the same display name would race on one output
	// path; refuse up front rather than let the last writer win.
	if conflicts := outputConflicts(entries, *asciiNames); len(conflicts) > 0 {
		fmt.Fprintln(os.Stderr, "Error: conflicting output names:")
		for _, name := range sortedKeys(conflicts) {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", name, strings.Join(conflicts[name], ", "))
		}
		return exitDiscovery
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: create output directory: %v\n", err)
		return exitDiscovery
	}

	fmt.Println("cdj-prep - CDJ/Rekordbox compatibility conversion")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Input: %s (%d audio files)\n", inputPath, len(entries))
	fmt.Printf("Output: %s\n", outputDir)
	if *conversionTag != "" {
		fmt.Printf("Converting only files tagged %s=1\n", *conversionTag)
	}
	fmt.Println()

	opts := convert.Options{
		Profile:    prof,
		ASCIINames: *asciiNames,
		DryRun:     *dryRun,
		Verbose:    *verbose,
	}

	var bar *progressbar.ProgressBar
	if !*verbose && !*dryRun && len(entries) > 1 {
		bar = progressbar.Default(int64(len(entries)))
	}

	var mu sync.Mutex
	counts := make(map[result]int)

	g := new(errgroup.Group)
	g.SetLimit(*jobs)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			res := processFile(entry, outputDir, *conversionTag, *timeout, opts)

			mu.Lock()
			counts[res]++
			mu.Unlock()

			if bar != nil {
				_ = bar.Add(1)
			}
			// A bad file never aborts the batch
			return nil
		})
	}
	_ = g.Wait()

	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Println(summaryLine(counts, *conversionTag != "", *dryRun))

	if counts[resultFailed] > 0 {
		return exitConversion
	}
	return exitOK
}

// processFile probes, analyzes, and conditionally converts one file.
// Errors are reported here and folded into the result; they are
// per-file and the batch moves on.
func processFile(entry discover.Entry, outputDir, conversionTag string, timeout time.Duration, opts convert.Options) result {
	ctx, cancel := invocationContext(timeout)
	s, err := song.NewNamed(ctx, entry.Path, entry.Name)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", entry.Path, err)
		return resultFailed
	}

	if !wantsConversion(s, conversionTag) {
		if opts.Verbose {
			fmt.Printf("'%s' is not tagged for conversion.\n", s.Name())
		}
		return resultFiltered
	}

	ctx, cancel = invocationContext(timeout)
	defer cancel()

	outcome, err := convert.Convert(ctx, s, outputDir, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return resultFailed
	}

	switch outcome {
	case convert.Converted:
		return resultConverted
	case convert.Planned:
		return resultPlanned
	default:
		return resultSkipped
	}
}

// wantsConversion reports whether the song passes the conversion-tag
// filter: the tag must be present with the exact value "1". An empty
// tag name disables filtering.
// This is a pure function: (song, tag name) → convert or skip.
func wantsConversion(s *song.Song, conversionTag string) bool {
	if conversionTag == "" {
		return true
	}
	value, ok := s.Tag(conversionTag)
	return ok && value == "1"
}

// summaryLine formats the end-of-batch report.
// This is a pure function: counts → report line.
func summaryLine(counts map[result]int, tagged, dryRun bool) string {
	var b strings.Builder
	if dryRun {
		fmt.Fprintf(&b, "Done: %d would be converted", counts[resultPlanned])
	} else {
		fmt.Fprintf(&b, "Done: %d converted", counts[resultConverted])
	}
	fmt.Fprintf(&b, ", %d already compliant", counts[resultSkipped])
	if tagged {
		fmt.Fprintf(&b, ", %d not tagged", counts[resultFiltered])
	}
	if counts[resultFailed] > 0 {
		fmt.Fprintf(&b, ", %d failed", counts[resultFailed])
	}
	return b.String()
}

// invocationContext bounds one engine pass. The original tool had no
// timeout at all, so zero keeps that behavior.
func invocationContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// outputConflicts groups source paths by output base name and returns
// the names claimed by more than one source.
func outputConflicts(entries []discover.Entry, asciiNames bool) map[string][]string {
	byName := make(map[string][]string)
	for _, e := range entries {
		name := e.Name
		if asciiNames {
			name = convert.SanitizeName(name)
		}
		byName[name] = append(byName[name], e.Path)
	}

	conflicts := make(map[string][]string)
	for name, paths := range byName {
		if len(paths) > 1 {
			conflicts[name] = paths
		}
	}
	return conflicts
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
