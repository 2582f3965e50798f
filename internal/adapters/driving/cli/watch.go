package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aprova-labs/edital-cli/internal/logger"
)

var (
	watchSave       bool
	watchDebounceMS int
)

// defaultDebounceMS coalesces the burst of write events most PDF extractors
// emit while dumping a text file.
const defaultDebounceMS = 2000

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and parse edital text files as they appear",
	Long: `Watches a directory for new or updated text files and runs the
processing pipeline on each one. Useful as the tail end of an extraction
pipeline that drops .txt dumps into a folder.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "persist each report to the local database")
	watchCmd.Flags().IntVar(&watchDebounceMS, "debounce", 0, "debounce interval in milliseconds (0 = configured or default)")
	rootCmd.AddCommand(watchCmd)
}

// watchable reports whether an fsnotify event should trigger processing:
// creates and writes of visible, supported text files.
func watchable(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".txt", ".text", ".md":
	default:
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// debouncer coalesces rapid event bursts per path.
type debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timers   map[string]*time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

// trigger schedules fn for the path, resetting any pending run.
func (d *debouncer) trigger(path string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Stop()
	}
	d.timers[path] = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		fn()
	})
}

func debounceInterval() time.Duration {
	ms := watchDebounceMS
	if ms <= 0 && services.Config != nil {
		ms = services.Config.GetInt("watch.debounce_ms")
	}
	if ms <= 0 {
		ms = defaultDebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if services.Pipeline == nil {
		return errors.New("pipeline not configured")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx := cmd.Context()
	deb := newDebouncer(debounceInterval())
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watchable(event) {
				continue
			}
			logger.Debug("Event: %s %s", event.Op, event.Name)
			path := event.Name
			deb.trigger(path, func() {
				processWatched(ctx, cmd, path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// processWatched runs the pipeline on one file and prints a one-line summary.
func processWatched(ctx context.Context, cmd *cobra.Command, path string) {
	report, err := services.Pipeline.Process(ctx, path)
	if err != nil {
		cmd.PrintErrf("%s: %v\n", path, err)
		return
	}

	if watchSave && services.Reports != nil {
		if err := services.Reports.SaveReport(ctx, report); err != nil {
			cmd.PrintErrf("%s: saving report: %v\n", path, err)
		}
	}

	summary := fmt.Sprintf("%s: status=%s", path, report.Status)
	if report.Stats.TotalSubjects > 0 {
		summary += fmt.Sprintf(" subjects=%d topics=%d conf=%d",
			report.Stats.TotalSubjects, report.Stats.TotalTopics, report.Stats.Confidence)
	}
	if report.Decision != nil {
		summary += fmt.Sprintf(" decision=%s", report.Decision.Reason())
	}
	cmd.Println(summary)
}
