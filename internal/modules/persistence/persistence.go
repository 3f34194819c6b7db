package persistence

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"goldilocks/internal/models"

	"go.uber.org/zap"
)

// Options controls how a Writer orders and filters rendered records.
type Options struct {
	Sort   bool // Order by models.URL.Compare instead of input order
	Unique bool // Drop records equal to an earlier one
}

// Writer is the final pipeline stage. It gathers every models.Rendered it
// receives and writes their debug strings, one per line, once the input is
// exhausted.
type Writer struct {
	out        io.Writer
	outputPath string
	opts       Options
}

// NewFile creates a Writer that writes to outputPath, creating parent directories as needed.
func NewFile(outputPath string, opts Options) *Writer {
	return &Writer{outputPath: outputPath, opts: opts}
}

// NewStream creates a Writer that writes to w.
func NewStream(w io.Writer, opts Options) *Writer {
	return &Writer{out: w, opts: opts}
}

func (w *Writer) Name() string { return "persistence" }

// Execute collects rendered records from input and writes them out.
// Nothing is written if the context is done once the input is drained, and a
// file target is replaced only after the new contents are complete.
func (w *Writer) Execute(ctx context.Context, input <-chan interface{}, output chan<- interface{}, logger *zap.Logger) error {
	var records []models.Rendered
	for item := range input {
		select {
		case <-ctx.Done():
			logger.Warn("persistence interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		default:
			r, ok := item.(models.Rendered)
			if !ok {
				logger.Warn("invalid input type, expected Rendered", zap.Any("type", item))
				continue
			}
			records = append(records, r)
		}
	}

	if err := ctx.Err(); err != nil {
		logger.Warn("persistence skipped", zap.Error(err))
		return err
	}

	total := len(records)
	records = Arrange(records, w.opts)

	if w.out != nil {
		if err := writeLines(w.out, records); err != nil {
			return err
		}
	} else if err := w.replaceFile(records); err != nil {
		return err
	}

	logger.Info("persistence statistics",
		zap.Int("received", total),
		zap.Int("written", len(records)),
		zap.Int("duplicates", total-len(records)),
		zap.Bool("sorted", w.opts.Sort))
	return nil
}

func writeLines(out io.Writer, records []models.Rendered) error {
	bw := bufio.NewWriter(out)
	for _, r := range records {
		if _, err := bw.WriteString(r.Text + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// replaceFile writes records to a temporary file next to outputPath and renames
// it over outputPath.
func (w *Writer) replaceFile(records []models.Rendered) (err error) {
	dir := filepath.Dir(w.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.outputPath)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := writeLines(tmp, records); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.outputPath)
}

// Arrange restores input order (or sorts, with opts.Sort) and, with
// opts.Unique, keeps only the first record of each group of equal URLs.
// Candidates for equality are found by hash and confirmed with Equal.
func Arrange(records []models.Rendered, opts Options) []models.Rendered {
	out := make([]models.Rendered, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	if opts.Unique {
		buckets := make(map[uint64][]models.URL, len(out))
		kept := out[:0]
		for _, r := range out {
			if containsEqual(buckets[r.Hash], r.URL) {
				continue
			}
			buckets[r.Hash] = append(buckets[r.Hash], r.URL)
			kept = append(kept, r)
		}
		out = kept
	}

	if opts.Sort {
		sort.SliceStable(out, func(i, j int) bool { return out[i].URL.Compare(out[j].URL) < 0 })
	}
	return out
}

func containsEqual(urls []models.URL, u models.URL) bool {
	for _, v := range urls {
		if v.Equal(u) {
			return true
		}
	}
	return false
}
