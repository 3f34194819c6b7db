package filereader

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"goldilocks/internal/models"

	"go.uber.org/zap"
)

const (
	fieldCount      = 4
	emptyPathMarker = `""`
	maxLineSize     = 1 << 20
)

// FileReader is the first pipeline stage: it reads URL records from a
// comma-separated file and emits them as models.Record values.
//
// The first line is a header and is skipped. Each following line holds
// protocol,host_name,port,path. An empty port or path cell means the component
// is absent; a path cell of "" means a present empty path. The path is the last
// column, so it may itself contain commas. A line longer than 1 MiB fails the
// whole read.
type FileReader struct {
	path string
}

// New creates a new FileReader
func New(path string) *FileReader {
	return &FileReader{path: path}
}

func (fr *FileReader) Name() string { return "filereader" }

func (fr *FileReader) Execute(ctx context.Context, input <-chan interface{}, output chan<- interface{}, logger *zap.Logger) error {
	file, err := os.Open(fr.path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	isHeader := true
	lineNo := 0
	recordCount := 0
	skipped := 0

	for scanner.Scan() {
		lineNo++
		select {
		case <-ctx.Done():
			logger.Warn("file reading interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		default:
			if isHeader {
				isHeader = false
				continue
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			u, err := DecodeLine(line)
			if err != nil {
				logger.Warn("skipping malformed record",
					zap.Int("line", lineNo),
					zap.Error(err))
				skipped++
				continue
			}
			logger.Debug("read record", zap.Int("line", lineNo), zap.Stringer("url", u))
			output <- models.Record{Index: recordCount, Line: lineNo, URL: u}
			recordCount++
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	logger.Info("finished reading records",
		zap.Int("total_records", recordCount),
		zap.Int("skipped", skipped))
	return nil
}

// DecodeLine splits one data line into a URL. Components are kept verbatim apart
// from surrounding whitespace; only the port must be a number in 0..65535.
func DecodeLine(line string) (models.URL, error) {
	fields := strings.SplitN(line, ",", fieldCount)
	if len(fields) != fieldCount {
		return models.URL{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var port *uint16
	if fields[2] != "" {
		n, err := strconv.ParseUint(fields[2], 10, 16)
		if err != nil {
			return models.URL{}, fmt.Errorf("invalid port %q: %w", fields[2], err)
		}
		port = models.Port(uint16(n))
	}

	var path *string
	switch fields[3] {
	case "":
	case emptyPathMarker:
		path = models.Path("")
	default:
		path = models.Path(fields[3])
	}

	return models.NewURL(fields[0], fields[1], port, path), nil
}
