package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

const (
	maxLineBytes = 1024 * 1024

	// DefaultPollInterval is how often Follow checks the file for growth.
	DefaultPollInterval = 250 * time.Millisecond
)

// Chunk is a batch of complete lines and the offset just past the last one.
type Chunk struct {
	Lines  []string
	Offset int64
}

// Last returns up to limit trailing lines of path. A limit of zero or less
// returns every line. A missing file yields an empty chunk at offset zero.
func Last(path string, limit int) (Chunk, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return Chunk{}, err
	}
	defer file.Close()

	var (
		ring  []string
		next  int
		total int
	)
	if limit > 0 {
		ring = make([]string, limit)
	}
	offset, err := scanLines(file, func(line string) {
		total++
		if limit <= 0 {
			ring = append(ring, line)
			return
		}
		ring[next] = line
		next = (next + 1) % limit
	})
	if err != nil {
		return Chunk{}, err
	}

	if limit <= 0 || total < limit {
		if limit > 0 {
			ring = ring[:total]
		}
		return Chunk{Lines: ring, Offset: offset}, nil
	}
	lines := make([]string, 0, limit)
	lines = append(lines, ring[next:]...)
	lines = append(lines, ring[:next]...)
	return Chunk{Lines: lines, Offset: offset}, nil
}

// ReadFrom returns the complete lines written at or after offset. When the
// file shrank below offset (rotation or truncation) it is read from the start.
func ReadFrom(path string, offset int64) (Chunk, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return Chunk{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Chunk{}, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Chunk{}, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	consumed, err := scanLines(file, func(line string) { lines = append(lines, line) })
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Lines: lines, Offset: offset + consumed}, nil
}

// Follow polls path from offset and calls emit for each appended line until
// ctx is done. Cancellation is not an error.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		chunk, err := ReadFrom(path, offset)
		if err != nil {
			return err
		}
		for _, line := range chunk.Lines {
			emit(line)
		}
		offset = chunk.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func openLog(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}

// scanLines reports complete, newline-terminated lines and returns the number
// of bytes they span. A trailing partial line is left for the next read so a
// writer caught mid-record is never split.
func scanLines(r io.Reader, emit func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadSlice('\n')
		switch {
		case err == nil:
			consumed += int64(len(line))
			emit(trimEOL(line))
		case errors.Is(err, bufio.ErrBufferFull):
			long, rest := readLong(reader, line)
			if rest != nil {
				return consumed, rest
			}
			if long == nil {
				return consumed, nil
			}
			consumed += int64(len(long))
			emit(trimEOL(long))
		case errors.Is(err, io.EOF):
			return consumed, nil
		default:
			return consumed, fmt.Errorf("read log file: %w", err)
		}
	}
}

// readLong assembles a line longer than the reader buffer. It returns nil
// when the line is unterminated at EOF.
func readLong(reader *bufio.Reader, head []byte) ([]byte, error) {
	buf := append([]byte(nil), head...)
	for {
		more, err := reader.ReadSlice('\n')
		buf = append(buf, more...)
		if len(buf) > maxLineBytes {
			return nil, fmt.Errorf("read log file: line exceeds %d bytes", maxLineBytes)
		}
		switch {
		case err == nil:
			return buf, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return nil, nil
		default:
			return nil, fmt.Errorf("read log file: %w", err)
		}
	}
}

func trimEOL(line []byte) string {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return string(line[:n])
}
