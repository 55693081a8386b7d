package seller

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped roster files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based roster loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seller-loader").Logger(),
	}
}

// Load reads a gzipped roster file and returns an IDSet. The file is expected
// to contain one seller id per line.
func (l *fileLoader) Load(ctx context.Context, path string) (IDSet, error) {
	l.logger.Info().Str("file", path).Msg("loading seller roster file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open roster file")
		return nil, fmt.Errorf("failed to open roster file %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	set := NewMapIDSet(1024).(*mapIDSet)

	scanner := bufio.NewScanner(gzipReader)
	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%10_000 == 0 {
			select {
			case <-ctx.Done():
				l.logger.Warn().Str("file", path).Msg("roster loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set.Add(line)
			lineCount++
		}
	}

	if err := scanner.Err(); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading roster file")
		return nil, fmt.Errorf("error reading roster file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("sellers_loaded", set.Size()).
		Msg("seller roster file loaded successfully")

	return set, nil
}
