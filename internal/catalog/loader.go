package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped JSONL seed files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a gzipped seed file and returns its product records. The file
// is expected to contain one JSON product object per line.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]SeedProduct, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	products, err := scanSeedLines(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading seed file")
		return nil, fmt.Errorf("error reading seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products_loaded", len(products)).
		Msg("seed file loaded")

	return products, nil
}

// scanSeedLines parses JSONL seed records from r, honouring context
// cancellation between lines.
func scanSeedLines(ctx context.Context, r io.Reader) ([]SeedProduct, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []SeedProduct
	line := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var p SeedProduct
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, fmt.Errorf("invalid seed record on line %d: %w", line, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
