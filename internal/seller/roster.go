package seller

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// roster implements Roster over the union of one or more roster files.
type roster struct {
	sets   []IDSet
	logger zerolog.Logger
	// No mutex needed - id sets are read-only after initialization
}

// RosterConfig holds configuration for the seller roster.
type RosterConfig struct {
	// FilePaths is the list of roster file paths (or S3 keys) to load.
	FilePaths []string
}

// DefaultRosterConfig returns the default roster configuration.
func DefaultRosterConfig() *RosterConfig {
	return &RosterConfig{
		FilePaths: []string{
			"data/sellers/roster.gz",
		},
	}
}

// NewRoster loads every configured roster file through the given loader and
// merges them into one lookup set. Files are loaded concurrently; any load
// failure fails the whole initialisation.
func NewRoster(ctx context.Context, config *RosterConfig, loader Loader, logger zerolog.Logger) (Roster, error) {
	if config == nil {
		config = DefaultRosterConfig()
	}

	logger = logger.With().Str("component", "seller-roster").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Msg("initialising seller roster")

	r := &roster{
		sets:   make([]IDSet, 0, len(config.FilePaths)),
		logger: logger,
	}

	type loadResult struct {
		index int
		set   IDSet
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, path := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load roster file")
			return nil, fmt.Errorf("failed to load roster file %s: %w", config.FilePaths[i], result.err)
		}
		r.sets = append(r.sets, result.set)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.set.Size()).
			Msg("roster file loaded")
	}

	logger.Info().
		Int("total_sellers", r.Size()).
		Msg("seller roster initialised successfully")

	return r, nil
}

// Contains checks if a seller id appears in any of the loaded roster files.
func (r *roster) Contains(sellerID string) bool {
	for _, set := range r.sets {
		if set.Contains(sellerID) {
			return true
		}
	}
	return false
}

// Size returns the number of registered sellers across all files. Ids present
// in more than one file are counted once per file; the roster publisher keeps
// files disjoint in practice.
func (r *roster) Size() int {
	total := 0
	for _, set := range r.sets {
		total += set.Size()
	}
	return total
}

// Close releases resources held by the roster.
func (r *roster) Close() error {
	r.sets = nil

	r.logger.Info().Msg("seller roster closed")

	return nil
}
