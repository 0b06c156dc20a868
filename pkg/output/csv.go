package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"mailsweep/pkg/models"
	"mailsweep/pkg/utils"
)

// Header written when the output file is created. Existing files are
// appended to without repeating it.
var csvHeader = []string{"email", "source_url"}

// CSVStore persists extraction results to a CSV file with header/append
// semantics and owns the deduplication the crawl core deliberately does
// not do: addresses are unique case-insensitively across the current run
// and all previously persisted rows.
type CSVStore struct {
	path string
	seen map[string]struct{} // Lowercased addresses already persisted or written this run
	log  *logrus.Entry
}

// NewCSVStore creates a store for the given output path.
func NewCSVStore(path string, log *logrus.Entry) *CSVStore {
	return &CSVStore{
		path: path,
		seen: make(map[string]struct{}),
		log:  log.WithField("output", path),
	}
}

// LoadExisting reads the current output file, seeding the dedup set with
// every address already persisted. A missing file is not an error; a
// malformed row is skipped with a warning rather than aborting the load.
func (s *CSVStore) LoadExisting() error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("No existing output file, starting fresh")
			return nil
		}
		return fmt.Errorf("%w: opening '%s': %w", utils.ErrFilesystem, s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Tolerate rows written by older versions
	loaded := 0
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			s.log.Warnf("Skipping malformed CSV row: %v", readErr)
			continue
		}
		if len(record) == 0 || record[0] == "" || record[0] == csvHeader[0] {
			continue // Blank row or header
		}
		s.seen[strings.ToLower(record[0])] = struct{}{}
		loaded++
	}
	s.log.Debugf("Seeded dedup set with %d persisted address(es)", loaded)
	return nil
}

// Append writes the new unique addresses from results to the output file,
// creating it with a header if needed. An address equal (ignoring case)
// to one already seen — persisted or earlier in results — is skipped; the
// first occurrence's original casing is kept. Returns how many rows were
// written.
func (s *CSVStore) Append(results []models.ExtractionResult) (int, error) {
	var fresh []models.ExtractionResult
	for _, r := range results {
		key := strings.ToLower(r.Email)
		if _, dup := s.seen[key]; dup {
			continue
		}
		s.seen[key] = struct{}{}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		s.log.Info("No new addresses to write")
		return 0, nil
	}

	writeHeader := false
	if info, statErr := os.Stat(s.path); errors.Is(statErr, os.ErrNotExist) {
		writeHeader = true
	} else if statErr != nil {
		return 0, fmt.Errorf("%w: stat '%s': %w", utils.ErrFilesystem, s.path, statErr)
	} else if info.Size() == 0 {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: opening '%s' for append: %w", utils.ErrFilesystem, s.path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if writeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return 0, fmt.Errorf("%w: writing header: %w", utils.ErrFilesystem, err)
		}
	}
	for _, r := range fresh {
		if err := writer.Write([]string{r.Email, r.SourceURL}); err != nil {
			return 0, fmt.Errorf("%w: writing row for '%s': %w", utils.ErrFilesystem, r.Email, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("%w: flushing '%s': %w", utils.ErrFilesystem, s.path, err)
	}

	s.log.Infof("Wrote %d new address(es)", len(fresh))
	return len(fresh), nil
}
