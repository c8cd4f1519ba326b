package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import log, recording what a single import run
// did to the ledger.
type Entry struct {
	Timestamp  time.Time
	File       string
	Account    string
	Parsed     int
	Skipped    int
	Duplicates int
	Merged     int
	Kept       int
	Added      int
}

// Header is the CSV header for imports.csv.
const Header = "timestamp,file,account,parsed,skipped,duplicates,merged,kept,added"

const (
	numFields     = 9
	logDir        = "logs"
	logFile       = "logs/imports.csv"
	colTimestamp  = 0
	colFile       = 1
	colAccount    = 2
	colParsed     = 3
	colSkipped    = 4
	colDuplicates = 5
	colMerged     = 6
	colKept       = 7
	colAdded      = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colAccount] = e.Account
	row[colParsed] = strconv.Itoa(e.Parsed)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colMerged] = strconv.Itoa(e.Merged)
	row[colKept] = strconv.Itoa(e.Kept)
	row[colAdded] = strconv.Itoa(e.Added)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	e := Entry{
		Timestamp: ts,
		File:      record[colFile],
		Account:   record[colAccount],
	}
	counts := []struct {
		name string
		col  int
		dst  *int
	}{
		{"parsed", colParsed, &e.Parsed},
		{"skipped", colSkipped, &e.Skipped},
		{"duplicates", colDuplicates, &e.Duplicates},
		{"merged", colMerged, &e.Merged},
		{"kept", colKept, &e.Kept},
		{"added", colAdded, &e.Added},
	}
	for _, c := range counts {
		n, err := strconv.Atoi(record[c.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing %s %q: %w", c.name, record[c.col], err)
		}
		*c.dst = n
	}
	return e, nil
}

// Append writes entries to <dataDir>/logs/imports.csv, creating the file
// and header if needed.
func Append(dataDir string, entries []Entry) error {
	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/imports.csv.
// Returns an empty slice if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	path := filepath.Join(dataDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
