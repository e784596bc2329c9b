// Package ingest loads the symbol universe and refreshes reference
// prices from the market-data provider.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ksharma/stockpilot/internal/symbol"
)

// validTicker matches exchange listing symbols after quote stripping.
// Index rows and malformed entries fail the match and are dropped.
var validTicker = regexp.MustCompile(`^[A-Z&.-]+$`)

// LoadUniverse reads a symbol universe CSV and returns the cleaned,
// deduplicated list of exchange-suffixed tickers. The symbol column is
// auto-detected by name since exports vary in column layout.
func LoadUniverse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open universe file %s: %w", path, err)
	}
	defer f.Close()

	return ParseUniverse(f)
}

// ParseUniverse parses universe CSV content from a reader.
func ParseUniverse(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read universe header: %w", err)
	}

	symCol := detectSymbolColumn(header)
	if symCol < 0 {
		return nil, fmt.Errorf("no SYMBOL column in universe header: %v", header)
	}

	seen := make(map[string]bool)
	var symbols []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip bad lines, keep the batch going
		}
		if symCol >= len(record) {
			continue
		}

		raw := cleanField(record[symCol])
		if raw == "" || !validTicker.MatchString(raw) {
			continue
		}
		if seen[raw] {
			continue
		}
		seen[raw] = true
		symbols = append(symbols, symbol.WithSuffix(raw))
	}

	return symbols, nil
}

// detectSymbolColumn returns the index of the first header cell
// containing "SYMBOL" after cleaning, or -1.
func detectSymbolColumn(header []string) int {
	for i, col := range header {
		if strings.Contains(strings.ToUpper(cleanField(col)), "SYMBOL") {
			return i
		}
	}
	return -1
}

// cleanField strips BOM, stray quotes, and embedded newlines from a cell.
func cleanField(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "\n", "")
	return strings.TrimSpace(s)
}
