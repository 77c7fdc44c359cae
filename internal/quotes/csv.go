package quotes

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/contactkeval/implied-vol/internal/logger"
	"github.com/contactkeval/implied-vol/internal/pricing"
)

// csvSource reads quote chains from a local CSV file.
//
// Expected columns:
//
//	underlying,type,spot,strike,expiry_years,rate,carry,price
//
// A header row is detected and skipped. Rows for other underlyings are
// filtered out.
type csvSource struct {
	path      string
	secondary Source
}

// NewCSVSource convenience constructor.
func NewCSVSource(path string, secondary Source) Source {
	return &csvSource{path: path, secondary: secondary}
}

func (csvSrc *csvSource) Secondary() Source {
	return csvSrc.secondary
}

func (csvSrc *csvSource) Quotes(underlying string) ([]Quote, error) {
	f, err := os.Open(csvSrc.path)
	if err != nil {
		if csvSrc.secondary != nil {
			logger.Debugf("csv open failed (%v), falling back to secondary", err)
			return csvSrc.secondary.Quotes(underlying)
		}
		return nil, fmt.Errorf("opening quotes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading quotes file %s: %w", csvSrc.path, err)
	}

	var out []Quote
	for i, row := range rows {
		if len(row) != 8 {
			return nil, fmt.Errorf("%s row %d: expected 8 columns, got %d", csvSrc.path, i+1, len(row))
		}
		// Skip a header row.
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[2]), "spot") {
			continue
		}
		q, err := parseQuoteRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", csvSrc.path, i+1, err)
		}
		if !strings.EqualFold(q.Underlying, underlying) {
			continue
		}
		out = append(out, q)
	}

	logger.Debugf("loaded %d quotes for %s from %s", len(out), underlying, csvSrc.path)
	return out, nil
}

func parseQuoteRow(row []string) (Quote, error) {
	typ, err := pricing.ParseOptionType(row[1])
	if err != nil {
		return Quote{}, err
	}

	vals := make([]float64, 6)
	for i, col := range row[2:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
		if err != nil {
			return Quote{}, fmt.Errorf("column %d: %w", i+3, err)
		}
		vals[i] = v
	}

	return Quote{
		Underlying: strings.ToUpper(strings.TrimSpace(row[0])),
		Type:       typ,
		Spot:       vals[0],
		Strike:     vals[1],
		Expiry:     vals[2],
		Rate:       vals[3],
		Carry:      vals[4],
		Price:      vals[5],
	}, nil
}
