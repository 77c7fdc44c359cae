// Package report writes solved smiles to disk as JSON and CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/implied-vol/internal/smile"
)

// WriteJSON writes the full smile to smile.json in outdir.
func WriteJSON(sm *smile.Smile, outdir string) error {
	b, err := json.MarshalIndent(sm, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "smile.json"), b, 0644)
}

// WriteCSV writes the solved points to smile.csv in outdir.
func WriteCSV(sm *smile.Smile, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "smile.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"underlying", "type", "strike", "expiry_years", "market_price", "implied_vol"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, p := range sm.Points {
		row := []string{
			sm.Underlying,
			p.Type,
			fmt.Sprintf("%.2f", p.Strike),
			fmt.Sprintf("%.4f", p.Expiry),
			fmt.Sprintf("%.4f", p.MarketPrice),
			fmt.Sprintf("%.6f", p.ImpliedVol),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
