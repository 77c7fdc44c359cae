package quotes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/contactkeval/implied-vol/internal/pricing"
)

func writeTempChain(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp chain: %v", err)
	}
	return path
}

func TestCSVSourceParsesChain(t *testing.T) {
	path := writeTempChain(t,
		"underlying,type,spot,strike,expiry_years,rate,carry,price\n"+
			"SPY,call,450,460,0.25,0.05,0.05,8.50\n"+
			"SPY,put,450,440,0.25,0.05,0.05,7.25\n"+
			"QQQ,call,380,390,0.5,0.05,0.05,12.00\n")

	src := NewCSVSource(path, nil)
	chain, err := src.Quotes("SPY")
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 SPY quotes, got %d", len(chain))
	}

	q := chain[0]
	if q.Type != pricing.Call || q.Spot != 450 || q.Strike != 460 ||
		q.Expiry != 0.25 || q.Rate != 0.05 || q.Carry != 0.05 || q.Price != 8.50 {
		t.Fatalf("first quote parsed wrong: %+v", q)
	}
	if chain[1].Type != pricing.Put {
		t.Fatalf("second quote should be a put, got %+v", chain[1])
	}
}

func TestCSVSourceBadRow(t *testing.T) {
	path := writeTempChain(t, "SPY,call,450,460,0.25,0.05,0.05,not-a-price\n")

	src := NewCSVSource(path, nil)
	if _, err := src.Quotes("SPY"); err == nil {
		t.Fatal("expected parse error for bad price column")
	}
}

func TestCSVSourceFallsBackToSecondary(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), NewSyntheticSource())

	chain, err := src.Quotes("SYNTH")
	if err != nil {
		t.Fatalf("expected fallback to secondary, got error: %v", err)
	}
	if len(chain) == 0 {
		t.Fatal("expected quotes from synthetic secondary")
	}
}

func TestCSVSourceMissingFileNoSecondary(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), nil)
	if _, err := src.Quotes("SPY"); err == nil {
		t.Fatal("expected error for missing file without secondary")
	}
}
