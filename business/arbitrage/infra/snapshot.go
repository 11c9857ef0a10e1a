package infra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/solwatch/arbbot/business/arbitrage/app"
)

// FileSnapshotWriter persists one JSON record per scan cycle for offline
// analysis. Files are named by timestamp and cycle number so a directory
// listing sorts chronologically.
type FileSnapshotWriter struct {
	dir string
}

// NewFileSnapshotWriter creates the snapshot directory if needed.
func NewFileSnapshotWriter(dir string) (*FileSnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir %q: %w", dir, err)
	}
	return &FileSnapshotWriter{dir: dir}, nil
}

type observationRecord struct {
	Venue string `json:"venue"`
	Price string `json:"price"`
}

type opportunityRecord struct {
	ID              string   `json:"id"`
	Pair            string   `json:"pair"`
	BuyVenue        string   `json:"buyVenue"`
	SellVenue       string   `json:"sellVenue"`
	BuyPrice        string   `json:"buyPrice"`
	SellPrice       string   `json:"sellPrice"`
	PriceDiffPct    string   `json:"priceDiffPct"`
	CostTotalPct    string   `json:"costTotalPct"`
	NetProfitPct    string   `json:"netProfitPct"`
	RiskScore       string   `json:"riskScore,omitempty"`
	RiskLevel       string   `json:"riskLevel,omitempty"`
	RecommendedSize string   `json:"recommendedSize,omitempty"`
	AlternatePaths  []string `json:"alternatePaths,omitempty"`
}

type cycleRecord struct {
	Cycle         int64               `json:"cycle"`
	Timestamp     time.Time           `json:"timestamp"`
	Outcome       string              `json:"outcome"`
	Error         string              `json:"error,omitempty"`
	Observations  []observationRecord `json:"observations,omitempty"`
	Opportunity   *opportunityRecord  `json:"opportunity,omitempty"`
	CyclesRun     int64               `json:"cyclesRun"`
	CyclesSkipped int64               `json:"cyclesSkipped"`
	Opportunities int64               `json:"opportunities"`
}

// Write persists one cycle summary as a JSON file.
func (w *FileSnapshotWriter) Write(summary app.CycleSummary) error {
	record := cycleRecord{
		Cycle:         summary.Cycle,
		Timestamp:     summary.Timestamp,
		Outcome:       string(summary.Outcome),
		CyclesRun:     summary.Stats.CyclesRun,
		CyclesSkipped: summary.Stats.CyclesSkipped,
		Opportunities: summary.Stats.Opportunities,
	}
	if summary.Err != nil {
		record.Error = summary.Err.Error()
	}
	for _, obs := range summary.Observations {
		record.Observations = append(record.Observations, observationRecord{
			Venue: obs.Venue,
			Price: obs.Price.String(),
		})
	}
	if opp := summary.Opportunity; opp != nil {
		rec := &opportunityRecord{
			ID:           opp.ID,
			Pair:         opp.Pair.String(),
			BuyVenue:     opp.BuyVenue,
			SellVenue:    opp.SellVenue,
			BuyPrice:     opp.BuyPrice.String(),
			SellPrice:    opp.SellPrice.String(),
			PriceDiffPct: opp.PriceDiffPct.String(),
			CostTotalPct: opp.Costs.Total.String(),
			NetProfitPct: opp.NetProfitPct.String(),
		}
		if opp.Risk != nil {
			rec.RiskScore = opp.Risk.Score.StringFixed(2)
			rec.RiskLevel = string(opp.Risk.Level)
		}
		if opp.RecommendedSize != nil {
			rec.RecommendedSize = opp.RecommendedSize.String()
		}
		for _, candidate := range opp.AlternatePaths {
			if candidate.Evaluated {
				rec.AlternatePaths = append(rec.AlternatePaths,
					fmt.Sprintf("%s (%s%%)", candidate.String(), candidate.ProfitPct.StringFixed(4)))
			}
		}
		record.Opportunity = rec
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cycle %d snapshot: %w", summary.Cycle, err)
	}

	name := fmt.Sprintf("%s-cycle-%06d.json",
		summary.Timestamp.UTC().Format("20060102T150405"), summary.Cycle)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %q: %w", path, err)
	}
	return nil
}
