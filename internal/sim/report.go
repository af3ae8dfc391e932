package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang = language.English

// Report aggregates simulated games.
type Report struct {
	Games       int          `json:"games"`
	TurnsTarget int          `json:"turns_target"`
	MeanScore   float64      `json:"mean_score"`
	StdScore    float64      `json:"std_score"`
	P50Score    float64      `json:"p50_score"`
	P90Score    float64      `json:"p90_score"`
	P99Score    float64      `json:"p99_score"`
	BestScore   int          `json:"best_score"`
	MeanTurns   float64      `json:"mean_turns"`
	MeanChain   float64      `json:"mean_chain"`
	BestChain   int          `json:"best_chain"`
	DeadBoards  int          `json:"dead_boards"`
	Removed     int64        `json:"removed"`
	Results     []GameResult `json:"results"`
}

// NewReport aggregates results. Results are sorted by seed.
func NewReport(turnsTarget int, results []GameResult) *Report {
	r := &Report{
		Games:       len(results),
		TurnsTarget: turnsTarget,
		Results:     append([]GameResult(nil), results...),
	}
	sort.Slice(r.Results, func(i, j int) bool { return r.Results[i].Seed < r.Results[j].Seed })
	if len(results) == 0 {
		return r
	}

	scores := make([]float64, len(results))
	turns := make([]float64, len(results))
	chains := make([]float64, len(results))
	for i, g := range r.Results {
		scores[i] = float64(g.Score)
		turns[i] = float64(g.Turns)
		chains[i] = float64(g.BestChain)
		r.BestScore = max(r.BestScore, g.Score)
		r.BestChain = max(r.BestChain, g.BestChain)
		r.Removed += int64(g.Removed)
		if g.Dead {
			r.DeadBoards++
		}
	}

	r.MeanScore, r.StdScore = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		r.StdScore = 0
	}
	r.MeanTurns = stat.Mean(turns, nil)
	r.MeanChain = stat.Mean(chains, nil)

	sort.Float64s(scores)
	r.P50Score = stat.Quantile(0.50, stat.Empirical, scores, nil)
	r.P90Score = stat.Quantile(0.90, stat.Empirical, scores, nil)
	r.P99Score = stat.Quantile(0.99, stat.Empirical, scores, nil)
	return r
}

// DeadRate returns the share of boards that ran out of moves.
func (r *Report) DeadRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.DeadBoards) / float64(r.Games)
}

// Format renders the report as a boxed key/value table.
func (r *Report) Format(used time.Duration) string {
	p := message.NewPrinter(lang)
	keys := []string{
		"Games", "Turns per game", "Mean score", "Std score", "P50 / P90 / P99",
		"Best score", "Mean turns", "Mean best chain", "Best chain", "Dead boards",
		"Tiles cleared", "Time used",
	}
	vals := map[string]string{
		"Games":           p.Sprintf("%d", r.Games),
		"Turns per game":  p.Sprintf("%d", r.TurnsTarget),
		"Mean score":      p.Sprintf("%.2f", r.MeanScore),
		"Std score":       p.Sprintf("%.2f", r.StdScore),
		"P50 / P90 / P99": p.Sprintf("%.0f / %.0f / %.0f", r.P50Score, r.P90Score, r.P99Score),
		"Best score":      p.Sprintf("%d", r.BestScore),
		"Mean turns":      p.Sprintf("%.2f", r.MeanTurns),
		"Mean best chain": p.Sprintf("%.2f", r.MeanChain),
		"Best chain":      p.Sprintf("%d", r.BestChain),
		"Dead boards":     p.Sprintf("%d (%.1f%%)", r.DeadBoards, 100*r.DeadRate()),
		"Tiles cleared":   p.Sprintf("%d", r.Removed),
		"Time used":       formatDuration(used),
	}
	return fmtTable("match-3 simulation", keys, vals)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

func fmtTable(title string, keys []string, vals map[string]string) string {
	p := message.NewPrinter(lang)
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2

	inner := keyW + valW + 1
	titleW := runewidth.StringWidth(title)
	if titleW > inner {
		valW += titleW - inner
		inner = titleW
	}
	left := (inner - titleW) / 2

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	b.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(inner-titleW-left)))
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"
	b.WriteString(divider)
	for _, k := range keys {
		v := vals[k]
		b.WriteString("| " + k + blank(keyW-2-runewidth.StringWidth(k)) + " | " + v + blank(valW-2-runewidth.StringWidth(v)) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

// WriteCompressed writes the report as zstd-compressed JSON.
func (r *Report) WriteCompressed(w io.Writer) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("sim: cannot create encoder: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(r); err != nil {
		zw.Close()
		return fmt.Errorf("sim: cannot encode report: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("sim: cannot flush report: %w", err)
	}
	return nil
}

// ReadCompressed reads a report written by WriteCompressed.
func ReadCompressed(rd io.Reader) (*Report, error) {
	zr, err := zstd.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot create decoder: %w", err)
	}
	defer zr.Close()

	var r Report
	if err := json.NewDecoder(zr).Decode(&r); err != nil {
		return nil, fmt.Errorf("sim: cannot decode report: %w", err)
	}
	return &r, nil
}
