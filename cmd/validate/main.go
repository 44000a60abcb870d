// Command validate performs integrity checks on wind profile fixtures: it
// re-runs the analysis engine on the raw requests and verifies the stored
// results match, then checks the physical invariants every result must hold.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/wind_profiles_raw.json \
//	  -results-json data/mock/wind_profiles_results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-kinematics/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw profile request fixture")
	resultsJSON := flag.String("results-json", "", "path to expected analysis result fixture")
	flag.Parse()

	if *rawJSON == "" || *resultsJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *resultsJSON); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, resultsPath string) int {
	// Fixed clock matching genmock so AnalyzedAt reproduces.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.May, 21, 23, 15, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Storm Kinematics Fixture Validation ===")
	fmt.Println()

	records, err := loadJSON[domain.RawProfileRecord](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw fixture: %v\n", err)
		return 1
	}
	results, err := loadJSON[domain.AnalysisResult](resultsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load results fixture: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRawRecords(records),
		validateReproduction(records, results),
		validateInvariants(results),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw requests, %d results\n", len(records), len(results))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Raw Fixture Integrity ──
// Every raw record must parse and carry a usable profile.

func validateRawRecords(records []domain.RawProfileRecord) *phase {
	p := &phase{name: "Phase 1: Raw Fixture Integrity"}

	seen := map[string]bool{}
	for i, rec := range records {
		if rec.RequestID == "" {
			p.errorf("record %d: missing request_id", i)
		} else if seen[rec.RequestID] {
			p.errorf("record %d: duplicate request_id %q", i, rec.RequestID)
		}
		seen[rec.RequestID] = true

		if rec.SiteID == "" {
			p.errorf("record %d: missing site_id", i)
		}
		if len(rec.Levels) < 2 {
			p.errorf("record %d: only %d levels", i, len(rec.Levels))
		}

		if _, err := parseRecord(rec); err != nil {
			p.errorf("record %d (%s): does not parse: %v", i, rec.RequestID, err)
		}
	}
	return p
}

// ── Phase 2: Reproduction ──
// Re-running the engine on each raw request must reproduce the stored result.

func validateReproduction(records []domain.RawProfileRecord, results []domain.AnalysisResult) *phase {
	p := &phase{name: "Phase 2: Reproduction (engine vs fixture)"}

	if len(records) != len(results) {
		p.errorf("count mismatch: %d raw requests, %d results", len(records), len(results))
	}

	byID := map[string]domain.AnalysisResult{}
	for _, r := range results {
		byID[r.RequestID] = r
	}

	for i, rec := range records {
		stored, ok := byID[rec.RequestID]
		if !ok {
			p.errorf("record %d: request_id %q has no stored result", i, rec.RequestID)
			continue
		}

		req, err := parseRecord(rec)
		if err != nil {
			continue // reported in phase 1
		}
		fresh, err := domain.Analyze(req, domain.DefaultAnalysisConfig())
		if err != nil {
			p.errorf("record %d (%s): analysis failed: %v", i, rec.RequestID, err)
			continue
		}

		if diff := cmp.Diff(stored, fresh); diff != "" {
			p.errorf("record %d (%s): result drift (-stored +fresh):\n%s", i, rec.RequestID, diff)
		}
	}
	return p
}

// ── Phase 3: Physical Invariants ──
// Checks every result must satisfy regardless of its inputs.

func validateInvariants(results []domain.AnalysisResult) *phase {
	p := &phase{name: "Phase 3: Physical Invariants"}
	for i := range results {
		checkResult(p, i, &results[i])
	}
	return p
}

func checkResult(p *phase, i int, r *domain.AnalysisResult) {
	pf := func(format string, args ...any) {
		p.errorf("result %d (%s): "+format, append([]any{i, r.RequestID}, args...)...)
	}

	if len(r.Points) < 2 {
		pf("only %d hodograph points", len(r.Points))
	}
	for j := 1; j < len(r.Points); j++ {
		if r.Points[j].HeightM <= r.Points[j-1].HeightM {
			pf("points not strictly increasing at index %d (%.0f m after %.0f m)",
				j, r.Points[j].HeightM, r.Points[j-1].HeightM)
		}
	}

	checkMotion(pf, "resolved", r.StormMotion)
	if r.Parameters.Bunkers != nil {
		b := r.Parameters.Bunkers
		checkMotion(pf, "right_mover", b.RightMover)
		checkMotion(pf, "left_mover", b.LeftMover)
		checkMotion(pf, "mean_wind", b.MeanWind)
		checkBunkersSymmetry(pf, b)
	}

	if ca := r.Parameters.CriticalAngle; ca != nil {
		if *ca < 0 || *ca >= 360 {
			pf("critical angle %.2f outside [0,360)", *ca)
		}
	}
	if sl := r.Parameters.ShearLayer; sl != nil {
		if sl.DepthM <= 0 {
			pf("shear layer depth %.0f m not positive", sl.DepthM)
		}
		if sl.MagnitudeKt < 0 {
			pf("shear layer magnitude %.2f kt negative", sl.MagnitudeKt)
		}
	}

	if r.AnalyzedAt.IsZero() {
		pf("analyzed_at is zero")
	}
}

func checkMotion(pf func(string, ...any), label string, m domain.StormMotion) {
	if m.DirectionDeg < 0 || m.DirectionDeg >= 360 {
		pf("%s direction %.2f outside [0,360)", label, m.DirectionDeg)
	}
	if m.SpeedKt < 0 {
		pf("%s speed %.2f negative", label, m.SpeedKt)
	}
}

// checkBunkersSymmetry verifies the movers straddle the mean wind: their
// vector average must equal the 0-6 km mean.
func checkBunkersSymmetry(pf func(string, ...any), b *domain.BunkersEstimate) {
	ru, rv := b.RightMover.Components()
	lu, lv := b.LeftMover.Components()
	mu, mv := b.MeanWind.Components()

	if math.Abs((ru+lu)/2-mu) > 1e-6 || math.Abs((rv+lv)/2-mv) > 1e-6 {
		pf("bunkers movers are not symmetric about the mean wind")
	}
}

func parseRecord(rec domain.RawProfileRecord) (domain.AnalysisRequest, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.AnalysisRequest{}, err
	}
	return domain.ParseRawRequest(domain.RawEvent{Key: []byte(rec.RequestID), Value: data})
}
