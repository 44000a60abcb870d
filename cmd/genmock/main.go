// Command genmock generates mock wind profile request fixtures and their
// expected analysis results. It runs the actual domain engine so the expected
// output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/wind_profiles_raw.json \
//	  -results-out data/mock/wind_profiles_results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-kinematics/internal/domain"
)

// profileDef parameterizes one synthetic VAD profile: winds veer linearly
// from a surface direction and strengthen linearly with height.
type profileDef struct {
	site        string
	baseHeightM float64
	topHeightM  float64
	stepM       float64
	surfaceDir  float64
	veerPerKm   float64 // degrees of veering per kilometre
	surfaceKt   float64
	gainPerKm   float64 // knots gained per kilometre

	stormDir      string
	stormSpeed    string
	surfaceWind   bool
	mover         string
	includeHalfKm string
}

var defs = []profileDef{
	{site: "KTLX", baseHeightM: 300, topHeightM: 9000, stepM: 300, surfaceDir: 155, veerPerKm: 18, surfaceKt: 12, gainPerKm: 5, surfaceWind: true, includeHalfKm: "true"},
	{site: "KFDR", baseHeightM: 400, topHeightM: 4000, stepM: 400, surfaceDir: 170, veerPerKm: 22, surfaceKt: 10, gainPerKm: 6, surfaceWind: true},
	{site: "KINX", baseHeightM: 300, topHeightM: 8000, stepM: 500, surfaceDir: 180, veerPerKm: 12, surfaceKt: 15, gainPerKm: 4, stormDir: "245", stormSpeed: "28"},
	{site: "KDDC", baseHeightM: 200, topHeightM: 7000, stepM: 350, surfaceDir: 140, veerPerKm: 20, surfaceKt: 8, gainPerKm: 7, surfaceWind: true, mover: "blm"},
	{site: "KAMA", baseHeightM: 500, topHeightM: 6500, stepM: 500, surfaceDir: 200, veerPerKm: 10, surfaceKt: 18, gainPerKm: 5, mover: "mnw"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for raw profile request fixture")
	resultsOut := flag.String("results-out", "", "output path for expected analysis result fixture")
	flag.Parse()

	if *rawOut == "" || *resultsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -results-out")
	}

	// Fixed clock for reproducible AnalyzedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.May, 21, 23, 15, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	records := make([]domain.RawProfileRecord, 0, len(defs))
	results := make([]domain.AnalysisResult, 0, len(defs))

	for i, d := range defs {
		rec := buildRecord(d, fmt.Sprintf("mock-%03d", i+1))
		records = append(records, rec)

		result, err := analyzeRecord(rec)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", rec.RequestID, err)
		}
		results = append(results, result)
		log.Printf("%s (%s): %d levels, %d hodograph points, %d warnings",
			rec.RequestID, rec.SiteID, len(rec.Levels), len(result.Points), len(result.Warnings))
	}

	if err := writeJSON(*rawOut, records); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*resultsOut, results); err != nil {
		return fmt.Errorf("writing results fixture: %w", err)
	}
	log.Printf("wrote results fixture: %s", *resultsOut)

	return nil
}

func buildRecord(d profileDef, requestID string) domain.RawProfileRecord {
	rec := domain.RawProfileRecord{
		RequestID:      requestID,
		SiteID:         d.site,
		StormDirection: d.stormDir,
		StormSpeed:     d.stormSpeed,
		Mover:          d.mover,
		IncludeHalfKm:  d.includeHalfKm,
	}

	for h := d.baseHeightM; h <= d.topHeightM; h += d.stepM {
		km := h / 1000
		dir := math.Mod(d.surfaceDir+d.veerPerKm*km, 360)
		speed := d.surfaceKt + d.gainPerKm*km
		rec.Levels = append(rec.Levels, domain.RawWindLevel{
			Height:    formatFloat(h),
			Direction: formatFloat(dir),
			Speed:     formatFloat(speed),
		})
	}

	if d.surfaceWind {
		rec.SurfaceDirection = formatFloat(d.surfaceDir)
		rec.SurfaceSpeed = formatFloat(d.surfaceKt * 0.7)
	}

	return rec
}

func analyzeRecord(rec domain.RawProfileRecord) (domain.AnalysisResult, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	req, err := domain.ParseRawRequest(domain.RawEvent{Key: []byte(rec.RequestID), Value: data})
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return domain.Analyze(req, domain.DefaultAnalysisConfig())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
