// Package profile computes per-field dataset profiles shown on the dashboard
// overview panel: spread, quartiles, shape, and a normality verdict.
package profile

import (
	"context"
	"log"
	"math"
	"time"

	"finboard/domain/schema"
	"finboard/domain/table"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// FieldProfile summarizes one numeric field over the whole cleaned table.
// Shape statistics are zero and NormalP is 1 when there is not enough data to
// estimate them; quartiles fall back to the extremes below four values.
type FieldProfile struct {
	Field    string  `json:"field"`
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	NormalP  float64 `json:"normal_p"`
	IsNormal bool    `json:"is_normal"`
}

// Profiler computes field profiles.
type Profiler struct{}

// NewProfiler creates a profiler.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileFields profiles every numeric field of the cleaned table, fanning
// out one goroutine per field. Runs once at startup, before serving.
func (p *Profiler) ProfileFields(ctx context.Context, cleaned *table.CleanedTable, sc schema.Schema) ([]FieldProfile, error) {
	start := time.Now()
	fields := sc.NumericFields()
	profiles := make([]FieldProfile, len(fields))

	g, _ := errgroup.WithContext(ctx)
	for i, field := range fields {
		g.Go(func() error {
			prof, err := profileColumn(field, cleaned.Numbers[field])
			if err != nil {
				return err
			}
			profiles[i] = prof
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	log.Printf("[Profiler] %d fields profiled in %.2fms", len(fields), float64(elapsed.Nanoseconds())/1e6)

	return profiles, nil
}

func profileColumn(field string, column []float64) (FieldProfile, error) {
	values := make([]float64, 0, len(column))
	for _, v := range column {
		if !table.IsMissing(v) {
			values = append(values, v)
		}
	}

	prof := FieldProfile{
		Field:   field,
		Count:   len(values),
		Missing: len(column) - len(values),
		NormalP: 1.0,
	}
	if len(values) == 0 {
		return prof, nil
	}

	min, err := stats.Min(values)
	if err != nil {
		return prof, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return prof, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return prof, err
	}

	prof.Min = min
	prof.Max = max
	prof.Median = median

	// stats.Percentile rejects the lower quartile below four values; the
	// extremes stand in for tiny columns.
	prof.Q1 = min
	prof.Q3 = max
	if len(values) >= 4 {
		q1, err := stats.Percentile(values, 25)
		if err != nil {
			return prof, err
		}
		q3, err := stats.Percentile(values, 75)
		if err != nil {
			return prof, err
		}
		prof.Q1 = q1
		prof.Q3 = q3
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return prof, err
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return prof, err
	}

	if len(values) >= 4 && stdDev > 0 {
		prof.Skewness = sampleSkewness(values, mean, stdDev)
		prof.Kurtosis = sampleKurtosis(values, mean, stdDev)
		prof.NormalP = jarqueBeraP(len(values), prof.Skewness, prof.Kurtosis)
		prof.IsNormal = prof.NormalP > 0.05
	}

	return prof, nil
}

// sampleSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// sampleKurtosis computes total (non-excess) sample kurtosis
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 {
		return 0
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	return sumFourthDeviations / n
}

// jarqueBeraP returns the Jarque-Bera normality p-value: the JB statistic is
// asymptotically chi-squared with 2 degrees of freedom.
func jarqueBeraP(n int, skewness, kurtosis float64) float64 {
	excess := kurtosis - 3
	jb := float64(n) / 6 * (skewness*skewness + excess*excess/4)

	chiDist := distuv.ChiSquared{K: 2}
	p := 1 - chiDist.CDF(jb)
	if p < 0 {
		p = 0
	}
	return p
}
