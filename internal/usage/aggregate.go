package usage

import (
	"sort"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// Filter bounds records by timestamp, inclusive on both ends. Timestamps are
// ISO strings with a consistent timezone, so plain string comparison orders
// them correctly.
type Filter struct {
	From string
	To   string
}

func (f Filter) includes(ts string) bool {
	if f.From != "" && ts < f.From {
		return false
	}
	if f.To != "" && ts > f.To {
		return false
	}
	return true
}

// GroupBy dimensions for Aggregate.
const (
	GroupNone     = "none"
	GroupModel    = "model"
	GroupProvider = "provider"
	GroupAgent    = "agent"
	GroupHour     = "hour"
	GroupDay      = "day"
)

func groupKey(r *models.UsageRecord, groupBy string) string {
	switch groupBy {
	case GroupModel:
		return r.Model
	case GroupProvider:
		return r.Provider
	case GroupAgent:
		return r.Agent
	case GroupHour:
		return isoPrefix(r.Timestamp, 13)
	case GroupDay:
		return isoPrefix(r.Timestamp, 10)
	default:
		return ""
	}
}

func isoPrefix(ts string, n int) string {
	if len(ts) < n {
		return ts
	}
	return ts[:n]
}

// Aggregate filters records and sums their numeric fields, overall and per
// group. Groups come back sorted by cost, highest first; groupBy "none"
// yields totals only.
func Aggregate(records []*models.UsageRecord, f Filter, groupBy string) *models.UsageSummary {
	sum := &models.UsageSummary{Groups: []*models.UsageGroup{}}
	byKey := map[string]*models.UsageGroup{}

	for _, r := range records {
		if !f.includes(r.Timestamp) {
			continue
		}
		addRecord(&sum.Totals, r)
		if groupBy == GroupNone || groupBy == "" {
			continue
		}
		key := groupKey(r, groupBy)
		g, ok := byKey[key]
		if !ok {
			g = &models.UsageGroup{Key: key}
			byKey[key] = g
			sum.Groups = append(sum.Groups, g)
		}
		addRecord(&g.UsageTotals, r)
	}

	sort.Slice(sum.Groups, func(i, j int) bool {
		return sum.Groups[i].Cost > sum.Groups[j].Cost
	})
	return sum
}

func addRecord(t *models.UsageTotals, r *models.UsageRecord) {
	t.Records++
	t.Input += r.Tokens.Input
	t.Output += r.Tokens.Output
	t.CacheRead += r.Tokens.CacheRead
	t.CacheWrite += r.Tokens.CacheWrite
	t.Tokens += r.Tokens.Total
	t.Cost += r.Cost.Total
}

// Time units for BucketForChart.
const (
	UnitHour  = "hour"
	UnitDay   = "day"
	UnitMonth = "month"
)

func timeKey(ts, unit string) string {
	switch unit {
	case UnitHour:
		return isoPrefix(ts, 13)
	case UnitMonth:
		return isoPrefix(ts, 7)
	default:
		return isoPrefix(ts, 10)
	}
}

// BucketForChart builds the nested time-bucket -> dimension -> token-count
// mapping the usage chart renders, in three parallel variants: all tokens,
// billable only (input+output) and cache only (cacheRead+cacheWrite).
// timeKeys come back ascending, dimensions ascending by label.
func BucketForChart(records []*models.UsageRecord, f Filter, groupBy, unit string) *models.ChartData {
	cd := &models.ChartData{
		TimeKeys:        []string{},
		Dimensions:      []string{},
		Buckets:         map[string]map[string]int64{},
		BillableBuckets: map[string]map[string]int64{},
		CacheBuckets:    map[string]map[string]int64{},
	}
	dims := map[string]bool{}
	times := map[string]bool{}

	for _, r := range records {
		if !f.includes(r.Timestamp) {
			continue
		}
		tk := timeKey(r.Timestamp, unit)
		dim := groupKey(r, groupBy)
		times[tk] = true
		dims[dim] = true

		bump(cd.Buckets, tk, dim, r.Tokens.Total)
		bump(cd.BillableBuckets, tk, dim, r.Tokens.Input+r.Tokens.Output)
		bump(cd.CacheBuckets, tk, dim, r.Tokens.CacheRead+r.Tokens.CacheWrite)
	}

	for tk := range times {
		cd.TimeKeys = append(cd.TimeKeys, tk)
	}
	sort.Strings(cd.TimeKeys)
	for d := range dims {
		cd.Dimensions = append(cd.Dimensions, d)
	}
	sort.Strings(cd.Dimensions)
	return cd
}

func bump(buckets map[string]map[string]int64, tk, dim string, n int64) {
	m, ok := buckets[tk]
	if !ok {
		m = map[string]int64{}
		buckets[tk] = m
	}
	m[dim] += n
}
