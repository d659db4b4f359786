package models

// TokenCounts are the per-record token tallies. Billable charting sums
// Input+Output, cache charting sums CacheRead+CacheWrite.
type TokenCounts struct {
	Input      int64 `json:"input"`
	Output     int64 `json:"output"`
	CacheRead  int64 `json:"cacheRead"`
	CacheWrite int64 `json:"cacheWrite"`
	Total      int64 `json:"total"`
}

// CostBreakdown is the per-record cost in USD.
type CostBreakdown struct {
	Input      float64 `json:"input"`
	Output     float64 `json:"output"`
	CacheRead  float64 `json:"cacheRead"`
	CacheWrite float64 `json:"cacheWrite"`
	Total      float64 `json:"total"`
}

// UsageRecord is one qualifying log line: an assistant-authored message that
// carried a numeric total cost. Records are recomputed from the session logs
// on demand, never persisted.
type UsageRecord struct {
	Timestamp string        `json:"timestamp"`
	Agent     string        `json:"agent"`
	Model     string        `json:"model"`
	Provider  string        `json:"provider"`
	Tokens    TokenCounts   `json:"tokens"`
	Cost      CostBreakdown `json:"cost"`
}

// UsageTotals sums the numeric fields over a set of records.
type UsageTotals struct {
	Records    int     `json:"records"`
	Input      int64   `json:"inputTokens"`
	Output     int64   `json:"outputTokens"`
	CacheRead  int64   `json:"cacheReadTokens"`
	CacheWrite int64   `json:"cacheWriteTokens"`
	Tokens     int64   `json:"totalTokens"`
	Cost       float64 `json:"totalCost"`
}

// UsageGroup is one aggregation bucket keyed by model/provider/agent/hour/day.
type UsageGroup struct {
	Key string `json:"key"`
	UsageTotals
}

// UsageSummary is the /api/usage response.
type UsageSummary struct {
	Totals UsageTotals   `json:"totals"`
	Groups []*UsageGroup `json:"groups"`
}

// ChartData is the /api/usage/chart response: time-bucket key -> dimension
// label -> summed token count, in three parallel variants.
type ChartData struct {
	TimeKeys        []string                    `json:"timeKeys"`
	Dimensions      []string                    `json:"dimensions"`
	Buckets         map[string]map[string]int64 `json:"buckets"`
	BillableBuckets map[string]map[string]int64 `json:"billableBuckets"`
	CacheBuckets    map[string]map[string]int64 `json:"cacheBuckets"`
}
