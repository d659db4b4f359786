package usage

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	cache *Cache
}

func NewHandler(cache *Cache) *Handler {
	return &Handler{cache: cache}
}

// Summary handles GET /api/usage?from=&to=&groupBy=.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groupBy := q.Get("groupBy")
	if groupBy == "" {
		groupBy = GroupNone
	}
	sum := Aggregate(h.cache.Records(), Filter{From: q.Get("from"), To: q.Get("to")}, groupBy)
	writeJSON(w, sum)
}

// Chart handles GET /api/usage/chart?from=&to=&groupBy=&period=. The period
// picks the time-bucket granularity: a day renders hourly bars, a week or
// month daily bars, a year monthly bars.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groupBy := q.Get("groupBy")
	if groupBy == "" || groupBy == GroupNone {
		groupBy = GroupModel
	}
	var unit string
	switch q.Get("period") {
	case "day":
		unit = UnitHour
	case "year":
		unit = UnitMonth
	default: // week, month
		unit = UnitDay
	}
	cd := BucketForChart(h.cache.Records(), Filter{From: q.Get("from"), To: q.Get("to")}, groupBy, unit)
	writeJSON(w, cd)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
