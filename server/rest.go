package server

import (
	"errors"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/devtips/pkg/scheduler"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 300
)

// statusHandler returns server status with the latest run outcome
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"busy":    s.scheduler.Busy(),
	}
	if err := s.stats.Ping(r.Context()); err != nil {
		status["status"] = "degraded"
		status["store_error"] = err.Error()
	}
	if last, ok := s.scheduler.LastOutcome(); ok {
		status["last_run"] = last
	}
	renderJSON(w, r, http.StatusOK, status)
}

// historyHandler returns recent posts, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			renderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	posts := slices.Clone(s.stats.History(r.Context()).Posts)
	slices.Reverse(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"posts": posts, "count": len(posts)})
}

// analyticsHandler returns aggregated statistics and today's counter
func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	a := s.stats.Analytics(r.Context())
	renderJSON(w, r, http.StatusOK, map[string]any{
		"total_posts":   a.TotalPosts,
		"topics":        a.Topics,
		"content_types": a.ContentTypes,
		"today":         a.Day(time.Now().In(s.location)),
		"updated_at":    a.UpdatedAt,
	})
}

type variantStats struct {
	ID      string  `json:"id"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type experimentStats struct {
	Name         string         `json:"name"`
	TotalSamples int            `json:"total_samples"`
	Leader       string         `json:"leader,omitempty"`
	Variants     []variantStats `json:"variants"`
}

// experimentsHandler returns per-variant results of every experiment, variants in first-seen order.
// The leader is the best average among variants with enough samples, as the optimizer picks it.
func (s *Server) experimentsHandler(w http.ResponseWriter, r *http.Request) {
	minCount := max(s.minSamples, 1)
	st := s.stats.Experiments(r.Context())
	names := make([]string, 0, len(st.Experiments))
	for name := range st.Experiments {
		names = append(names, name)
	}
	sort.Strings(names)

	res := make([]experimentStats, 0, len(names))
	for _, name := range names {
		data := st.Experiments[name]
		if data == nil {
			continue
		}
		es := experimentStats{Name: name, TotalSamples: data.TotalSamples, Variants: []variantStats{}}
		best := -1.0
		for _, id := range data.Order {
			v := data.Variants[id]
			if v == nil {
				continue
			}
			es.Variants = append(es.Variants, variantStats{ID: id, Count: v.Count, Average: v.Average})
			if v.Count >= minCount && v.Average > best {
				es.Leader, best = id, v.Average
			}
		}
		res = append(res, es)
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"experiments": res, "updated_at": st.UpdatedAt})
}

// runHandler performs a posting run and returns its outcome. A run in flight gives 409.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	out, err := s.scheduler.RunNow(r.Context())
	if errors.Is(err, scheduler.ErrBusy) {
		renderError(w, r, err, http.StatusConflict)
		return
	}
	if err != nil {
		lgr.Printf("[WARN] manual run %s failed: %v", out.RunID, err)
		renderJSON(w, r, http.StatusInternalServerError, out)
		return
	}
	lgr.Printf("[INFO] manual run %s finished %s", out.RunID, out.State)
	renderJSON(w, r, http.StatusOK, out)
}
