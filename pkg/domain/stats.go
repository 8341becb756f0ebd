package domain

import (
	"sort"
	"time"
)

// experiment names
const (
	ExperimentContentLength = "content_length"
	ExperimentHashtagCount  = "hashtag_count"
	ExperimentPostingTime   = "posting_time"
)

// Experiments lists experiment names in recording order
var Experiments = []string{ExperimentContentLength, ExperimentHashtagCount, ExperimentPostingTime}

// DayKeyLayout formats calendar-day keys of daily counters
const DayKeyLayout = "2006-01-02"

// RunningStat accumulates samples. Average is always Total/Count and is never set on its own.
type RunningStat struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// Add records one sample
func (s *RunningStat) Add(v float64) {
	s.Count++
	s.Total += v
	s.Average = s.Total / float64(s.Count)
}

// ExperimentData is the accumulated state of one experiment.
// Order keeps variant ids in first-seen order, used to break ties.
type ExperimentData struct {
	Variants     map[string]*RunningStat `json:"variants"`
	Order        []string                `json:"order"`
	StartedAt    time.Time               `json:"started_at"`
	TotalSamples int                     `json:"total_samples"`
}

// ExperimentState holds all experiments keyed by name
type ExperimentState struct {
	Experiments map[string]*ExperimentData `json:"experiments"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// Record adds a sample to the variant of experiment, creating both lazily
func (s *ExperimentState) Record(experiment, variant string, value float64, now time.Time) {
	if s.Experiments == nil {
		s.Experiments = map[string]*ExperimentData{}
	}
	exp, ok := s.Experiments[experiment]
	if !ok {
		exp = &ExperimentData{Variants: map[string]*RunningStat{}, StartedAt: now}
		s.Experiments[experiment] = exp
	}
	if exp.Variants == nil {
		exp.Variants = map[string]*RunningStat{}
	}
	stat, ok := exp.Variants[variant]
	if !ok {
		stat = &RunningStat{}
		exp.Variants[variant] = stat
		exp.Order = append(exp.Order, variant)
	}
	stat.Add(value)
	exp.TotalSamples++
	s.UpdatedAt = now
}

// VariantParams are the parameters a variant applies
type VariantParams struct {
	MaxLength   int   `json:"max_length,omitempty"`
	MaxHashtags int   `json:"max_hashtags,omitempty"`
	Hours       []int `json:"hours,omitempty"`
}

// Resolution is the variant chosen for an experiment
type Resolution struct {
	Experiment string
	VariantID  string
	Params     VariantParams
	Default    bool
	Enforce    bool // posting only allowed within the variant hours
}

// DailyCounter counts posts of one calendar day
type DailyCounter struct {
	Date           string         `json:"date"`
	PostCount      int            `json:"post_count"`
	PerTopic       map[string]int `json:"per_topic"`
	PerContentType map[string]int `json:"per_content_type"`
	PerSubtype     map[string]int `json:"per_subtype"`
}

// Analytics is the aggregated posting statistics
type Analytics struct {
	TotalPosts   int                      `json:"total_posts"`
	Topics       map[string]*RunningStat  `json:"topics"`
	ContentTypes map[string]*RunningStat  `json:"content_types"`
	Daily        map[string]*DailyCounter `json:"daily"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// Record accounts a published post with its engagement metric
func (a *Analytics) Record(p Post, metric float64) {
	if a.Topics == nil {
		a.Topics = map[string]*RunningStat{}
	}
	if a.ContentTypes == nil {
		a.ContentTypes = map[string]*RunningStat{}
	}
	if a.Daily == nil {
		a.Daily = map[string]*DailyCounter{}
	}

	a.TotalPosts++
	if _, ok := a.Topics[p.Topic]; !ok {
		a.Topics[p.Topic] = &RunningStat{}
	}
	a.Topics[p.Topic].Add(metric)
	ct := string(p.ContentType)
	if _, ok := a.ContentTypes[ct]; !ok {
		a.ContentTypes[ct] = &RunningStat{}
	}
	a.ContentTypes[ct].Add(metric)

	key := p.CreatedAt.Format(DayKeyLayout)
	day, ok := a.Daily[key]
	if !ok {
		day = &DailyCounter{Date: key, PerTopic: map[string]int{}, PerContentType: map[string]int{}, PerSubtype: map[string]int{}}
		a.Daily[key] = day
	}
	day.PostCount++
	day.PerTopic[p.Topic]++
	day.PerContentType[ct]++
	if p.Subtype != "" {
		day.PerSubtype[p.Subtype]++
	}
	a.UpdatedAt = p.CreatedAt
}

// Day returns the counter for the calendar day of t, empty if nothing was posted
func (a Analytics) Day(t time.Time) DailyCounter {
	key := t.Format(DayKeyLayout)
	if d, ok := a.Daily[key]; ok && d != nil {
		return *d
	}
	return DailyCounter{Date: key}
}

// PruneDaily removes daily counters older than keep days before now
func (a *Analytics) PruneDaily(now time.Time, keep int) {
	if keep <= 0 || len(a.Daily) <= keep {
		return
	}
	cutoff := now.AddDate(0, 0, -keep).Format(DayKeyLayout)
	keys := make([]string, 0, len(a.Daily))
	for k := range a.Daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k >= cutoff {
			break
		}
		delete(a.Daily, k)
	}
}
