// Package experiment resolves A/B experiment variants from accumulated results.
package experiment

import (
	"context"
	"math"
	"slices"
	"sort"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/devtips/pkg/domain"
)

// Store provides accumulated experiment results
type Store interface {
	Load(ctx context.Context) domain.ExperimentState
}

// Rand is the random source for exploration
type Rand interface {
	Float64() float64
}

// Variant is one experiment arm
type Variant struct {
	ID     string
	Weight float64
	Params domain.VariantParams
}

// Definition is an experiment with its variants and default
type Definition struct {
	Name     string
	Enabled  bool
	Default  string
	Enforce  bool // resolutions carry it, the pipeline skips hours outside the variant
	Variants []Variant
}

// Params returns parameters of the variant and whether it exists
func (d Definition) Params(id string) (domain.VariantParams, bool) {
	for _, v := range d.Variants {
		if v.ID == id {
			return v.Params, true
		}
	}
	return domain.VariantParams{}, false
}

// Optimizer picks the best performing variant of each experiment
type Optimizer struct {
	store       Store
	defs        map[string]Definition
	minSamples  int
	exploration float64
	rnd         Rand
}

// Config holds optimizer configuration
type Config struct {
	Definitions     []Definition
	MinSamples      int     // variants with fewer samples can't win
	ExplorationRate float64 // chance to return a weighted random variant, needs Rand
	Rand            Rand
}

// NewOptimizer creates an optimizer over the given store
func NewOptimizer(store Store, cfg Config) *Optimizer {
	defs := make(map[string]Definition, len(cfg.Definitions))
	for _, d := range cfg.Definitions {
		defs[d.Name] = d
	}
	return &Optimizer{store: store, defs: defs, minSamples: cfg.MinSamples, exploration: cfg.ExplorationRate, rnd: cfg.Rand}
}

// Resolve returns the variant with the highest running average among variants having at least
// the minimum number of samples. Ties keep the variant seen first. Without eligible data, or for
// unknown variants in stored state, the configured default is returned. Unknown or disabled
// experiments resolve to an empty default without params. Never fails.
func (o *Optimizer) Resolve(ctx context.Context, name string) domain.Resolution {
	def, ok := o.defs[name]
	if !ok || !def.Enabled || len(def.Variants) == 0 {
		return domain.Resolution{Experiment: name, Default: true}
	}
	fallback := o.resolution(def, def.Default, true)

	if o.exploration > 0 && o.rnd != nil && o.rnd.Float64() < o.exploration {
		if id := o.weighted(def); id != "" {
			lgr.Printf("[DEBUG] exploring variant %s of %s", id, name)
			return o.resolution(def, id, false)
		}
	}

	state := o.store.Load(ctx)
	data, ok := state.Experiments[name]
	if !ok || data == nil || len(data.Variants) == 0 {
		return fallback
	}

	bestID, bestAvg := "", math.Inf(-1)
	for _, id := range variantOrder(data) {
		stat := data.Variants[id]
		if stat == nil || stat.Count < o.minSamples || stat.Count == 0 {
			continue
		}
		if math.IsNaN(stat.Average) || math.IsInf(stat.Average, 0) {
			continue
		}
		if _, known := def.Params(id); !known {
			continue
		}
		if stat.Average > bestAvg {
			bestID, bestAvg = id, stat.Average
		}
	}
	if bestID == "" {
		return fallback
	}
	return o.resolution(def, bestID, false)
}

func (o *Optimizer) resolution(def Definition, id string, isDefault bool) domain.Resolution {
	params, _ := def.Params(id)
	return domain.Resolution{Experiment: def.Name, VariantID: id, Params: params, Default: isDefault, Enforce: def.Enforce}
}

// weighted draws a variant by configured weights
func (o *Optimizer) weighted(def Definition) string {
	var total float64
	for _, v := range def.Variants {
		total += v.Weight
	}
	if total <= 0 {
		return ""
	}
	r := o.rnd.Float64() * total
	var cumulative float64
	for _, v := range def.Variants {
		cumulative += v.Weight
		if r < cumulative {
			return v.ID
		}
	}
	return def.Variants[len(def.Variants)-1].ID
}

// variantOrder returns variant ids in first-seen order. Ids missing from the order list,
// as in hand-edited state, follow in lexical order.
func variantOrder(data *domain.ExperimentData) []string {
	res := make([]string, 0, len(data.Variants))
	seen := map[string]bool{}
	for _, id := range data.Order {
		if _, ok := data.Variants[id]; ok && !seen[id] {
			res = append(res, id)
			seen[id] = true
		}
	}
	var rest []string
	for id := range data.Variants {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(res, rest...)
}

// Bucket maps the parameters applied to a post back to the variant they belong to.
// Content length and hashtag count go to the variant with the smallest parameter not below the
// used value, values above every variant go to the largest. Posting time goes to the first
// variant listing the hour. ok is false when the experiment is unknown, disabled or the value
// can't be attributed.
func (o *Optimizer) Bucket(name string, p domain.PostParams) (string, bool) {
	def, ok := o.defs[name]
	if !ok || !def.Enabled || len(def.Variants) == 0 {
		return "", false
	}
	switch name {
	case domain.ExperimentContentLength:
		return bucketByValue(def.Variants, p.MaxLength, func(v domain.VariantParams) int { return v.MaxLength })
	case domain.ExperimentHashtagCount:
		return bucketByValue(def.Variants, p.MaxHashtags, func(v domain.VariantParams) int { return v.MaxHashtags })
	case domain.ExperimentPostingTime:
		for _, v := range def.Variants {
			if slices.Contains(v.Params.Hours, p.Hour) {
				return v.ID, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func bucketByValue(variants []Variant, value int, param func(domain.VariantParams) int) (string, bool) {
	if value <= 0 {
		return "", false
	}
	sorted := slices.Clone(variants)
	sort.SliceStable(sorted, func(i, j int) bool { return param(sorted[i].Params) < param(sorted[j].Params) })
	for _, v := range sorted {
		if value <= param(v.Params) {
			return v.ID, true
		}
	}
	return sorted[len(sorted)-1].ID, true
}
