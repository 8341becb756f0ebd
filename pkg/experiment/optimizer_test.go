package experiment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/devtips/pkg/domain"
)

type stateStore struct {
	state domain.ExperimentState
	loads int
}

func (s *stateStore) Load(context.Context) domain.ExperimentState {
	s.loads++
	return s.state
}

type fixedRand []float64

func (f *fixedRand) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func definitions() []Definition {
	return []Definition{
		{Name: domain.ExperimentContentLength, Enabled: true, Default: "B", Variants: []Variant{
			{ID: "A", Weight: 0.33, Params: domain.VariantParams{MaxLength: 150}},
			{ID: "B", Weight: 0.34, Params: domain.VariantParams{MaxLength: 180}},
			{ID: "C", Weight: 0.33, Params: domain.VariantParams{MaxLength: 200}},
		}},
		{Name: domain.ExperimentHashtagCount, Enabled: true, Default: "B", Variants: []Variant{
			{ID: "A", Weight: 0.33, Params: domain.VariantParams{MaxHashtags: 3}},
			{ID: "B", Weight: 0.34, Params: domain.VariantParams{MaxHashtags: 4}},
			{ID: "C", Weight: 0.33, Params: domain.VariantParams{MaxHashtags: 5}},
		}},
		{Name: domain.ExperimentPostingTime, Enabled: true, Default: "B", Variants: []Variant{
			{ID: "A", Weight: 0.33, Params: domain.VariantParams{Hours: []int{9, 15, 21}}},
			{ID: "B", Weight: 0.34, Params: domain.VariantParams{Hours: []int{12, 18}}},
			{ID: "C", Weight: 0.33, Params: domain.VariantParams{Hours: []int{6, 10, 14, 18, 22}}},
		}},
	}
}

func stateWith(name string, samples map[string][]float64, order ...string) domain.ExperimentState {
	var st domain.ExperimentState
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range order {
		for _, v := range samples[id] {
			st.Record(name, id, v, ts)
		}
	}
	return st
}

func repeat(v float64, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = v
	}
	return res
}

func TestOptimizer_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("highest average wins", func(t *testing.T) {
		st := stateWith(domain.ExperimentContentLength, map[string][]float64{
			"A": repeat(0.10, 10), "B": repeat(0.30, 10), "C": repeat(0.20, 10),
		}, "A", "B", "C")
		o := NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions(), MinSamples: 10})
		res := o.Resolve(ctx, domain.ExperimentContentLength)
		assert.Equal(t, "B", res.VariantID)
		assert.Equal(t, 180, res.Params.MaxLength)
		assert.False(t, res.Default)
	})

	t.Run("no data returns default", func(t *testing.T) {
		o := NewOptimizer(&stateStore{}, Config{Definitions: definitions(), MinSamples: 10})
		res := o.Resolve(ctx, domain.ExperimentHashtagCount)
		assert.Equal(t, "B", res.VariantID)
		assert.Equal(t, 4, res.Params.MaxHashtags)
		assert.True(t, res.Default)
	})

	t.Run("enforce flag carried", func(t *testing.T) {
		defs := definitions()
		defs[2].Enforce = true
		o := NewOptimizer(&stateStore{}, Config{Definitions: defs, MinSamples: 10})
		res := o.Resolve(ctx, domain.ExperimentPostingTime)
		assert.True(t, res.Enforce)
		assert.Equal(t, []int{12, 18}, res.Params.Hours)
		assert.False(t, o.Resolve(ctx, domain.ExperimentContentLength).Enforce)
	})

	t.Run("only observed variant wins", func(t *testing.T) {
		st := stateWith(domain.ExperimentContentLength, map[string][]float64{"A": repeat(0.08, 12)}, "A")
		o := NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions(), MinSamples: 10})
		res := o.Resolve(ctx, domain.ExperimentContentLength)
		assert.Equal(t, "A", res.VariantID)
		assert.Equal(t, 150, res.Params.MaxLength)
	})

	t.Run("min sample gate", func(t *testing.T) {
		st := stateWith(domain.ExperimentContentLength, map[string][]float64{
			"A": repeat(0.10, 10), "C": {0.9, 0.9},
		}, "A", "C")
		o := NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions(), MinSamples: 10})
		assert.Equal(t, "A", o.Resolve(ctx, domain.ExperimentContentLength).VariantID)

		o = NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions(), MinSamples: 0})
		assert.Equal(t, "C", o.Resolve(ctx, domain.ExperimentContentLength).VariantID)

		o = NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions(), MinSamples: 20})
		res := o.Resolve(ctx, domain.ExperimentContentLength)
		assert.Equal(t, "B", res.VariantID)
		assert.True(t, res.Default)
	})

	t.Run("ties keep first seen", func(t *testing.T) {
		st := stateWith(domain.ExperimentContentLength, map[string][]float64{
			"C": repeat(0.2, 3), "A": repeat(0.2, 3),
		}, "C", "A")
		o := NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions()})
		assert.Equal(t, "C", o.Resolve(ctx, domain.ExperimentContentLength).VariantID)
	})

	t.Run("unknown stored variant ignored", func(t *testing.T) {
		st := stateWith(domain.ExperimentContentLength, map[string][]float64{
			"Z": repeat(0.9, 3), "A": repeat(0.1, 3),
		}, "Z", "A")
		o := NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions()})
		assert.Equal(t, "A", o.Resolve(ctx, domain.ExperimentContentLength).VariantID)
	})

	t.Run("variants missing from order still considered", func(t *testing.T) {
		st := domain.ExperimentState{Experiments: map[string]*domain.ExperimentData{
			domain.ExperimentContentLength: {Variants: map[string]*domain.RunningStat{
				"C": {Count: 1, Total: 0.5, Average: 0.5},
				"A": {Count: 1, Total: 0.1, Average: 0.1},
			}},
		}}
		o := NewOptimizer(&stateStore{state: st}, Config{Definitions: definitions()})
		assert.Equal(t, "C", o.Resolve(ctx, domain.ExperimentContentLength).VariantID)
	})

	t.Run("unknown or disabled experiment", func(t *testing.T) {
		defs := definitions()
		defs[0].Enabled = false
		o := NewOptimizer(&stateStore{}, Config{Definitions: defs})
		res := o.Resolve(ctx, domain.ExperimentContentLength)
		assert.True(t, res.Default)
		assert.Empty(t, res.VariantID)
		assert.True(t, o.Resolve(ctx, "unknown").Default)
	})

	t.Run("exploration draws by weight", func(t *testing.T) {
		st := stateWith(domain.ExperimentContentLength, map[string][]float64{"A": repeat(0.5, 20)}, "A")
		store := &stateStore{state: st}
		rnd := fixedRand{0.05, 0.99, 0.5}
		o := NewOptimizer(store, Config{Definitions: definitions(), ExplorationRate: 0.1, Rand: &rnd})
		res := o.Resolve(ctx, domain.ExperimentContentLength)
		assert.Equal(t, "C", res.VariantID)
		assert.Equal(t, 0, store.loads)

		res = o.Resolve(ctx, domain.ExperimentContentLength)
		assert.Equal(t, "A", res.VariantID, "no exploration above rate")
	})
}

func TestOptimizer_Bucket(t *testing.T) {
	o := NewOptimizer(&stateStore{}, Config{Definitions: definitions()})

	tests := []struct {
		name   string
		exp    string
		params domain.PostParams
		want   string
		ok     bool
	}{
		{name: "length short", exp: domain.ExperimentContentLength, params: domain.PostParams{MaxLength: 120}, want: "A", ok: true},
		{name: "length 150", exp: domain.ExperimentContentLength, params: domain.PostParams{MaxLength: 150}, want: "A", ok: true},
		{name: "length 151", exp: domain.ExperimentContentLength, params: domain.PostParams{MaxLength: 151}, want: "B", ok: true},
		{name: "length 180", exp: domain.ExperimentContentLength, params: domain.PostParams{MaxLength: 180}, want: "B", ok: true},
		{name: "length 181", exp: domain.ExperimentContentLength, params: domain.PostParams{MaxLength: 181}, want: "C", ok: true},
		{name: "length above all", exp: domain.ExperimentContentLength, params: domain.PostParams{MaxLength: 500}, want: "C", ok: true},
		{name: "length unset", exp: domain.ExperimentContentLength, params: domain.PostParams{}, ok: false},
		{name: "hashtags 2", exp: domain.ExperimentHashtagCount, params: domain.PostParams{MaxHashtags: 2}, want: "A", ok: true},
		{name: "hashtags 3", exp: domain.ExperimentHashtagCount, params: domain.PostParams{MaxHashtags: 3}, want: "A", ok: true},
		{name: "hashtags 4", exp: domain.ExperimentHashtagCount, params: domain.PostParams{MaxHashtags: 4}, want: "B", ok: true},
		{name: "hashtags 7", exp: domain.ExperimentHashtagCount, params: domain.PostParams{MaxHashtags: 7}, want: "C", ok: true},
		{name: "hour in A", exp: domain.ExperimentPostingTime, params: domain.PostParams{Hour: 15}, want: "A", ok: true},
		{name: "hour shared by B and C", exp: domain.ExperimentPostingTime, params: domain.PostParams{Hour: 18}, want: "B", ok: true},
		{name: "hour in C", exp: domain.ExperimentPostingTime, params: domain.PostParams{Hour: 6}, want: "C", ok: true},
		{name: "hour in none", exp: domain.ExperimentPostingTime, params: domain.PostParams{Hour: 3}, ok: false},
		{name: "unknown experiment", exp: "colors", params: domain.PostParams{MaxLength: 100}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := o.Bucket(tt.exp, tt.params)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptimizer_BucketRoundTrip(t *testing.T) {
	o := NewOptimizer(&stateStore{}, Config{Definitions: definitions()})
	for _, def := range definitions() {
		if def.Name == domain.ExperimentPostingTime {
			continue // hours overlap between variants
		}
		for _, v := range def.Variants {
			params := domain.PostParams{MaxLength: v.Params.MaxLength, MaxHashtags: v.Params.MaxHashtags}
			got, ok := o.Bucket(def.Name, params)
			require.True(t, ok)
			assert.Equal(t, v.ID, got, "%s/%s", def.Name, v.ID)
		}
	}
}

func TestOptimizer_BucketDisabled(t *testing.T) {
	defs := definitions()
	defs[1].Enabled = false
	o := NewOptimizer(&stateStore{}, Config{Definitions: defs})
	_, ok := o.Bucket(domain.ExperimentHashtagCount, domain.PostParams{MaxHashtags: 4})
	assert.False(t, ok)
}
