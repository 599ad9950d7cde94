// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package attributes collects the attributes required by templates of a
// role set and enriches them with their enumerated valid values.
package attributes

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/dca-graph/internal/graph"
	"github.com/pdiddy/dca-graph/internal/vocab"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// Role set names accepted by Classes.
const (
	RoleSetAnnotation = "annotation"
	RoleSetAll        = "all"
	RoleSetRecord     = "record"
)

// Classes returns the template classes of a named role set.
func Classes(roleSet string) ([]string, error) {
	switch strings.ToLower(roleSet) {
	case RoleSetAnnotation, "":
		return []string{vocab.AnnotationTemplate}, nil
	case RoleSetAll:
		return []string{vocab.AnnotationTemplate, vocab.UnconfiguredTemplate}, nil
	case RoleSetRecord:
		return []string{vocab.RecordTemplate}, nil
	default:
		return nil, fmt.Errorf("unknown role set %q (want annotation, all, or record)", roleSet)
	}
}

// Graph is the part of the triple store the query needs.
type Graph interface {
	TemplateAttributes(ctx context.Context, classes []string) ([]graph.AttributeRow, error)
	RangeValues(ctx context.Context, attr string) ([]graph.RangeValue, error)
}

const defaultCacheSize = 4096

// Querier runs attribute queries against one graph. Valid value lookups are
// memoized, so repeated queries over overlapping role sets reuse them.
type Querier struct {
	g             Graph
	cache         *lru.Cache[string, string]
	progressEvery int
}

// NewQuerier creates a querier. progressEvery <= 0 uses 100.
func NewQuerier(g Graph, progressEvery int) (*Querier, error) {
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating valid values cache: %w", err)
	}
	if progressEvery <= 0 {
		progressEvery = 100
	}
	return &Querier{g: g, cache: cache, progressEvery: progressEvery}, nil
}

// Query returns the distinct attributes reachable from templates typed with
// any of classes, ordered by label then ID, each with its valid values.
// Lookups run one attribute at a time; a progress line is written every
// progressEvery attributes.
func (q *Querier) Query(ctx context.Context, classes []string, w io.Writer) ([]types.AttributeRecord, error) {
	rows, err := q.g.TemplateAttributes(ctx, classes)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "found %d attributes, looking up valid values\n", len(rows))

	out := make([]types.AttributeRecord, 0, len(rows))
	for i, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values, err := q.ValidValues(ctx, r.IRI)
		if err != nil {
			return nil, err
		}
		out = append(out, types.AttributeRecord{
			ID:              vocab.Shorten(r.IRI),
			Label:           r.Label,
			Description:     r.Description,
			ValidationRules: strings.Join(r.Rules, ", "),
			ValidValues:     values,
		})
		if (i+1)%q.progressEvery == 0 {
			fmt.Fprintf(w, "  processed %d/%d attributes\n", i+1, len(rows))
		}
	}
	return out, nil
}

// ValidValues returns the enumerated values of an attribute joined by ", ",
// or "" when it declares none. Labels are preferred; unlabeled values use
// their shortened IRI.
func (q *Querier) ValidValues(ctx context.Context, attr string) (string, error) {
	if v, ok := q.cache.Get(attr); ok {
		return v, nil
	}
	vals, err := q.g.RangeValues(ctx, attr)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(vals))
	for _, v := range vals {
		if v.Label != "" {
			names = append(names, v.Label)
		} else {
			names = append(names, vocab.Shorten(v.IRI))
		}
	}
	sort.Strings(names)
	joined := strings.Join(names, ", ")
	q.cache.Add(attr, joined)
	return joined, nil
}

// CacheLen returns the number of memoized valid value lookups.
func (q *Querier) CacheLen() int {
	return q.cache.Len()
}
