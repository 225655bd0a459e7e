package calq

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// UnitSearchResult is one ranked match from the unit search index.
type UnitSearchResult struct {
	Unit         *catalog.Unit
	CategoryID   catalog.CategoryID
	CategoryName string
	Score        int
}

// Relevance tiers. Exact symbol/name matches outrank exact aliases, which
// outrank partial matches; within a tier, ties break on unit id so results
// are deterministic.
const (
	scoreExactName   = 100
	scoreExactAlias  = 80
	scorePrefix      = 70
	scoreSubstring   = 60
	scoreAliasSubstr = 40
)

// SearchUnits runs a case-insensitive free-text query over the flattened
// name/symbol/alias view of every catalog category. Categories are pulled
// through the loader, so indexed units alias the cached instances. Results
// are sorted by descending relevance and truncated to limit; limit <= 0 uses
// the configured default.
func (e *Engine) SearchUnits(ctx context.Context, query string, limit int) ([]UnitSearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = e.cfg.SearchLimit
	}

	var results []UnitSearchResult
	for _, id := range catalog.CategoryIDs() {
		cat, err := e.loader.Load(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			// A broken category degrades to absence from the index.
			e.log.Warn("search skipping category", zap.String("category", string(id)), zap.Error(err))
			continue
		}
		for _, u := range cat.AllUnits() {
			score := scoreUnit(u, q)
			if score == 0 {
				continue
			}
			results = append(results, UnitSearchResult{
				Unit:         u,
				CategoryID:   id,
				CategoryName: categoryDisplayName(cat, id),
				Score:        score,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Unit.ID < results[j].Unit.ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// categoryDisplayName degrades to the raw id when a category carries no
// display name, so result construction never fails.
func categoryDisplayName(cat *catalog.Category, id catalog.CategoryID) string {
	if cat != nil && cat.Name != "" {
		return cat.Name
	}
	return string(id)
}

func scoreUnit(u *catalog.Unit, q string) int {
	name := strings.ToLower(u.Name)
	symbol := strings.ToLower(u.Symbol)
	plural := strings.ToLower(u.Plural)

	if name == q || symbol == q {
		return scoreExactName
	}
	if plural == q {
		return scoreExactAlias
	}
	for _, a := range u.Aliases {
		if strings.ToLower(a) == q {
			return scoreExactAlias
		}
	}
	if strings.HasPrefix(name, q) || strings.HasPrefix(symbol, q) {
		return scorePrefix
	}
	if strings.Contains(name, q) || strings.Contains(symbol, q) || strings.Contains(plural, q) {
		return scoreSubstring
	}
	for _, a := range u.Aliases {
		if strings.Contains(strings.ToLower(a), q) {
			return scoreAliasSubstr
		}
	}
	return 0
}
