package matcher

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wildcast/wildcast/internal/model"
	"github.com/wildcast/wildcast/internal/taxonomy"
)

// DefaultParallelThreshold is the pool size above which Match scores
// contacts concurrently. Below it a plain loop wins on overhead.
const DefaultParallelThreshold = 5000

// ContactMatcher ranks a contact pool against quiz answers. The pool is
// passed in already materialized; the matcher never touches storage.
type ContactMatcher struct {
	tables            *taxonomy.Tables
	parallelThreshold int
}

// NewContactMatcher creates a ContactMatcher over the given taxonomy tables.
// A nil tables falls back to the built-in defaults.
func NewContactMatcher(tables *taxonomy.Tables) *ContactMatcher {
	if tables == nil {
		tables = taxonomy.Default()
	}
	return &ContactMatcher{tables: tables, parallelThreshold: DefaultParallelThreshold}
}

// WithParallelThreshold overrides the pool size at which scoring fans out
// across goroutines. Zero or negative disables the parallel path.
func (m *ContactMatcher) WithParallelThreshold(n int) *ContactMatcher {
	m.parallelThreshold = n
	return m
}

// Match scores every contact, drops zero scores, and returns the remainder
// sorted by score descending. Ties keep the input pool order (the store's
// enumeration order), so repeated runs over the same pool are identical.
func (m *ContactMatcher) Match(ctx context.Context, answers model.SurveyAnswers, contacts []model.Contact) []model.ContactMatch {
	if len(contacts) == 0 {
		return nil
	}

	scored := make([]model.ContactMatch, len(contacts))
	if m.parallelThreshold > 0 && len(contacts) >= m.parallelThreshold {
		m.scoreParallel(ctx, answers, contacts, scored)
	} else {
		for i := range contacts {
			scored[i] = m.scoreOne(answers, contacts[i])
		}
	}

	matches := scored[:0]
	for _, s := range scored {
		if s.MatchScore > 0 {
			matches = append(matches, s)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	zap.L().Debug("matcher: contact matching complete",
		zap.Int("pool_size", len(contacts)),
		zap.Int("matched", len(matches)),
	)

	return matches
}

// scoreOne wraps ScoreContact into a ContactMatch.
func (m *ContactMatcher) scoreOne(answers model.SurveyAnswers, c model.Contact) model.ContactMatch {
	score, reasons := ScoreContact(answers, c, m.tables)
	return model.ContactMatch{Contact: c, MatchScore: score, MatchReasons: reasons}
}

// scoreParallel fans scoring out across GOMAXPROCS workers. Each worker owns
// a disjoint slice range, so results land at the same indexes the serial
// path would use.
func (m *ContactMatcher) scoreParallel(ctx context.Context, answers model.SurveyAnswers, contacts []model.Contact, out []model.ContactMatch) {
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(contacts) + workers - 1) / workers

	g, _ := errgroup.WithContext(ctx)
	for start := 0; start < len(contacts); start += chunk {
		end := start + chunk
		if end > len(contacts) {
			end = len(contacts)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = m.scoreOne(answers, contacts[i])
			}
			return nil
		})
	}
	// Workers never return errors; Wait is for joining only.
	_ = g.Wait()
}
