package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"exam-scoring-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// TestLoader fetches test definitions from a backing store.
type TestLoader interface {
	LoadTest(ctx context.Context, testID string) (domain.Test, error)
}

// TestRepository keeps answer keys and marking schemes of recently scored tests
// in process. Entries expire after ttl plus up to 10% jitter; concurrent misses
// for one test share a single loader call. Callers receive copies, so editing a
// returned test never changes what later submissions are scored against.
type TestRepository struct {
	loader TestLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedTest
}

type cachedTest struct {
	test      domain.Test
	expiresAt time.Time
}

func NewTestRepository(loader TestLoader, ttl time.Duration) *TestRepository {
	return &TestRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedTest),
	}
}

func (r *TestRepository) GetTest(ctx context.Context, testID string) (domain.Test, error) {
	if test, ok := r.cached(testID, r.clock()); ok {
		return cloneTest(test), nil
	}

	result, err, _ := r.sf.Do(testID, func() (interface{}, error) {
		now := r.clock()
		if test, ok := r.cached(testID, now); ok {
			return test, nil
		}

		test, err := r.loader.LoadTest(ctx, testID)
		if err != nil {
			return domain.Test{}, err
		}

		test = cloneTest(test)
		r.mu.Lock()
		r.cache[testID] = cachedTest{
			test:      test,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return test, nil
	})
	if err != nil {
		return domain.Test{}, err
	}
	return cloneTest(result.(domain.Test)), nil
}

func (r *TestRepository) cached(testID string, now time.Time) (domain.Test, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[testID]
	if !ok || !entry.expiresAt.After(now) {
		return domain.Test{}, false
	}
	return entry.test, true
}

func (r *TestRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func cloneTest(t domain.Test) domain.Test {
	out := t
	out.Questions = make([]domain.Question, len(t.Questions))
	for i, q := range t.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	out.Marks = domain.MarkingScheme{
		Correct:    cloneMark(t.Marks.Correct),
		Wrong:      cloneMark(t.Marks.Wrong),
		Unanswered: cloneMark(t.Marks.Unanswered),
	}
	return out
}

func cloneMark(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// StaticTestLoader serves a fixed set of tests, the sample set when no database is configured.
type StaticTestLoader struct {
	tests map[string]domain.Test
}

func NewStaticTestLoader(tests map[string]domain.Test) *StaticTestLoader {
	return &StaticTestLoader{tests: tests}
}

func (l *StaticTestLoader) LoadTest(_ context.Context, testID string) (domain.Test, error) {
	if test, ok := l.tests[testID]; ok {
		return test, nil
	}
	return domain.Test{}, domain.ErrTestNotFound
}
