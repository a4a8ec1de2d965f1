package redis

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"exam-scoring-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// TestLoader fetches test definitions from a backing store.
type TestLoader interface {
	LoadTest(ctx context.Context, testID string) (domain.Test, error)
}

// TestRepository caches the scoring view of a test in one Redis hash and falls back to a loader on cache miss.
// Layout of test:{testID}:
//
//	questions        number of questions
//	q:{index}        correct option of question index
//	marks:{name}     correct|wrong|unanswered mark, "" when the test leaves it unset
//
// Every field is written in one MULTI so a hash is either complete or absent.
// Question text is not cached and comes back empty on a hit.
type TestRepository struct {
	client *redis.Client
	loader TestLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewTestRepository(client *redis.Client, loader TestLoader, ttl time.Duration) *TestRepository {
	return &TestRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *TestRepository) GetTest(ctx context.Context, testID string) (domain.Test, error) {
	if test, ok := r.fromCache(ctx, testID); ok {
		return test, nil
	}

	result, err, _ := r.sf.Do(testID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if test, ok := r.fromCache(ctx, testID); ok {
			return test, nil
		}

		test, err := r.loader.LoadTest(ctx, testID)
		if err != nil {
			return domain.Test{}, err
		}

		key := r.testKey(testID)
		ttl := r.ttlWithJitter()
		// best-effort; a failed fill only costs another load
		_, _ = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, cacheFields(test))
			if ttl > 0 {
				pipe.Expire(ctx, key, ttl)
			}
			return nil
		})

		return test, nil
	})
	if err != nil {
		return domain.Test{}, err
	}
	return result.(domain.Test), nil
}

func (r *TestRepository) fromCache(ctx context.Context, testID string) (domain.Test, bool) {
	fields, err := r.client.HGetAll(ctx, r.testKey(testID)).Result()
	if err != nil || len(fields) == 0 {
		return domain.Test{}, false
	}
	return buildTestFromCache(testID, fields)
}

func (r *TestRepository) testKey(testID string) string {
	return "test:" + testID
}

var markNames = []string{"correct", "wrong", "unanswered"}

func cacheFields(test domain.Test) map[string]interface{} {
	fields := make(map[string]interface{}, len(test.Questions)+len(markNames)+1)
	fields["questions"] = len(test.Questions)
	for i, q := range test.Questions {
		fields["q:"+strconv.Itoa(i)] = q.CorrectAnswer
	}
	marks := []*float64{test.Marks.Correct, test.Marks.Wrong, test.Marks.Unanswered}
	for i, name := range markNames {
		raw := ""
		if marks[i] != nil {
			raw = strconv.FormatFloat(*marks[i], 'g', -1, 64)
		}
		fields["marks:"+name] = raw
	}
	return fields
}

// buildTestFromCache rebuilds a scoring view of the test. A malformed or
// partial hash is reported as a miss so the loader is consulted again.
func buildTestFromCache(testID string, fields map[string]string) (domain.Test, bool) {
	n, err := strconv.Atoi(fields["questions"])
	if err != nil || n < 0 || len(fields) != n+len(markNames)+1 {
		return domain.Test{}, false
	}

	questions := make([]domain.Question, n)
	for i := range questions {
		raw, ok := fields["q:"+strconv.Itoa(i)]
		if !ok {
			return domain.Test{}, false
		}
		c, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Test{}, false
		}
		questions[i] = domain.Question{CorrectAnswer: c}
	}

	marks := make([]*float64, len(markNames))
	for i, name := range markNames {
		raw, ok := fields["marks:"+name]
		if !ok {
			return domain.Test{}, false
		}
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Test{}, false
		}
		marks[i] = &v
	}

	return domain.Test{
		ID:        testID,
		Questions: questions,
		Marks:     domain.MarkingScheme{Correct: marks[0], Wrong: marks[1], Unanswered: marks[2]},
	}, true
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
