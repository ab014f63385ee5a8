package service

import (
	"context"
	"sync"

	"github.com/speckit/speckit-backend/internal/domain"
)

// cohortFlight 전공 집단별 재계산을 합친다.
// 호출자는 항상 자신이 요청한 뒤에 시작한 실행의 결과를 받는다. 실행 중에 들어온
// 요청들은 다음 실행 하나에 모이고, 같은 집단의 실행은 한 번에 하나만 돈다.
type cohortFlight struct {
	mu    sync.Mutex
	state map[string]*cohortState
}

type cohortState struct {
	running bool
	next    *cohortCall // 아직 시작하지 않은 실행
}

type cohortCall struct {
	done  chan struct{}
	ranks []domain.CohortRank
	err   error
}

type cohortRunFunc func(ctx context.Context) ([]domain.CohortRank, error)

// do runs fn for key, or waits for the next run when one is in flight.
// The caller that finds the cohort idle drives every queued run; runs after its
// own use a context detached from its cancellation.
func (f *cohortFlight) do(ctx context.Context, key string, fn cohortRunFunc) ([]domain.CohortRank, error) {
	f.mu.Lock()
	if f.state == nil {
		f.state = map[string]*cohortState{}
	}
	st, ok := f.state[key]
	if !ok {
		st = &cohortState{}
		f.state[key] = st
	}
	if st.next == nil {
		st.next = &cohortCall{done: make(chan struct{})}
	}
	call := st.next
	if st.running {
		f.mu.Unlock()
		select {
		case <-call.done:
			return call.ranks, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	st.running = true
	f.mu.Unlock()

	runCtx := ctx
	for {
		f.mu.Lock()
		c := st.next
		if c == nil {
			st.running = false
			delete(f.state, key)
			f.mu.Unlock()
			break
		}
		st.next = nil
		f.mu.Unlock()

		c.ranks, c.err = fn(runCtx)
		close(c.done)
		runCtx = context.WithoutCancel(ctx)
	}
	return call.ranks, call.err
}

