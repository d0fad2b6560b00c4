package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Lifecycle(t *testing.T) {
	g := NewGuard()
	target := domain.ExportTarget{Kind: domain.ExportSurvey, ID: uuid.New()}

	assert.Equal(t, StateIdle, g.State(target))
	require.True(t, g.Begin(target))
	assert.Equal(t, StateFetching, g.State(target))
	assert.False(t, g.Begin(target))

	g.Advance(target, StateComposing)
	assert.Equal(t, StateComposing, g.State(target))
	assert.False(t, g.Begin(target))

	g.Advance(target, StateWriting)
	assert.Equal(t, 1, g.InFlight())

	g.Finish(target)
	assert.Equal(t, StateIdle, g.State(target))
	assert.Equal(t, 0, g.InFlight())
}

func TestGuard_FailedAcceptsNewExport(t *testing.T) {
	g := NewGuard()
	target := domain.ExportTarget{Kind: domain.ExportSite, ID: uuid.New()}

	require.True(t, g.Begin(target))
	g.Fail(target)
	assert.Equal(t, StateFailed, g.State(target))
	assert.Equal(t, 0, g.InFlight())

	require.True(t, g.Begin(target))
	assert.Equal(t, StateFetching, g.State(target))
}

func TestGuard_AdvanceIgnoresIdleTarget(t *testing.T) {
	g := NewGuard()
	target := domain.ExportTarget{Kind: domain.ExportSurvey, ID: uuid.New()}

	g.Advance(target, StateWriting)
	assert.Equal(t, StateIdle, g.State(target))
}

func TestGuard_TargetsAreKeyedByKind(t *testing.T) {
	g := NewGuard()
	id := uuid.New()

	require.True(t, g.Begin(domain.ExportTarget{Kind: domain.ExportSurvey, ID: id}))
	assert.True(t, g.Begin(domain.ExportTarget{Kind: domain.ExportSite, ID: id}))
	assert.Equal(t, 2, g.InFlight())
}

func TestGuard_ConcurrentBeginAdmitsOne(t *testing.T) {
	g := NewGuard()
	target := domain.ExportTarget{Kind: domain.ExportSurvey, ID: uuid.New()}

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Begin(target) {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}

func TestExportError(t *testing.T) {
	id := uuid.MustParse("5c2f7a1e-8b4d-4e0f-a1c2-3d4e5f6a7b8c")
	err := &ExportError{
		Target:  domain.ExportTarget{Kind: domain.ExportSurvey, ID: id},
		Stage:   StageFetch,
		Message: messageFor(domain.ExportSurvey),
		Err:     domain.ErrNotFound,
	}

	assert.Equal(t, "export survey/5c2f7a1e-8b4d-4e0f-a1c2-3d4e5f6a7b8c: fetch: record not found", err.Error())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, MessageSurvey, err.Message)
	assert.Equal(t, MessageList, messageFor(domain.ExportSite))

	var target *ExportError
	assert.True(t, errors.As(error(err), &target))
}
