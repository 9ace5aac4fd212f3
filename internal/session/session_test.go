package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"voiceops-console/internal/skillbase"
)

func draftConfig() skillbase.Config {
	return skillbase.Config{
		Version: 2,
		Flow: &skillbase.FlowSection{
			GreetingPhrases:  []string{"Hello"},
			ConversationPlan: []string{"a", "b", "c"},
		},
	}
}

func TestSession_CancelRestoresExactOriginal(t *testing.T) {
	original := draftConfig()
	s := Begin("sb-1", original)

	if s.Dirty() {
		t.Fatalf("fresh session must be clean")
	}
	err := s.Stage(func(c *skillbase.Config) {
		c.Flow.ConversationPlan = append([]string{"intro"}, c.Flow.ConversationPlan...)
		c.Version = 99
	})
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if !s.Dirty() {
		t.Fatalf("expected dirty after mutation")
	}

	if err := s.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if s.Dirty() {
		t.Fatalf("expected clean after cancel")
	}
	got := s.Working()
	if got.Version != 2 || len(got.Flow.ConversationPlan) != 3 || got.Flow.ConversationPlan[0] != "a" {
		t.Fatalf("cancel left residual mutation: %+v", got)
	}
}

func TestSession_StageDoesNotAliasSnapshot(t *testing.T) {
	s := Begin("sb-1", draftConfig())
	// Replacing the working copy wholesale never writes through to the
	// snapshot; slice mutations go through a fresh copy.
	work := s.Working()
	work.Version = 7
	if err := s.Replace(work); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if s.Snapshot().Version != 2 {
		t.Fatalf("snapshot mutated: %+v", s.Snapshot())
	}
}

func TestSession_SaveSuccessAdoptsServerCopy(t *testing.T) {
	s := Begin("sb-1", draftConfig())
	_ = s.Stage(func(c *skillbase.Config) { c.Flow.GreetingPhrases = []string{"Hi there"} })

	working, err := s.BeginSave()
	if err != nil {
		t.Fatalf("begin save: %v", err)
	}
	if !s.Saving() {
		t.Fatalf("expected save in flight")
	}

	// Server responds with its persisted, version-bumped copy.
	serverCopy := working
	serverCopy.Version = 3
	s.Resolve(serverCopy, nil)

	if s.Dirty() {
		t.Fatalf("expected clean after resolved save")
	}
	if s.Snapshot().Version != 3 || s.Working().Version != 3 {
		t.Fatalf("expected server copy adopted, snapshot=%+v", s.Snapshot())
	}
}

func TestSession_SaveFailureRetainsEdits(t *testing.T) {
	s := Begin("sb-1", draftConfig())
	_ = s.Stage(func(c *skillbase.Config) { c.Flow.GreetingPhrases = []string{"Hi there"} })

	if _, err := s.BeginSave(); err != nil {
		t.Fatalf("begin save: %v", err)
	}
	s.Resolve(skillbase.Config{}, errors.New("backend down"))

	if !s.Dirty() {
		t.Fatalf("failed save must keep session dirty")
	}
	if got := s.Working().Flow.GreetingPhrases[0]; got != "Hi there" {
		t.Fatalf("edits lost on failed save: %q", got)
	}
	// The session is usable again.
	if _, err := s.BeginSave(); err != nil {
		t.Fatalf("retry save: %v", err)
	}
}

func TestSession_RejectsNoOpAndDuplicateSaves(t *testing.T) {
	s := Begin("sb-1", draftConfig())

	if _, err := s.BeginSave(); !errors.Is(err, ErrNotDirty) {
		t.Fatalf("expected ErrNotDirty, got %v", err)
	}

	_ = s.Stage(func(c *skillbase.Config) { c.Version = 5 })
	if _, err := s.BeginSave(); err != nil {
		t.Fatalf("begin save: %v", err)
	}
	if _, err := s.BeginSave(); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}
	if err := s.Cancel(); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("cancel during save must be refused, got %v", err)
	}
}

func TestSession_LateResolveAfterCloseIsDiscarded(t *testing.T) {
	s := Begin("sb-1", draftConfig())
	_ = s.Stage(func(c *skillbase.Config) { c.Version = 5 })
	if _, err := s.BeginSave(); err != nil {
		t.Fatalf("begin save: %v", err)
	}

	s.Close()
	// The response arrives after abandonment; must not panic or resurrect.
	s.Resolve(skillbase.Config{Version: 6}, nil)

	if !s.Closed() {
		t.Fatalf("expected closed")
	}
	if err := s.Stage(func(c *skillbase.Config) {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestRegistry_OneSessionPerAggregate(t *testing.T) {
	r := NewRegistry[skillbase.Config](nil)
	ctx := context.Background()

	if _, err := r.Begin(ctx, "sb-1", draftConfig()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := r.Begin(ctx, "sb-1", draftConfig()); !errors.Is(err, ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}
	// A different aggregate is unaffected.
	if _, err := r.Begin(ctx, "sb-2", draftConfig()); err != nil {
		t.Fatalf("begin sb-2: %v", err)
	}

	if err := r.End(ctx, "sb-1"); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := r.Begin(ctx, "sb-1", draftConfig()); err != nil {
		t.Fatalf("begin after end: %v", err)
	}
}

type fakeLocker struct {
	held map[string]bool
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (bool, error) {
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Release(_ context.Context, key string) error {
	delete(f.held, key)
	return nil
}

func TestRegistry_RefusedLockReleasesReservedSlot(t *testing.T) {
	lk := &fakeLocker{held: map[string]bool{"sb-1": true}} // held by another replica
	r := NewRegistry[skillbase.Config](lk)
	ctx := context.Background()

	if _, err := r.Begin(ctx, "sb-1", draftConfig()); !errors.Is(err, ErrHeld) {
		t.Fatalf("expected ErrHeld from locker, got %v", err)
	}
	if _, ok := r.Get("sb-1"); ok {
		t.Fatalf("refused Begin left a session registered")
	}

	delete(lk.held, "sb-1")
	if _, err := r.Begin(ctx, "sb-1", draftConfig()); err != nil {
		t.Fatalf("begin after lock freed: %v", err)
	}
}

// blockingLocker stalls acquisition for one key until gate closes.
type blockingLocker struct {
	key     string
	entered chan struct{}
	gate    chan struct{}
}

func (l *blockingLocker) Acquire(_ context.Context, key string) (bool, error) {
	if key == l.key {
		close(l.entered)
		<-l.gate
	}
	return true, nil
}

func (l *blockingLocker) Release(context.Context, string) error { return nil }

func TestRegistry_SlowLockAcquireDoesNotBlockOtherAggregates(t *testing.T) {
	lk := &blockingLocker{key: "slow", entered: make(chan struct{}), gate: make(chan struct{})}
	r := NewRegistry[skillbase.Config](lk)
	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() {
		_, err := r.Begin(ctx, "slow", draftConfig())
		slowDone <- err
	}()
	<-lk.entered

	otherDone := make(chan error, 1)
	go func() {
		_, err := r.Begin(ctx, "other", draftConfig())
		otherDone <- err
	}()

	select {
	case err := <-otherDone:
		if err != nil {
			t.Fatalf("begin other: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("unrelated aggregate blocked behind an in-flight lock acquisition")
	}
	if _, ok := r.Get("other"); !ok {
		t.Fatalf("expected other session registered")
	}

	close(lk.gate)
	if err := <-slowDone; err != nil {
		t.Fatalf("begin slow: %v", err)
	}
}

func TestRegistry_LockerExtendsExclusivity(t *testing.T) {
	lk := &fakeLocker{held: map[string]bool{"sb-1": true}} // held by another replica
	r := NewRegistry[skillbase.Config](lk)

	if _, err := r.Begin(context.Background(), "sb-1", draftConfig()); !errors.Is(err, ErrHeld) {
		t.Fatalf("expected ErrHeld from locker, got %v", err)
	}

	if _, err := r.Begin(context.Background(), "sb-2", draftConfig()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := r.End(context.Background(), "sb-2"); err != nil {
		t.Fatalf("end: %v", err)
	}
	if lk.held["sb-2"] {
		t.Fatalf("expected lock released")
	}
}
