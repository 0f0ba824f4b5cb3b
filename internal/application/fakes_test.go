package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

type fakeContentRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]entities.ContentItem
	failOn map[string]error
}

func newFakeContentRepo(items ...entities.ContentItem) *fakeContentRepo {
	r := &fakeContentRepo{items: map[int64]entities.ContentItem{}, failOn: map[string]error{}}
	for _, it := range items {
		if it.ID == 0 {
			r.nextID++
			it.ID = r.nextID
		} else if it.ID > r.nextID {
			r.nextID = it.ID
		}
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeContentRepo) sorted() []entities.ContentItem {
	out := make([]entities.ContentItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeContentRepo) bySection(section entities.Section) []entities.ContentItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.ContentItem
	for _, it := range r.sorted() {
		if it.Section == section {
			out = append(out, it)
		}
	}
	return out
}

func (r *fakeContentRepo) UpsertBySection(_ context.Context, item *entities.ContentItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["upsert"]; err != nil {
		return 0, err
	}
	for _, it := range r.sorted() {
		if it.Section == item.Section {
			updated := *item
			updated.ID = it.ID
			r.items[it.ID] = updated
			return it.ID, nil
		}
	}
	r.nextID++
	created := *item
	created.ID = r.nextID
	r.items[created.ID] = created
	return created.ID, nil
}

func (r *fakeContentRepo) InsertEvent(_ context.Context, name string, endAsia time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.items[r.nextID] = entities.ContentItem{ID: r.nextID, Section: entities.SectionEvents, Name: name, EndAsia: endAsia}
	return r.nextID, nil
}

func (r *fakeContentRepo) FindBySection(_ context.Context, section entities.Section) (*entities.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.sorted() {
		if it.Section == section {
			return &it, nil
		}
	}
	return nil, nil
}

func (r *fakeContentRepo) LockByID(_ context.Context, id int64) (*entities.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["lock"]; err != nil {
		return nil, err
	}
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeContentRepo) ListEvents(_ context.Context) ([]entities.ContentItem, error) {
	return r.bySection(entities.SectionEvents), nil
}

func (r *fakeContentRepo) ListAlertable(_ context.Context) ([]entities.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.ContentItem
	for _, it := range r.sorted() {
		if it.Section != entities.SectionEvents {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) DeleteEventsExpiredBefore(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, it := range r.items {
		if it.Section == entities.SectionEvents && !it.EndAsia.After(now) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeContentRepo) DeleteAllEvents(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, it := range r.items {
		if it.Section == entities.SectionEvents {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeContentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeLedger struct {
	mu      sync.Mutex
	entries map[entities.LedgerEntry]bool
}

func newFakeLedger(entries ...entities.LedgerEntry) *fakeLedger {
	l := &fakeLedger{entries: map[entities.LedgerEntry]bool{}}
	for _, e := range entries {
		l.entries[e] = true
	}
	return l
}

func (l *fakeLedger) Exists(_ context.Context, e entities.LedgerEntry) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[e], nil
}

func (l *fakeLedger) Record(_ context.Context, e entities.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[e] = true
	return nil
}

func (l *fakeLedger) ClearContent(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for e := range l.entries {
		if e.ContentID == id {
			delete(l.entries, e)
		}
	}
	return nil
}

func (l *fakeLedger) count(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for e := range l.entries {
		if e.ContentID == id {
			n++
		}
	}
	return n
}

type fakeOffsets map[entities.Region]int

func defaultOffsets() fakeOffsets {
	return fakeOffsets{entities.RegionAsia: 8, entities.RegionEurope: 1, entities.RegionAmerica: -5}
}

func (o fakeOffsets) Offset(_ context.Context, r entities.Region) (int, error) {
	v, ok := o[r]
	if !ok {
		return 0, fmt.Errorf("no offset for %s", r)
	}
	return v, nil
}

func (o fakeOffsets) Seed(_ context.Context, offsets map[entities.Region]int) error {
	for r, v := range offsets {
		if _, ok := o[r]; !ok {
			o[r] = v
		}
	}
	return nil
}

type fakeAdminRepo struct {
	mu  sync.Mutex
	ids map[string]bool
}

func newFakeAdminRepo(ids ...string) *fakeAdminRepo {
	r := &fakeAdminRepo{ids: map[string]bool{}}
	for _, id := range ids {
		r.ids[id] = true
	}
	return r
}

func (r *fakeAdminRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[id], nil
}

func (r *fakeAdminRepo) Add(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[id] = true
	return nil
}

func (r *fakeAdminRepo) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
	return nil
}

func (r *fakeAdminRepo) List(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// fakeTx serializes units of work; it does not roll back.
type fakeTx struct {
	mu sync.Mutex
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakeConversations struct {
	mu     sync.Mutex
	states map[entities.ConversationKey]entities.ConversationState
	// getDelay widens the window between a read and the following write.
	getDelay time.Duration
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{states: map[entities.ConversationKey]entities.ConversationState{}}
}

func (c *fakeConversations) Get(_ context.Context, key entities.ConversationKey) (*entities.ConversationState, error) {
	c.mu.Lock()
	st, ok := c.states[key]
	delay := c.getDelay
	c.mu.Unlock()
	time.Sleep(delay)
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (c *fakeConversations) Put(_ context.Context, key entities.ConversationKey, st *entities.ConversationState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[key] = *st
	return nil
}

func (c *fakeConversations) Delete(_ context.Context, key entities.ConversationKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, key)
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []output.Notification
	err  error
	// panicOn makes Notify panic for notifications carrying this media.
	panicOn entities.MediaRef
}

func (n *fakeNotifier) Notify(_ context.Context, msg output.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.panicOn != "" && msg.Media == n.panicOn {
		panic("notifier exploded")
	}
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// keyTranslator renders the message key, which keeps assertions independent
// of catalog wording.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }
func (keyTranslator) DefaultLocale() string                    { return "en" }

var errBoom = errors.New("boom")
