package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"roster-app/internal/model"
	"roster-app/internal/status"
	"roster-app/internal/store"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, opts Options) (http.Handler, *store.RosterStore) {
	t.Helper()
	return newTestServerOn(t, store.NewMemorySlot(), opts)
}

func newTestServerOn(t *testing.T, slot store.Slot, opts Options) (http.Handler, *store.RosterStore) {
	t.Helper()
	n := 0
	roster := store.NewRosterStore(slot, store.RosterOptions{
		Writer:   store.WriterConfig{WriteTimeout: time.Second},
		Location: time.UTC,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	t.Cleanup(func() { _ = roster.Close(context.Background()) })

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	opts.Location = time.UTC
	return NewServer(roster, status.NewEngine(clock), opts).Routes(), roster
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestTeamLifecycle(t *testing.T) {
	h, _ := newTestServer(t, Options{})

	rec := do(t, h, http.MethodPost, "/teams", `{"name":"  Under 14  "}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[TeamView](t, rec)
	if created.ID != "id-1" || created.Name != "Under 14" {
		t.Fatalf("unexpected team %+v", created)
	}

	rec = do(t, h, http.MethodGet, "/teams", "", nil)
	summaries := decode[[]status.TeamSummary](t, rec)
	if len(summaries) != 1 || summaries[0].Name != "Under 14" {
		t.Fatalf("unexpected summaries %+v", summaries)
	}

	rec = do(t, h, http.MethodPatch, "/teams/id-1", `{"name":"Under 15"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[TeamView](t, rec); got.Name != "Under 15" {
		t.Fatalf("expected renamed team, got %q", got.Name)
	}

	rec = do(t, h, http.MethodDelete, "/teams/id-1", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/teams/id-1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestTeamValidation(t *testing.T) {
	h, _ := newTestServer(t, Options{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"blank name", http.MethodPost, "/teams", `{"name":"   "}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/teams", `{"name":"A","colour":"red"}`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/teams", ``, http.StatusBadRequest},
		{"malformed", http.MethodPost, "/teams", `{"name":`, http.StatusBadRequest},
		{"rename missing", http.MethodPatch, "/teams/nope", `{"name":"A"}`, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/teams/nope", ``, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body, nil)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAthleteEndpoints(t *testing.T) {
	h, roster := newTestServer(t, Options{})
	team := roster.AddTeam("Lions")

	body := `{"firstName":"Marco","lastName":"Rossi","phone":"555","birthDate":"2012-04-01","medicalCertExpiry":"2026-03-10"}`
	rec := do(t, h, http.MethodPost, "/teams/"+team.ID+"/athletes", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	report := decode[status.AthleteReport](t, rec)
	if report.Status != model.StatusWarn || report.Label != "WARN" {
		t.Fatalf("expected warn for a certificate expiring in 9 days, got %+v", report)
	}
	athletePath := "/teams/" + team.ID + "/athletes/" + report.Athlete.ID

	rec = do(t, h, http.MethodPatch, athletePath, `{"medicalCertExpiry":"2026-02-01"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, athletePath+"/status", "", nil)
	st := decode[StatusView](t, rec)
	if st.Status != model.StatusAlt || st.Label != "ALT!" {
		t.Fatalf("expected alt after expiry moved into the past, got %+v", st)
	}

	rec = do(t, h, http.MethodGet, "/teams/"+team.ID, "", nil)
	view := decode[TeamView](t, rec)
	if view.Badge.Alt != 1 || view.Badge.Warn != 0 {
		t.Fatalf("unexpected badge %+v", view.Badge)
	}

	rec = do(t, h, http.MethodDelete, athletePath, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, athletePath, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestAthleteCreateErrors(t *testing.T) {
	h, roster := newTestServer(t, Options{})
	team := roster.AddTeam("Lions")

	rec := do(t, h, http.MethodPost, "/teams/missing/athletes", `{"firstName":"A","lastName":"B"}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown team, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/teams/"+team.ID+"/athletes", `{"firstName":"A"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without last name, got %d", rec.Code)
	}
	if got := decode[errorView](t, rec); got.Error == "" {
		t.Fatalf("expected an error message")
	}
	rec = do(t, h, http.MethodGet, "/teams/"+team.ID+"/athletes/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown athlete, got %d", rec.Code)
	}
}

func TestMatchEndpoints(t *testing.T) {
	h, roster := newTestServer(t, Options{})
	team := roster.AddTeam("Lions")
	base := "/teams/" + team.ID + "/matches"

	upcoming := `{"date":"2026-03-10","time":"18:00","homeTeam":"Lions","awayTeam":"Bears","location":"Arena"}`
	past := `{"date":"2026-02-10","time":"18:00","homeTeam":"Wolves","awayTeam":"Lions","location":"Field"}`
	for _, body := range []string{upcoming, past} {
		rec := do(t, h, http.MethodPost, base, body, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodGet, "/matches", "", nil)
	all := decode[[]MatchView](t, rec)
	if len(all) != 2 || all[0].Date != "2026-02-10" || all[1].Date != "2026-03-10" {
		t.Fatalf("expected matches sorted by start, got %+v", all)
	}
	if all[0].TeamName != "Lions" || all[0].DateLabel != "10-02-2026" {
		t.Fatalf("unexpected view fields %+v", all[0])
	}

	rec = do(t, h, http.MethodGet, "/matches?when=upcoming", "", nil)
	next := decode[[]MatchView](t, rec)
	if len(next) != 1 || next[0].Date != "2026-03-10" || !next[0].Upcoming {
		t.Fatalf("unexpected upcoming matches %+v", next)
	}

	rec = do(t, h, http.MethodGet, "/matches?when=past", "", nil)
	prev := decode[[]MatchView](t, rec)
	if len(prev) != 1 || prev[0].Date != "2026-02-10" || prev[0].Upcoming {
		t.Fatalf("unexpected past matches %+v", prev)
	}

	rec = do(t, h, http.MethodGet, "/matches?when=someday", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown window, got %d", rec.Code)
	}

	matchID := prev[0].ID
	rec = do(t, h, http.MethodPatch, base+"/"+matchID, `{"notes":"moved indoors"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[model.Match](t, rec); got.Notes != "moved indoors" || got.Location != "Field" {
		t.Fatalf("expected merged match, got %+v", got)
	}

	rec = do(t, h, http.MethodDelete, base+"/"+matchID, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, base, "", nil)
	if got := decode[[]MatchView](t, rec); len(got) != 1 {
		t.Fatalf("expected one match left, got %d", len(got))
	}
}

func TestMatchCreateValidation(t *testing.T) {
	h, roster := newTestServer(t, Options{})
	team := roster.AddTeam("Lions")
	base := "/teams/" + team.ID + "/matches"

	cases := map[string]string{
		"missing opponent": `{"date":"2026-03-10","time":"18:00","homeTeam":"Lions","location":"Arena"}`,
		"bad date":         `{"date":"10/03/2026","time":"18:00","homeTeam":"Lions","awayTeam":"Bears","location":"Arena"}`,
		"bad time":         `{"date":"2026-03-10","time":"6pm","homeTeam":"Lions","awayTeam":"Bears","location":"Arena"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, base, body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
	if got := roster.AllMatches(); len(got) != 0 {
		t.Fatalf("expected no matches stored, got %d", len(got))
	}
}

func TestWriteKeyRequiredForMutations(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h, _ := newTestServer(t, Options{WriteKeyHash: string(hash)})

	rec := do(t, h, http.MethodPost, "/teams", `{"name":"Lions"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/teams", `{"name":"Lions"}`, map[string]string{writeKeyHeader: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/teams", `{"name":"Lions"}`, map[string]string{writeKeyHeader: "s3cret"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with key, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/teams", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected reads to stay open, got %d", rec.Code)
	}
}

func TestCORSHeadersWhenOriginsConfigured(t *testing.T) {
	h, _ := newTestServer(t, Options{CORSOrigins: []string{"https://club.example"}})

	rec := do(t, h, http.MethodGet, "/teams", "", map[string]string{"Origin": "https://club.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://club.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
	rec = do(t, h, http.MethodGet, "/teams", "", map[string]string{"Origin": "https://other.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

// gatedSlot holds every write until open is called.
type gatedSlot struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once

	mu     sync.Mutex
	writes int
}

func newGatedSlot() *gatedSlot {
	return &gatedSlot{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedSlot) open() { g.once.Do(func() { close(g.release) }) }

func (g *gatedSlot) Read(_ context.Context) ([]byte, error) { return nil, store.ErrSlotEmpty }

func (g *gatedSlot) Write(_ context.Context, _ []byte) error {
	g.started <- struct{}{}
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes++
	return nil
}

func (g *gatedSlot) Close() error { return nil }

type brokenSlot struct{}

func (brokenSlot) Read(_ context.Context) ([]byte, error)  { return nil, store.ErrSlotEmpty }
func (brokenSlot) Write(_ context.Context, _ []byte) error { return errors.New("bucket unavailable") }
func (brokenSlot) Close() error                            { return nil }

func TestFlushWritesHoldsResponseUntilSaved(t *testing.T) {
	slot := newGatedSlot()
	h, _ := newTestServerOn(t, slot, Options{FlushWrites: true})
	t.Cleanup(slot.open)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(t, h, http.MethodPost, "/teams", `{"name":"Lions"}`, nil)
	}()

	select {
	case <-slot.started:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected the roster write to start")
	}
	select {
	case <-done:
		t.Fatalf("expected the response to wait for the write")
	case <-time.After(50 * time.Millisecond):
	}

	slot.open()
	var rec *httptest.ResponseRecorder
	select {
	case rec = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a response once the write finished")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[TeamView](t, rec); got.Name != "Lions" {
		t.Fatalf("expected buffered body to be sent, got %+v", got)
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.writes != 1 {
		t.Fatalf("expected 1 completed write, got %d", slot.writes)
	}
}

func TestFlushWritesReportsFailedSave(t *testing.T) {
	h, roster := newTestServerOn(t, brokenSlot{}, Options{FlushWrites: true})

	rec := do(t, h, http.MethodPost, "/teams", `{"name":"Lions"}`, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}
	if roster.LastWriteError() == nil {
		t.Fatalf("expected the write error to be recorded")
	}

	rec = do(t, h, http.MethodGet, "/teams", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected reads to skip the flush, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/teams/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 to pass through, got %d", rec.Code)
	}
}
