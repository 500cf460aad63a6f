package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/testutil"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/go-chi/chi/v5"
)

// MockSimulator returns canned results
type MockSimulator struct {
	box       *models.BoxScore
	batch     *models.BatchResponse
	err       error
	lastReq   models.SimulateRequest
	lastBatch models.BatchRequest
}

func (m *MockSimulator) Simulate(ctx context.Context, req models.SimulateRequest) (*models.BoxScore, error) {
	m.lastReq = req
	return m.box, m.err
}

func (m *MockSimulator) SimulateBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	m.lastBatch = req
	return m.batch, m.err
}

// MockReader implements contracts.GameReader for testing
type MockReader struct {
	games       map[string]*models.BoxScore
	recent      []string
	shouldError bool
	lastLimit   int
}

func (m *MockReader) ReadGameSummary(ctx context.Context, id string) (*models.Game, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	if box, ok := m.games[id]; ok {
		return box.Game, nil
	}
	return nil, nil
}

func (m *MockReader) ReadBoxScore(ctx context.Context, id string) (*models.BoxScore, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	return m.games[id], nil
}

func (m *MockReader) ReadRecentGames(ctx context.Context, limit int) ([]string, error) {
	m.lastLimit = limit
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	return m.recent, nil
}

func newRouter(sim handlers.Simulator, reader *MockReader) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", handlers.NewGamesHandler(sim, reader, nil).Routes)
	return r
}

func sampleBox() *models.BoxScore {
	return &models.BoxScore{
		Game:      &models.Game{GameID: "g-1", HomeTeam: "Home", AwayTeam: "Away", HomeScore: 24, AwayScore: 10},
		HomeStats: map[string]float64{"Pass Yards": 240},
	}
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestHandleSimulate_Success(t *testing.T) {
	sim := &MockSimulator{box: sampleBox()}
	seed := int64(99)
	req := models.SimulateRequest{Teams: testutil.MockRequestTeams(), Seed: &seed}

	w := do(t, newRouter(sim, &MockReader{}), "POST", "/api/v1/games", req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var box models.BoxScore
	if err := json.NewDecoder(w.Body).Decode(&box); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if box.Game.GameID != "g-1" || box.HomeStats["Pass Yards"] != 240 {
		t.Errorf("unexpected box score: %+v", box)
	}
	if sim.lastReq.Seed == nil || *sim.lastReq.Seed != 99 || len(sim.lastReq.Teams) != 2 {
		t.Errorf("request not passed through: %+v", sim.lastReq)
	}
}

func TestHandleSimulate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		simErr   error
		wantCode int
	}{
		{"malformed json", "{teams:", nil, http.StatusBadRequest},
		{"invalid roster", models.SimulateRequest{}, fmt.Errorf("initializing teams: %w", roster.ErrTeamCount), http.StatusBadRequest},
		{"internal failure", models.SimulateRequest{}, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := &MockSimulator{err: tt.simErr}
			w := do(t, newRouter(sim, &MockReader{}), "POST", "/api/v1/games", tt.body)

			if w.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			resp := decodeError(t, w)
			if resp.Code != tt.wantCode || resp.Error != http.StatusText(tt.wantCode) {
				t.Errorf("unexpected error body: %+v", resp)
			}
		})
	}
}

func TestHandleSimulate_InternalErrorHidesDetail(t *testing.T) {
	sim := &MockSimulator{err: errors.New("dial tcp: secret-host")}
	w := do(t, newRouter(sim, &MockReader{}), "POST", "/api/v1/games", models.SimulateRequest{})

	if strings.Contains(w.Body.String(), "secret-host") {
		t.Errorf("internal error detail leaked: %s", w.Body.String())
	}
}

func TestHandleBatch(t *testing.T) {
	sim := &MockSimulator{batch: &models.BatchResponse{
		HomeTeam: "Home", AwayTeam: "Away", Games: 2,
		HomeWins: 1, AwayWins: 1,
	}}

	w := do(t, newRouter(sim, &MockReader{}), "POST", "/api/v1/games/batch",
		models.BatchRequest{Teams: testutil.MockRequestTeams(), Seeds: []int64{1, 2}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp models.BatchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Games != 2 || resp.HomeWins != 1 || resp.AwayWins != 1 {
		t.Errorf("unexpected batch response: %+v", resp)
	}
	if len(sim.lastBatch.Seeds) != 2 {
		t.Errorf("seeds not passed through: %+v", sim.lastBatch.Seeds)
	}
}

func TestHandleGetGame(t *testing.T) {
	reader := &MockReader{games: map[string]*models.BoxScore{"g-1": sampleBox()}}
	router := newRouter(&MockSimulator{}, reader)

	t.Run("found", func(t *testing.T) {
		w := do(t, router, "GET", "/api/v1/games/g-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var game models.Game
		if err := json.NewDecoder(w.Body).Decode(&game); err != nil {
			t.Fatal(err)
		}
		if game.HomeScore != 24 {
			t.Errorf("expected home score 24, got %d", game.HomeScore)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := do(t, router, "GET", "/api/v1/games/missing", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})

	t.Run("reader error", func(t *testing.T) {
		w := do(t, newRouter(&MockSimulator{}, &MockReader{shouldError: true}), "GET", "/api/v1/games/g-1", nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}
	})
}

func TestHandleGetBoxScore(t *testing.T) {
	reader := &MockReader{games: map[string]*models.BoxScore{"g-1": sampleBox()}}
	router := newRouter(&MockSimulator{}, reader)

	w := do(t, router, "GET", "/api/v1/games/g-1/boxscore", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var box models.BoxScore
	if err := json.NewDecoder(w.Body).Decode(&box); err != nil {
		t.Fatal(err)
	}
	if box.HomeStats["Pass Yards"] != 240 {
		t.Errorf("unexpected box score: %+v", box)
	}

	w = do(t, router, "GET", "/api/v1/games/missing/boxscore", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleGetBoxScore_DirectWithRouteContext(t *testing.T) {
	reader := &MockReader{games: map[string]*models.BoxScore{"g-1": sampleBox()}}
	h := handlers.NewGamesHandler(&MockSimulator{}, reader, nil)

	req := httptest.NewRequest("GET", "/api/v1/games/g-1/boxscore", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("game_id", "g-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.HandleGetBoxScore(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestHandleGetRecentGames(t *testing.T) {
	tests := []struct {
		query     string
		wantLimit int
	}{
		{"", 20},
		{"?limit=5", 5},
		{"?limit=abc", 20},
		{"?limit=0", 20},
		{"?limit=500", 20},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			reader := &MockReader{recent: []string{"g-2", "g-1"}}
			w := do(t, newRouter(&MockSimulator{}, reader), "GET", "/api/v1/games/recent"+tt.query, nil)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if reader.lastLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, reader.lastLimit)
			}
			var resp struct {
				Games []string `json:"games"`
				Count int      `json:"count"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Count != 2 || resp.Games[0] != "g-2" {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}
