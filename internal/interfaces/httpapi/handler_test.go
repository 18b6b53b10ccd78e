package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/infrastructure/repository/memory"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
	"github.com/gamedayhq/gameday/internal/platform/logging"
	"github.com/gamedayhq/gameday/internal/usecase"
)

type stubProvider struct {
	scoreboard fieldpath.Doc
}

func (s *stubProvider) Scoreboard(context.Context, sport.Strategy) (fieldpath.Doc, error) {
	return s.scoreboard, nil
}

func (s *stubProvider) TeamProfile(context.Context, sport.Strategy, string) (fieldpath.Doc, error) {
	return fieldpath.Doc{}, nil
}

func (s *stubProvider) TeamRoster(context.Context, sport.Strategy, string) (fieldpath.Doc, error) {
	return fieldpath.Doc{}, nil
}

func (s *stubProvider) TeamSchedule(context.Context, sport.Strategy, string) (fieldpath.Doc, error) {
	return fieldpath.Doc{}, nil
}

func (s *stubProvider) TeamStatistics(context.Context, sport.Strategy, string) (fieldpath.Doc, error) {
	return fieldpath.Doc{}, nil
}

func (s *stubProvider) Athlete(context.Context, sport.Strategy, string) (fieldpath.Doc, error) {
	return fieldpath.Doc{}, nil
}

func futureScoreboard(t *testing.T) fieldpath.Doc {
	t.Helper()
	tip := time.Now().UTC().Add(3 * time.Hour).Format("2006-01-02T15:04Z")
	return fieldpath.Doc{
		"events": []any{
			map[string]any{
				"id":   "401585601",
				"date": tip,
				"competitions": []any{
					map[string]any{
						"competitors": []any{
							map[string]any{
								"homeAway": "home",
								"team":     map[string]any{"id": "13", "abbreviation": "LAL", "displayName": "Lakers"},
								"records":  []any{map[string]any{"summary": "6-2"}},
							},
							map[string]any{
								"homeAway": "away",
								"team":     map[string]any{"id": "9", "abbreviation": "GSW", "displayName": "Warriors"},
								"records":  []any{map[string]any{"summary": "7-1"}},
							},
						},
					},
				},
			},
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	provider := &stubProvider{scoreboard: futureScoreboard(t)}
	logger := logging.NewNop()

	gameSvc := usecase.NewGameService(provider, logger)
	teamSvc := usecase.NewTeamService(provider, logger)
	playerSvc := usecase.NewPlayerService(provider, logger)
	profiles := memory.NewProfileRepository()
	challengeSvc := usecase.NewChallengeService(gameSvc, memory.NewVoteRepository(), profiles, logger)
	profileSvc := usecase.NewProfileService(profiles, memory.NewSettingsRepository())

	handler := NewHandler(gameSvc, teamSvc, playerSvc, challengeSvc, profileSvc, nil, nil)
	return NewRouter(handler, nil, []string{"*"}, "warm-secret")
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterListGames(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/nba/games", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"401585601"`) {
		t.Fatalf("missing game id in %s", rec.Body.String())
	}
}

func TestRouterUnknownSport(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/chess/games", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouterVoteLifecycle(t *testing.T) {
	router := newTestRouter(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/sports/nba/challenge/votes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(`{"choice":"home"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first vote status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec := post(`{"choice":"away"}`); rec.Code != http.StatusConflict {
		t.Fatalf("second vote status = %d, want 409", rec.Code)
	}
	if rec := post(`{"choice":"draw"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid choice status = %d, want 400", rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/nba/challenge", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("challenge status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"choice":"home"`) {
		t.Fatalf("missing stored vote in %s", rec.Body.String())
	}
}

func TestRouterProfileSettings(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/v1/profile/settings",
		strings.NewReader(`{"favoriteSport":"nba","favoriteTeam":"LAL","notifications":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("save settings status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/profile/settings", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"favoriteTeam":"LAL"`) {
		t.Fatalf("get settings = %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/v1/profile/settings",
		strings.NewReader(`{"favoriteSport":"cricket"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid sport status = %d, want 400", rec.Code)
	}
}

func TestRouterInternalWarmRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/warm", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated warm status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/warm", nil)
	req.Header.Set("X-Internal-Job-Token", "warm-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("warm status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouterProfileStats(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/profile/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"points":0`) {
		t.Fatalf("missing stats payload in %s", rec.Body.String())
	}
}
