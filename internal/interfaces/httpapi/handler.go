package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/gamedayhq/gameday/external/webhook"
	"github.com/gamedayhq/gameday/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	gameService      *usecase.GameService
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	challengeService *usecase.ChallengeService
	profileService   *usecase.ProfileService
	publisher        *webhook.Publisher
	logger           *slog.Logger
}

func NewHandler(
	gameService *usecase.GameService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	challengeService *usecase.ChallengeService,
	profileService *usecase.ProfileService,
	publisher *webhook.Publisher,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		gameService:      gameService,
		teamService:      teamService,
		playerService:    playerService,
		challengeService: challengeService,
		profileService:   profileService,
		publisher:        publisher,
		logger:           logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListGamesToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesToday")
	defer span.End()

	sportKey := r.PathValue("sport")
	games, err := h.gameService.GamesToday(ctx, sportKey)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "sport", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, games)
}

func (h *Handler) GetPickToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPickToday")
	defer span.End()

	sportKey := r.PathValue("sport")
	pick, err := h.gameService.PickToday(ctx, sportKey)
	if err != nil {
		h.logger.WarnContext(ctx, "get pick failed", "sport", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pick)
}

func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	sportKey := r.PathValue("sport")
	teamID := r.PathValue("teamID")
	detail, err := h.teamService.GetTeamDetail(ctx, sportKey, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team detail failed", "sport", sportKey, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) GetPlayerDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDetail")
	defer span.End()

	sportKey := r.PathValue("sport")
	playerID := r.PathValue("playerID")
	detail, err := h.playerService.GetPlayerDetail(ctx, sportKey, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player detail failed", "sport", sportKey, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) GetChallengeToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChallengeToday")
	defer span.End()

	sportKey := r.PathValue("sport")
	view, err := h.challengeService.ChallengeToday(ctx, sportKey)
	if err != nil {
		h.logger.WarnContext(ctx, "get challenge failed", "sport", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

type submitVoteRequest struct {
	Choice string `json:"choice"`
}

func (h *Handler) SubmitChallengeVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitChallengeVote")
	defer span.End()

	var req submitVoteRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sportKey := r.PathValue("sport")
	vote, err := h.challengeService.SubmitVote(ctx, sportKey, req.Choice)
	if err != nil {
		h.logger.WarnContext(ctx, "submit vote failed", "sport", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, vote)
}

func (h *Handler) GetProfileStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfileStats")
	defer span.End()

	stats, err := h.profileService.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get profile stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetProfileSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfileSettings")
	defer span.End()

	settings, err := h.profileService.Settings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get profile settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settings)
}

func (h *Handler) SaveProfileSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveProfileSettings")
	defer span.End()

	var input usecase.SettingsInput
	if err := h.decodeBody(r, &input); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.profileService.SaveSettings(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "save profile settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settings)
}

// RunWarm refreshes every sport's scoreboard and, when a webhook target is
// configured, announces each sport's top pick to subscribers.
func (h *Handler) RunWarm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarm")
	defer span.End()

	results, err := h.gameService.WarmAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "warm pass failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if h.publisher != nil && h.publisher.Enabled() {
		for _, row := range results {
			if row.Error != "" || row.Games == 0 {
				continue
			}
			pick, pickErr := h.gameService.PickToday(ctx, string(row.Sport))
			if pickErr != nil {
				continue
			}
			if pubErr := h.publisher.Publish(ctx, "daily_pick", map[string]any{
				"sport": row.Sport,
				"game":  pick,
			}); pubErr != nil {
				h.logger.WarnContext(ctx, "daily pick webhook failed", "sport", row.Sport, "error", pubErr)
			}
		}
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}

func (h *Handler) decodeBody(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
