package challenge

import "context"

// VoteRepository persists locked votes keyed by challenge identifier.
// Put is first-write-wins: a second write for the same challenge returns
// ErrAlreadyVoted and leaves the stored vote untouched.
type VoteRepository interface {
	Get(ctx context.Context, challengeID string) (Vote, bool, error)
	Put(ctx context.Context, vote Vote) error
}

// ProfileRepository stores the aggregate pick counters and tracks which
// challenges have already been folded in, so settlement stays idempotent.
type ProfileRepository interface {
	Stats(ctx context.Context) (ProfileStats, error)
	SaveStats(ctx context.Context, stats ProfileStats) error
	MarkSettled(ctx context.Context, challengeID string) (bool, error)
}

// Settings are free-form user preferences stored alongside votes.
type Settings struct {
	FavoriteSport string `json:"favoriteSport,omitempty"`
	FavoriteTeam  string `json:"favoriteTeam,omitempty"`
	Notifications bool   `json:"notifications"`
}

// SettingsRepository stores user settings; a malformed stored value reads
// back as the zero settings object.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}
