package player

// RecentGame is one game-log entry, kept verbatim from upstream: the raw stat
// line differs per sport and the UI renders it as-is.
type RecentGame struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Result   string `json:"result,omitempty"`
	Stats    any    `json:"stats,omitempty"`
}

// Detail is one player in full. Stats keys depend on the sport's stat-field
// table; absent values are simply missing from the map.
type Detail struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Jersey      string            `json:"jersey,omitempty"`
	Position    string            `json:"position,omitempty"`
	TeamName    string            `json:"teamName,omitempty"`
	HeadshotURL string            `json:"headshot,omitempty"`
	Age         int               `json:"age,omitempty"`
	Experience  int               `json:"experience,omitempty"`
	Stats       map[string]string `json:"stats"`
	RecentGames []RecentGame      `json:"recentGames"`
}
