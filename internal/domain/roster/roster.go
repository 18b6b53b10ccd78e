package roster

import (
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
)

// StatusActive is the healthy default when upstream omits a player's status.
const StatusActive = "Active"

// Entry is one player as seen from a team roster.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Jersey     string `json:"jersey,omitempty"`
	Experience int    `json:"experience"`
	Starter    bool   `json:"starter"`
	Status     string `json:"status"`
}

// Normalize reconciles the two upstream roster encodings into a flat list.
// The payload is either a flat list of player records, or a list of position
// groups with an embedded player list under "items" or "athletes". The first
// top-level element decides: a record carrying both an identifier and a
// display name directly is a player, anything else is probed as a group. Any
// other shape yields an empty roster.
func Normalize(payload []any) []Entry {
	if len(payload) == 0 {
		return nil
	}
	first, ok := payload[0].(map[string]any)
	if !ok {
		return nil
	}

	if isPlayerRecord(first) {
		entries := make([]Entry, 0, len(payload))
		for _, raw := range payload {
			player, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			entries = append(entries, normalizeEntry(player, ""))
		}
		return entries
	}

	if groupItems(first) == nil {
		return nil
	}

	var entries []Entry
	for _, raw := range payload {
		group, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		groupPosition := groupPositionLabel(group)
		for _, itemRaw := range groupItems(group) {
			player, ok := itemRaw.(map[string]any)
			if !ok {
				continue
			}
			entries = append(entries, normalizeEntry(player, groupPosition))
		}
	}
	return entries
}

func isPlayerRecord(record fieldpath.Doc) bool {
	_, hasID := fieldpath.First(record, []any{"id"}, []any{"uid"})
	_, hasName := fieldpath.First(record, []any{"displayName"}, []any{"fullName"})
	return hasID && hasName
}

func groupItems(group fieldpath.Doc) []any {
	if items := fieldpath.Slice(group, "items"); items != nil {
		return items
	}
	return fieldpath.Slice(group, "athletes")
}

func groupPositionLabel(group fieldpath.Doc) string {
	label, _ := fieldpath.First(group,
		[]any{"position", "abbreviation"},
		[]any{"position", "displayName"},
		[]any{"position"},
	)
	return fieldpath.CoerceString(label, "")
}

func normalizeEntry(player fieldpath.Doc, groupPosition string) Entry {
	name, _ := fieldpath.First(player,
		[]any{"displayName"},
		[]any{"fullName"},
		[]any{"shortName"},
	)

	position, _ := fieldpath.First(player,
		[]any{"position", "abbreviation"},
		[]any{"position", "displayName"},
		[]any{"position"},
	)
	positionCode := fieldpath.CoerceString(position, "")
	if positionCode == "" {
		positionCode = groupPosition
	}

	experience, _ := fieldpath.First(player,
		[]any{"experience", "years"},
		[]any{"experience"},
	)
	years := 0
	if f, ok := fieldpath.CoerceFloat(experience); ok {
		years = int(f)
	}

	status, _ := fieldpath.First(player,
		[]any{"injuries", 0, "status"},
		[]any{"status", "type", "name"},
		[]any{"status", "name"},
		[]any{"status"},
	)

	id, _ := fieldpath.First(player, []any{"id"}, []any{"uid"})

	return Entry{
		ID:         fieldpath.CoerceString(id, ""),
		Name:       fieldpath.CoerceString(name, ""),
		Position:   positionCode,
		Jersey:     fieldpath.String(player, "", "jersey"),
		Experience: years,
		Starter:    fieldpath.Bool(player, false, "starter"),
		Status:     fieldpath.CoerceString(status, StatusActive),
	}
}
