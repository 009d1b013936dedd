package activity

import "strings"

// Type enumerates the outdoor activities the assistant can plan for.
type Type string

const (
	Vacation Type = "vacation"
	Hiking   Type = "hiking"
	Fishing  Type = "fishing"
	Picnic   Type = "picnic"
	Sports   Type = "sports"
	Camping  Type = "camping"
)

// All lists every activity in declared order. Keyword classification and
// clarification prompts both follow this order, so it is part of the
// contract, not a cosmetic detail.
var All = []Type{Vacation, Hiking, Fishing, Picnic, Sports, Camping}

var labels = map[Type]string{
	Vacation: "Vacation",
	Hiking:   "Hiking",
	Fishing:  "Fishing",
	Picnic:   "Picnic",
	Sports:   "Outdoor Sports",
	Camping:  "Camping",
}

var emojis = map[Type]string{
	Vacation: "🏖️",
	Hiking:   "🥾",
	Fishing:  "🎣",
	Picnic:   "🧺",
	Sports:   "⚽",
	Camping:  "⛺",
}

// keywords maps each activity to the substrings that identify it in free
// text. Matching is case-insensitive and first-match-wins over All.
var keywords = map[Type][]string{
	Vacation: {"vacation", "holiday", "beach", "trip", "getaway"},
	Hiking:   {"hike", "hiking", "trail", "trek", "mountain"},
	Fishing:  {"fish", "fishing", "angling", "lake", "river"},
	Picnic:   {"picnic", "bbq", "barbecue", "park", "outdoor meal"},
	Sports:   {"sport", "soccer", "football", "running", "cycling", "tennis"},
	Camping:  {"camp", "camping", "tent", "campfire", "outdoors"},
}

// Label returns the human readable name for the activity.
func (t Type) Label() string {
	if label, ok := labels[t]; ok {
		return label
	}
	return string(t)
}

// Emoji returns the display emoji used by chat clients.
func (t Type) Emoji() string {
	return emojis[t]
}

// Valid reports whether the value is a member of the closed enumeration.
func (t Type) Valid() bool {
	_, ok := labels[t]
	return ok
}

// Parse maps an exact activity identifier (as sent by quick-reply
// buttons) to its Type.
func Parse(raw string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// Classify scans free text for activity keywords. The first activity in
// declared order with any keyword contained in the input wins; ambiguous
// input silently resolves to that first match.
func Classify(text string) (Type, bool) {
	lowered := strings.ToLower(text)
	for _, t := range All {
		for _, kw := range keywords[t] {
			if strings.Contains(lowered, kw) {
				return t, true
			}
		}
	}
	return "", false
}
