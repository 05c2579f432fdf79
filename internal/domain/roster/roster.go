// Package roster contains the canonical player-round row model and the fixed
// lookup tables used to normalize raw Cartola FC snapshot data.
package roster

import "strings"

// Position is the canonical position category stored in the consolidated table.
type Position string

// Canonical position vocabulary. Raw files carry either single-digit ids or
// 3-letter codes; anything else maps to PositionUnknown, never to a null.
const (
	PositionGoalkeeper Position = "gol"
	PositionFullback   Position = "lat"
	PositionDefender   Position = "zag"
	PositionMidfielder Position = "mei"
	PositionForward    Position = "ata"
	PositionCoach      Position = "tec"
	PositionUnknown    Position = "desconhecida"
)

// Status is the canonical player status label.
type Status string

// Canonical status vocabulary, from the upstream numeric status ids.
const (
	StatusDoubtful  Status = "Dúvida"
	StatusSuspended Status = "Suspenso"
	StatusInjured   Status = "Contundido"
	StatusNull      Status = "Nulo"
	StatusProbable  Status = "Provável"
	StatusUnknown   Status = "Desconhecido"
)

var positionCodes = map[string]Position{
	"1": PositionGoalkeeper, "gol": PositionGoalkeeper,
	"2": PositionFullback, "lat": PositionFullback,
	"3": PositionDefender, "zag": PositionDefender,
	"4": PositionMidfielder, "mei": PositionMidfielder,
	"5": PositionForward, "ata": PositionForward,
	"6": PositionCoach, "tec": PositionCoach,
}

var statusLabels = map[int]Status{
	2: StatusDoubtful,
	3: StatusSuspended,
	5: StatusInjured,
	6: StatusNull,
	7: StatusProbable,
}

// clubNameRepairs fixes known mojibake in club display names. These are
// literal find/replace pairs, not a general re-decoding step: the corrupted
// forms come from UTF-8 club names read as Latin-1 somewhere upstream.
var clubNameRepairs = [][2]string{
	{"AmÃ©rica-MG", "América-MG"},
	{"AtlÃ©tico-MG", "Atlético-MG"},
	{"AtlÃ©tico-GO", "Atlético-GO"},
	{"GrÃªmio", "Grêmio"},
	{"SÃ£o Paulo", "São Paulo"},
	{"AvaÃ­", "Avaí"},
	{"CuiabÃ¡", "Cuiabá"},
	{"CriciÃºma", "Criciúma"},
	{"GoiÃ¡s", "Goiás"},
	{"VitÃ³ria", "Vitória"},
	{"CearÃ¡", "Ceará"},
}

// clubAbbreviations expands 3-letter club codes found in some seasons into the
// display names used everywhere else. Unmapped values pass through unchanged.
var clubAbbreviations = map[string]string{
	"FLA": "Flamengo",
	"PAL": "Palmeiras",
	"COR": "Corinthians",
	"SAO": "São Paulo",
	"SAN": "Santos",
	"GRE": "Grêmio",
	"INT": "Internacional",
	"CAM": "Atlético-MG",
	"CAP": "Athletico-PR",
	"ACG": "Atlético-GO",
	"CRU": "Cruzeiro",
	"FLU": "Fluminense",
	"BOT": "Botafogo",
	"VAS": "Vasco",
	"BAH": "Bahia",
	"VIT": "Vitória",
	"SPT": "Sport",
	"CFC": "Coritiba",
	"GOI": "Goiás",
	"FOR": "Fortaleza",
	"CEA": "Ceará",
	"AME": "América-MG",
	"AVA": "Avaí",
	"CHA": "Chapecoense",
	"JUV": "Juventude",
	"CUI": "Cuiabá",
	"BGT": "Red Bull Bragantino",
}

// MapPosition maps a raw position code (numeric id or 3-letter, any case) to
// its canonical category. Unknown codes map to PositionUnknown.
func MapPosition(code string) Position {
	if p, ok := positionCodes[strings.ToLower(strings.TrimSpace(code))]; ok {
		return p
	}
	return PositionUnknown
}

// MapStatus maps a raw numeric status id to its canonical label.
func MapStatus(id int) Status {
	if s, ok := statusLabels[id]; ok {
		return s
	}
	return StatusUnknown
}

// RepairClubName applies the fixed mojibake repair table to a club name.
func RepairClubName(name string) string {
	for _, pair := range clubNameRepairs {
		name = strings.ReplaceAll(name, pair[0], pair[1])
	}
	return name
}

// ExpandClubAbbreviation expands a known 3-letter club code; other values pass
// through unchanged.
func ExpandClubAbbreviation(name string) string {
	if full, ok := clubAbbreviations[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return full
	}
	return name
}

// Positions returns the closed canonical position vocabulary.
func Positions() []Position {
	return []Position{
		PositionGoalkeeper,
		PositionFullback,
		PositionDefender,
		PositionMidfielder,
		PositionForward,
		PositionCoach,
		PositionUnknown,
	}
}

// LinePositions returns the positions analyzed for score outliers. Goalkeepers
// and coaches score on different scales and are excluded.
func LinePositions() []Position {
	return []Position{
		PositionFullback,
		PositionDefender,
		PositionMidfielder,
		PositionForward,
	}
}

// ValidPosition reports whether v belongs to the canonical vocabulary.
func ValidPosition(v string) bool {
	for _, p := range Positions() {
		if string(p) == v {
			return true
		}
	}
	return false
}
