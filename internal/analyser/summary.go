package analyser

import (
	"sort"

	"tf-demo-insights/internal/replay"
)

// GameSummary is the immutable output of one analysed demo. Its JSON
// shape is the stored/transmitted contract.
type GameSummary struct {
	LocalUserID     replay.UserID    `json:"local_user_id"`
	Highlights      []HighlightEvent `json:"highlights"`
	RedTeamScore    uint32           `json:"red_team_score"`
	BlueTeamScore   uint32           `json:"blue_team_score"`
	IntervalPerTick float32          `json:"interval_per_tick"`
	Players         []PlayerSummary  `json:"players"`
}

// PlayerSummary is the final per-player snapshot. Classes holds zero-based
// class slots the player actually appeared on, most-played first.
type PlayerSummary struct {
	Name       string        `json:"name"`
	SteamID    uint64        `json:"steam_id"`
	UserID     replay.UserID `json:"user_id"`
	Team       Team          `json:"team"`
	Classes    []int         `json:"classes"`
	Scoreboard Scoreboard    `json:"scoreboard"`
}

// Summarize assembles the final summary. The analyser must not be fed
// further stream units afterwards.
func (a *MatchAnalyser) Summarize() GameSummary {
	summary := GameSummary{
		Highlights:      a.highlights,
		RedTeamScore:    a.redScore,
		BlueTeamScore:   a.blueScore,
		IntervalPerTick: a.intervalPerTick,
		Players:         make([]PlayerSummary, 0, len(a.players)),
	}
	if summary.Highlights == nil {
		summary.Highlights = []HighlightEvent{}
	}

	// A missing local player (e.g. an STV demo whose slot never mapped)
	// degrades to the zero id rather than failing.
	if local, ok := a.localUser(); ok {
		summary.LocalUserID = local
	}

	for _, player := range a.players {
		summary.Players = append(summary.Players, summarizePlayer(player))
	}
	// Map iteration order is random; fix the player list by user id.
	sort.Slice(summary.Players, func(i, j int) bool {
		return summary.Players[i].UserID < summary.Players[j].UserID
	})

	return summary
}

func summarizePlayer(p *playerState) PlayerSummary {
	type classSpawns struct {
		slot   int
		spawns uint32
	}
	played := make([]classSpawns, 0, classCount)
	for slot, spawns := range p.spawnsOnClass {
		if spawns > 0 {
			played = append(played, classSpawns{slot: slot, spawns: spawns})
		}
	}
	// Descending by appearances; the stable sort keeps enumeration order
	// for equal counts.
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].spawns > played[j].spawns
	})

	classes := make([]int, len(played))
	for i, c := range played {
		classes[i] = c.slot
	}

	return PlayerSummary{
		Name:       p.name,
		SteamID:    p.steamID,
		UserID:     p.userID,
		Team:       p.team,
		Classes:    classes,
		Scoreboard: p.scoreboard,
	}
}
