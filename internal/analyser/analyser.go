// Package analyser turns a decoded demo message stream into a match
// summary: per-player scoreboards and an ordered log of notable moments
// (kills, airshots, captures, round transitions, chat).
//
// The analyser is strictly single-threaded. It is driven by one ordered
// call sequence from the parser and mutates only its own state; all
// highlight ordering is arrival order.
package analyser

import (
	"github.com/rs/zerolog/log"

	"tf-demo-insights/internal/replay"
)

// AirshotRule selects which of the two lineage rules classifies airshots.
// The rules are not equivalent (the condition bit can outlive a landing),
// so exactly one applies per run.
type AirshotRule string

const (
	// AirshotByCondition checks the blast-jumping condition bit at the
	// moment of the hit or death. Default.
	AirshotByCondition AirshotRule = "condition"
	// AirshotByAirtime checks measured continuous air time against a
	// threshold, using movement-flag edges and the tick interval.
	AirshotByAirtime AirshotRule = "airtime"
)

// DefaultAirtimeSeconds is the continuous-airtime threshold used by
// AirshotByAirtime when no override is configured.
const DefaultAirtimeSeconds = 1.0

// Options tune highlight classification.
type Options struct {
	AirshotRule    AirshotRule
	AirtimeSeconds float64
}

func (o *Options) normalize() {
	if o.AirshotRule == "" {
		o.AirshotRule = AirshotByCondition
	}
	if o.AirtimeSeconds <= 0 {
		o.AirtimeSeconds = DefaultAirtimeSeconds
	}
}

// MatchAnalyser consumes the decoded stream and accumulates match state.
// Create one per demo; after Summarize it must not be fed again.
type MatchAnalyser struct {
	opts Options

	highlights      []HighlightEvent
	intervalPerTick float32
	isSTV           bool

	players    map[replay.UserID]*playerState
	classKinds []entityKind

	// Medigun entity -> entity handle of its first seen owner. The owner
	// binding is never overwritten once set.
	medigunOwners map[replay.EntityID]replay.EntityID

	redTeamEntity  replay.EntityID
	blueTeamEntity replay.EntityID
	redScore       uint32
	blueScore      uint32

	localEntity replay.EntityID

	// Live entity handle -> user identity. Handles are reused across
	// connections, so this is the only place identity may be resolved
	// through; the mapping is overwritten on every userinfo update.
	playerEntities map[replay.EntityID]replay.UserID
}

// New builds an analyser with the given options.
func New(opts Options) *MatchAnalyser {
	opts.normalize()
	return &MatchAnalyser{
		opts:           opts,
		players:        make(map[replay.UserID]*playerState),
		medigunOwners:  make(map[replay.EntityID]replay.EntityID),
		playerEntities: make(map[replay.EntityID]replay.UserID),
	}
}

// WantsMessage is the declared-interest filter: the driver may skip
// decoding any message type this returns false for.
func (a *MatchAnalyser) WantsMessage(t replay.MessageType) bool {
	switch t {
	case replay.MsgPacketEntities, replay.MsgGameEvent, replay.MsgUserMessage,
		replay.MsgSetPause, replay.MsgServerInfo:
		return true
	}
	return false
}

// HandleHeader records the capture perspective. STV recordings leave the
// server name empty; POV recordings carry one.
func (a *MatchAnalyser) HandleHeader(h replay.Header) {
	a.isSTV = h.ServerName == ""
}

// HandleDataTables stores the server-class list, pre-resolved to the
// closed set of entity kinds the property interpreter dispatches on.
func (a *MatchAnalyser) HandleDataTables(classes []replay.ServerClass) {
	a.classKinds = make([]entityKind, len(classes))
	for i, c := range classes {
		a.classKinds[i] = entityKindOf(c.Name)
	}
}

// HandleStringEntry consumes string-table rows. Only the userinfo table
// matters; everything else is ignored.
func (a *MatchAnalyser) HandleStringEntry(table string, index int, entry replay.StringTableEntry) {
	if table != replay.UserInfoTable {
		return
	}
	info := replay.ParseUserInfo(index, entry.ExtraData)
	if info == nil {
		// Empty payload: the slot's connection went away. The entity
		// mapping stays until a new connect overwrites it; player state
		// is kept for the final summary.
		return
	}

	// Handles are recycled between connections, so this insert must win
	// over whatever the handle pointed at before.
	a.playerEntities[info.EntityID] = info.UserID

	player := a.player(info.UserID)
	player.name = info.Name
	player.steamID = info.SteamID
}

// HandleMessage routes one decoded message. Messages must arrive in
// stream order; the highlight log mirrors that order exactly.
func (a *MatchAnalyser) HandleMessage(msg replay.Message, tick replay.Tick) {
	switch m := msg.(type) {
	case replay.PacketEntitiesMessage:
		for i := range m.Entities {
			a.handleEntity(&m.Entities[i], tick)
		}
	case replay.GameEventMessage:
		a.handleGameEvent(m.Event, tick)
	case replay.SayTextMessage:
		a.handleChat(m, tick)
	case replay.SetPauseMessage:
		if m.Paused {
			a.addHighlight(PauseHighlight{}, tick)
		} else {
			a.addHighlight(UnpauseHighlight{}, tick)
		}
	case replay.ServerInfoMessage:
		a.localEntity = replay.EntityID(m.PlayerSlot) + 1
		a.intervalPerTick = m.IntervalPerTick
	}
}

// addHighlight appends to the log in arrival order.
func (a *MatchAnalyser) addHighlight(h Highlight, tick replay.Tick) {
	a.highlights = append(a.highlights, HighlightEvent{Tick: tick, Event: h})
}

// player returns the state record for a user id, creating it on first
// sighting. Records are never removed mid-stream.
func (a *MatchAnalyser) player(id replay.UserID) *playerState {
	p, ok := a.players[id]
	if !ok {
		p = &playerState{userID: id}
		a.players[id] = p
	}
	return p
}

// playerOfEntity resolves an entity handle through the live mapping.
func (a *MatchAnalyser) playerOfEntity(id replay.EntityID) *playerState {
	userID, ok := a.playerEntities[id]
	if !ok {
		return nil
	}
	return a.players[userID]
}

// localUser resolves the recording player's identity, if known.
func (a *MatchAnalyser) localUser() (replay.UserID, bool) {
	id, ok := a.playerEntities[a.localEntity]
	return id, ok
}

// isAirshot applies the configured airshot rule to a victim at a tick.
func (a *MatchAnalyser) isAirshot(victim *playerState, tick replay.Tick) bool {
	if a.opts.AirshotRule == AirshotByAirtime {
		if !victim.airborne || a.intervalPerTick <= 0 {
			return false
		}
		airtime := float64(tick-victim.airborneSince) * float64(a.intervalPerTick)
		return airtime >= a.opts.AirtimeSeconds
	}
	return victim.hasCondition(CondBlastJumping)
}

func (a *MatchAnalyser) handleChat(m replay.SayTextMessage, tick replay.Tick) {
	sender, ok := a.playerEntities[m.Client]
	if !ok {
		log.Debug().Uint32("entity", uint32(m.Client)).Msg("chat from unknown entity")
	}
	a.addHighlight(ChatMessageHighlight{Sender: sender, Text: m.Text}, tick)
}
