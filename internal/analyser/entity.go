package analyser

import (
	"math"
	"strconv"

	"github.com/rs/zerolog/log"

	"tf-demo-insights/internal/replay"
)

// entityKind is the closed dispatch tag for server classes the analyser
// reads. Class names are resolved to a kind once, when the data tables
// arrive, so per-entity dispatch is a slice index instead of a string
// comparison.
type entityKind uint8

const (
	entityOther entityKind = iota
	entityPlayer
	entityPlayerResource
	entityTeam
	entityMedigun
)

func entityKindOf(className string) entityKind {
	switch className {
	case "CTFPlayer":
		return entityPlayer
	case "CTFPlayerResource":
		return entityPlayerResource
	case "CTFTeam":
		return entityTeam
	case "CWeaponMedigun":
		return entityMedigun
	default:
		return entityOther
	}
}

func (a *MatchAnalyser) handleEntity(entity *replay.PacketEntity, tick replay.Tick) {
	kind := entityOther
	if int(entity.ServerClass) < len(a.classKinds) {
		kind = a.classKinds[entity.ServerClass]
	}

	switch kind {
	case entityPlayer:
		a.handlePlayerEntity(entity, tick)
	case entityPlayerResource:
		a.handlePlayerResource(entity)
	case entityTeam:
		a.handleTeamEntity(entity)
	case entityMedigun:
		a.handleMedigunEntity(entity)
	}
}

// playerPropHandlers is the static (table, field) dispatch table for
// CTFPlayer entities. Identifiers outside the table are protocol fields
// this analyser does not model, and are skipped on purpose.
var playerPropHandlers = map[replay.PropIdentifier]func(*playerState, replay.PropValue, replay.Tick){
	{Table: "DT_BasePlayer", Name: "m_lifeState"}: func(p *playerState, v replay.PropValue, _ replay.Tick) {
		p.lifeState = lifeStateFromCode(v.Int())
	},
	{Table: "DT_BasePlayer", Name: "m_fFlags"}: func(p *playerState, v replay.PropValue, tick replay.Tick) {
		p.updateMovementFlags(uint32(v.Int()), tick)
	},
	{Table: "DT_TFPlayerShared", Name: "m_nPlayerCond"}: func(p *playerState, v replay.PropValue, _ replay.Tick) {
		p.cond = uint32(v.Int())
	},
	{Table: "DT_TFPlayerShared", Name: "m_nPlayerCondEx"}: func(p *playerState, v replay.PropValue, _ replay.Tick) {
		p.condEx = uint32(v.Int())
	},
	{Table: "DT_TFPlayerShared", Name: "m_nPlayerCondEx2"}: func(p *playerState, v replay.PropValue, _ replay.Tick) {
		p.condEx2 = uint32(v.Int())
	},
	{Table: "DT_TFPlayerShared", Name: "m_nPlayerCondEx3"}: func(p *playerState, v replay.PropValue, _ replay.Tick) {
		p.condEx3 = uint32(v.Int())
	},
	{Table: "DT_TFPlayerConditionListExclusive", Name: "_condition_bits"}: func(p *playerState, v replay.PropValue, _ replay.Tick) {
		p.conditionBits = uint32(v.Int())
	},
}

// scoreboardFields maps scoring-data props to their counter slot. All of
// them share the monotonic max-merge rule.
var scoreboardFields = map[string]func(*Scoreboard) *uint32{
	"m_iCaptures":           func(s *Scoreboard) *uint32 { return &s.Captures },
	"m_iDefenses":           func(s *Scoreboard) *uint32 { return &s.Defenses },
	"m_iKills":              func(s *Scoreboard) *uint32 { return &s.Kills },
	"m_iDeaths":             func(s *Scoreboard) *uint32 { return &s.Deaths },
	"m_iDominations":        func(s *Scoreboard) *uint32 { return &s.Dominations },
	"m_iRevenge":            func(s *Scoreboard) *uint32 { return &s.Revenges },
	"m_iBuildingsDestroyed": func(s *Scoreboard) *uint32 { return &s.BuildingsDestroyed },
	"m_iHeadshots":          func(s *Scoreboard) *uint32 { return &s.Headshots },
	"m_iBackstabs":          func(s *Scoreboard) *uint32 { return &s.Backstabs },
	"m_iHealPoints":         func(s *Scoreboard) *uint32 { return &s.Healing },
	"m_iInvulns":            func(s *Scoreboard) *uint32 { return &s.Ubercharges },
	"m_iTeleports":          func(s *Scoreboard) *uint32 { return &s.Teleports },
	"m_iDamageDone":         func(s *Scoreboard) *uint32 { return &s.DamageDealt },
	"m_iKillAssists":        func(s *Scoreboard) *uint32 { return &s.Assists },
	"m_iBonusPoints":        func(s *Scoreboard) *uint32 { return &s.BonusPoints },
	"m_iPoints":             func(s *Scoreboard) *uint32 { return &s.Points },
}

const scoringDataTable = "DT_TFPlayerScoringDataExclusive"

func (a *MatchAnalyser) handlePlayerEntity(entity *replay.PacketEntity, tick replay.Tick) {
	player := a.playerOfEntity(entity.ID)
	if player == nil {
		// The userinfo table has not caught up with this entity yet.
		// Recoverable; the next full update will land.
		log.Debug().
			Uint32("entity", uint32(entity.ID)).
			Msg("player entity update before identity is known")
		return
	}

	for _, prop := range entity.Props {
		if handler, ok := playerPropHandlers[prop.Ident]; ok {
			handler(player, prop.Value, tick)
			continue
		}
		if prop.Ident.Table == scoringDataTable {
			if slot, ok := scoreboardFields[prop.Ident.Name]; ok {
				maxUpdate(slot(&player.scoreboard), uint32(prop.Value.Int()))
			}
		}
	}
}

// handlePlayerResource reads the array-of-structs resource entity. Field
// names are the entity index of the player each value belongs to.
func (a *MatchAnalyser) handlePlayerResource(entity *replay.PacketEntity) {
	for _, prop := range entity.Props {
		index, err := strconv.ParseUint(prop.Ident.Name, 10, 32)
		if err != nil {
			continue
		}
		player := a.playerOfEntity(replay.EntityID(index))
		if player == nil {
			continue
		}
		switch prop.Ident.Table {
		case "m_iTeam":
			player.team = teamFromCode(prop.Value.Int())
		case "m_iPlayerClass":
			player.class = classFromCode(prop.Value.Int())
		case "m_iDamage":
			maxUpdate(&player.scoreboard.DamageDealt, uint32(prop.Value.Int()))
		}
	}
}

// handleTeamEntity learns which entity represents each team and applies
// score updates to whichever side the entity was last known to be.
func (a *MatchAnalyser) handleTeamEntity(entity *replay.PacketEntity) {
	for _, prop := range entity.Props {
		if prop.Ident.Table != "DT_Team" {
			continue
		}
		switch prop.Ident.Name {
		case "m_iTeamNum":
			switch teamFromCode(prop.Value.Int()) {
			case TeamRed:
				a.redTeamEntity = entity.ID
			case TeamBlue:
				a.blueTeamEntity = entity.ID
			}
		case "m_iScore":
			score := uint32(prop.Value.Int())
			switch entity.ID {
			case a.redTeamEntity:
				a.redScore = score
			case a.blueTeamEntity:
				a.blueScore = score
			}
		}
	}
}

// handleMedigunEntity binds mediguns to their first seen owner and routes
// charge updates to that player. The owner handle only carries the entity
// index in its low byte.
func (a *MatchAnalyser) handleMedigunEntity(entity *replay.PacketEntity) {
	for _, prop := range entity.Props {
		switch prop.Ident {
		case replay.PropIdentifier{Table: "DT_BaseCombatWeapon", Name: "m_hOwner"}:
			if _, bound := a.medigunOwners[entity.ID]; !bound {
				a.medigunOwners[entity.ID] = replay.EntityID(uint8(prop.Value.Int()))
			}
		case replay.PropIdentifier{Table: "DT_TFWeaponMedigunDataNonLocal", Name: "m_flChargeLevel"},
			replay.PropIdentifier{Table: "DT_LocalTFWeaponMedigunData", Name: "m_flChargeLevel"}:
			owner, bound := a.medigunOwners[entity.ID]
			if !bound {
				continue
			}
			if player := a.playerOfEntity(owner); player != nil {
				player.charge = uint8(math.Round(prop.Value.Float() * 100))
			}
		}
	}
}
