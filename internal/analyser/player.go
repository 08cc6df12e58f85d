package analyser

import (
	json "github.com/goccy/go-json"

	"tf-demo-insights/internal/replay"
)

// Team is the small team code players and entities carry.
type Team uint8

const (
	TeamNone Team = iota
	TeamSpectator
	TeamRed
	TeamBlue
)

var teamNames = [...]string{"none", "spectator", "red", "blue"}

func (t Team) String() string {
	if int(t) < len(teamNames) {
		return teamNames[t]
	}
	return "none"
}

// MarshalJSON writes the lowercase team name; unknown codes degrade to
// "none" rather than erroring.
func (t Team) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range teamNames {
		if name == s {
			*t = Team(i)
			return nil
		}
	}
	*t = TeamNone
	return nil
}

// teamFromCode clamps an arbitrary decoded integer to a valid Team.
func teamFromCode(code int64) Team {
	if code < 0 || code > int64(TeamBlue) {
		return TeamNone
	}
	return Team(code)
}

// Class is the 1-based player job code; ClassOther marks an unpicked class.
type Class uint8

const (
	ClassOther Class = iota
	ClassScout
	ClassSniper
	ClassSoldier
	ClassDemoman
	ClassMedic
	ClassHeavy
	ClassPyro
	ClassSpy
	ClassEngineer
)

// classCount is the number of real classes (excluding ClassOther).
const classCount = 9

func classFromCode(code int64) Class {
	if code < 0 || code > int64(ClassEngineer) {
		return ClassOther
	}
	return Class(code)
}

// LifeState tracks the player's alive/dead cycle.
type LifeState uint8

const (
	LifeAlive LifeState = iota
	LifeDying
	LifeDead
	LifeRespawnable
)

func lifeStateFromCode(code int64) LifeState {
	if code < 0 || code > int64(LifeRespawnable) {
		return LifeAlive
	}
	return LifeState(code)
}

// Scoreboard is the per-player monotonic counter set. The server resends
// full totals periodically and fields can arrive out of order, so every
// update goes through maxUpdate and a stored value never decreases.
type Scoreboard struct {
	Captures           uint32 `json:"captures"`
	Defenses           uint32 `json:"defenses"`
	Kills              uint32 `json:"kills"`
	Deaths             uint32 `json:"deaths"`
	Dominations        uint32 `json:"dominations"`
	Revenges           uint32 `json:"revenges"`
	BuildingsDestroyed uint32 `json:"buildings_destroyed"`
	Headshots          uint32 `json:"headshots"`
	Backstabs          uint32 `json:"backstabs"`
	Healing            uint32 `json:"healing"`
	Ubercharges        uint32 `json:"ubercharges"`
	Teleports          uint32 `json:"teleports"`
	DamageDealt        uint32 `json:"damage_dealt"`
	Assists            uint32 `json:"assists"`
	BonusPoints        uint32 `json:"bonus_points"`
	Points             uint32 `json:"points"`
}

// maxUpdate applies one observed total to a counter, keeping the maximum.
func maxUpdate(slot *uint32, observed uint32) {
	if observed > *slot {
		*slot = observed
	}
}

// playerState is the evolving record for one participant. Entries are
// created on first sighting in the userinfo table and never removed, so a
// player who leaves mid-game still shows up in the final summary.
type playerState struct {
	name    string
	steamID uint64
	userID  replay.UserID

	team      Team
	class     Class
	lifeState LifeState
	charge    uint8

	scoreboard Scoreboard

	cond    uint32
	condEx  uint32
	condEx2 uint32
	condEx3 uint32

	// Legacy mirror of cond. The engine only ever stores the critboosted
	// condition (bit 11) here; everything else lands in cond.
	conditionBits uint32

	spawnsOnClass [classCount]uint32

	airborne      bool
	airborneSince replay.Tick
}

// hasCondition reports whether one slot of the 128-bit status vector is
// set, honouring the split across the four backing fields and the legacy
// critboosted mirror.
func (p *playerState) hasCondition(c Condition) bool {
	i := uint32(c)
	switch {
	case i < 32:
		return (p.cond|p.conditionBits)&(1<<i) != 0
	case i < 64:
		return p.condEx&(1<<(i-32)) != 0
	case i < 96:
		return p.condEx2&(1<<(i-64)) != 0
	case i < condCount:
		return p.condEx3&(1<<(i-96)) != 0
	default:
		return false
	}
}

// updateMovementFlags tracks airborne rising/falling edges for the
// airtime-based airshot rule.
func (p *playerState) updateMovementFlags(flags uint32, tick replay.Tick) {
	air := airborne(flags)
	if air && !p.airborne {
		p.airborneSince = tick
	}
	p.airborne = air
}

// recordSpawn bumps the appearance counter for the class the player
// spawned as. Class code 0 (no class picked) is not counted.
func (p *playerState) recordSpawn(classCode uint16) {
	if classCode > 0 && classCode <= classCount {
		p.spawnsOnClass[classCode-1]++
	}
}
