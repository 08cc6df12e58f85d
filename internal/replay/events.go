package replay

// NoAssister is the sentinel the death event carries when nobody assisted
// the kill (the wire value is -1 in a 16-bit field).
const NoAssister uint16 = 0xFFFF

// GameEvent is one decoded discrete game event.
type GameEvent interface {
	EventName() string
}

// PlayerDeathEvent fires when a player dies. UserID is the victim.
type PlayerDeathEvent struct {
	UserID               uint16 `json:"userid"`
	Attacker             uint16 `json:"attacker"`
	Assister             uint16 `json:"assister"`
	Weapon               string `json:"weapon"`
	DamageBits           uint32 `json:"damagebits"`
	CustomKill           uint16 `json:"customkill"`
	PlayerPenetrateCount uint16 `json:"playerpenetratecount"`
	KillStreakTotal      uint16 `json:"kill_streak_total"`
}

func (PlayerDeathEvent) EventName() string { return "player_death" }

// PlayerHurtEvent fires on every damage instance. WeaponID is the weapon
// class code, not an item definition index.
type PlayerHurtEvent struct {
	UserID       uint16 `json:"userid"`
	Attacker     uint16 `json:"attacker"`
	Health       uint16 `json:"health"`
	DamageAmount uint16 `json:"damageamount"`
	WeaponID     uint16 `json:"weaponid"`
}

func (PlayerHurtEvent) EventName() string { return "player_hurt" }

// PlayerSpawnEvent fires when a player spawns. Class is the 1-based job
// code; 0 means the player spawned without a class picked.
type PlayerSpawnEvent struct {
	UserID uint16 `json:"userid"`
	Team   uint16 `json:"team"`
	Class  uint16 `json:"class"`
}

func (PlayerSpawnEvent) EventName() string { return "player_spawn" }

// CrossbowHealEvent fires when a crossbow bolt heals a teammate.
type CrossbowHealEvent struct {
	Healer uint16 `json:"healer"`
	Target uint16 `json:"target"`
	Amount uint16 `json:"amount"`
}

func (CrossbowHealEvent) EventName() string { return "crossbow_heal" }

// RoundStalemateEvent fires when a round ends without a winner.
type RoundStalemateEvent struct {
	Reason uint8 `json:"reason"`
}

func (RoundStalemateEvent) EventName() string { return "teamplay_round_stalemate" }

// RoundStartEvent fires at the start of every round.
type RoundStartEvent struct {
	FullReset bool `json:"full_reset"`
}

func (RoundStartEvent) EventName() string { return "teamplay_round_start" }

// RoundWinEvent fires when a team wins a round. Team is the small team
// code of the winner.
type RoundWinEvent struct {
	Team      uint8 `json:"team"`
	WinReason uint8 `json:"winreason"`
}

func (RoundWinEvent) EventName() string { return "teamplay_round_win" }

// PointCapturedEvent fires when a control point is captured. Cappers is a
// packed byte string, one entity index per capping player.
type PointCapturedEvent struct {
	CP      uint8  `json:"cp"`
	CPName  string `json:"cpname"`
	Team    uint8  `json:"team"`
	Cappers []byte `json:"cappers"`
}

func (PointCapturedEvent) EventName() string { return "teamplay_point_captured" }

// PlayerConnectEvent fires when a client finishes connecting.
type PlayerConnectEvent struct {
	UserID uint16 `json:"userid"`
	Name   string `json:"name"`
}

func (PlayerConnectEvent) EventName() string { return "player_connect_client" }

// PlayerDisconnectEvent fires when a client leaves.
type PlayerDisconnectEvent struct {
	UserID uint16 `json:"userid"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

func (PlayerDisconnectEvent) EventName() string { return "player_disconnect" }
