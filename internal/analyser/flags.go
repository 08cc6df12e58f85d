package analyser

// PlayerFlag is a bit position in the engine's movement/state flag field
// (DT_BasePlayer/m_fFlags).
type PlayerFlag uint32

const (
	FlagOnGround PlayerFlag = iota
	FlagDucking
	FlagAnimDucking
	FlagWaterJump
	FlagOnTrain
	FlagInRain
	FlagFrozen
	FlagAtControls
	FlagClient
	FlagFakeClient
	FlagInWater
	FlagFly
	FlagSwim
	FlagConveyor
	FlagNPC
	FlagGodMode
	FlagNoTarget
	FlagAimTarget
	FlagPartialGround
	FlagStaticProp
	FlagGraphed
	FlagGrenade
	FlagStepMovement
	FlagDontTouch
	FlagBaseVelocity
	FlagWorldBrush
	FlagObject
	FlagKillMe
	FlagOnFire
	FlagDissolving
	FlagTransRagdoll
	FlagUnblockableByPlayer
)

// Mask returns the flag's bit mask.
func (f PlayerFlag) Mask() uint32 { return 1 << uint32(f) }

// airborne reports whether a flag field describes a player that is neither
// standing on ground nor in water.
func airborne(flags uint32) bool {
	return flags&(FlagOnGround.Mask()|FlagInWater.Mask()) == 0
}
