package analyser

// Condition is one slot of the 128-bit player status vector. The vector is
// networked across four 32-bit fields plus a legacy single-condition field;
// see playerState.hasCondition for the packing rule.
type Condition uint32

// Only a handful of conditions influence highlight detection, but the
// first block is listed in full since it shares a field with the legacy
// critboosted mirror.
const (
	CondAiming Condition = iota
	CondZoomed
	CondDisguising
	CondDisguised
	CondStealthed
	CondInvulnerable
	CondTeleported
	CondTaunting
	CondInvulnerableWearingOff
	CondStealthedBlink
	CondSelectedToTeleport
	CondCritboosted
	CondTmpDamageBonus
	CondFeignDeath
	CondPhase
	CondStunned
	CondOffenseBuff
	CondShieldCharge
	CondDemoBuff
	CondEnergyBuff
	CondRadiusHeal
	CondHealthBuff
	CondBurning
	CondHealthOverhealed
	CondUrine
	CondBleeding
	CondDefenseBuff
	CondMadMilk
	CondMegaheal
	CondRegenOnDamageBuff
	CondMarkedForDeath
	CondNoHealingDamageBuff
)

// CondBlastJumping is set while a player is airborne from their own
// explosive jump. It drives airshot classification.
const CondBlastJumping Condition = 81

// condCount is the size of the status vector.
const condCount = 128
