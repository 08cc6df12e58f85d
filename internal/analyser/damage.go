package analyser

// CustomDamage is the "custom kill" code attached to death events. It
// refines the nominal weapon into the specific way the kill happened.
type CustomDamage uint16

const (
	CustomNone CustomDamage = iota
	CustomHeadshot
	CustomBackstab
	CustomBurning
	CustomWrenchFix
	CustomMinigun
	CustomSuicide
	CustomTauntHadouken
	CustomBurningFlare
	CustomTauntHighNoon
	CustomTauntGrandSlam
	CustomPenetrateMyTeam
	CustomPenetrateAllPlayers
	CustomTauntFencing
	CustomPenetrateNonburningTeammate
	CustomTauntArrowStab
	CustomTelefrag
	CustomBurningArrow
	CustomFlyingBurn
	CustomPumpkinBomb
	CustomDecapitation
	CustomTauntGrenade
	CustomBaseball
	CustomChargeImpact
	CustomTauntBarbarianSwing
	CustomAirStickyBurst
	CustomDefensiveSticky
	CustomPickaxe
	CustomRocketDirecthit
	CustomTauntUberslice
	CustomPlayerSentry
	CustomStandardSticky
	CustomShotgunRevengeCrit
	CustomTauntEngineerGuitarSmash
	CustomBleeding
	CustomGoldWrench
	CustomCarriedBuilding
	CustomComboPunch
	CustomTauntEngineerArmKill
	CustomFishKill
	CustomTriggerHurt
	CustomDecapitationBoss
	CustomStickbombExplosion
	CustomAegisRound
	CustomFlareExplosion
	CustomBootsStomp
	CustomPlasma
	CustomPlasmaCharged
	CustomPlasmaGib
	CustomPracticeSticky
	CustomEyeballRocket
	CustomHeadshotDecapitation
	CustomTauntArmageddon
	CustomFlarePellet
	CustomCleaver
	CustomCleaverCrit
	CustomSapperRecorderDeath
	CustomMerasmusPlayerBomb
	CustomMerasmusGrenade
	CustomMerasmusZap
	CustomMerasmusDecapitation
	CustomCannonballPush
	CustomTauntAllclassGuitarRiff
	CustomThrowable
	CustomThrowableKill
	CustomSpellTeleport
	CustomSpellSkeleton
	CustomSpellMirv
	CustomSpellMeteor
	CustomSpellLightning
	CustomSpellFireball
	CustomSpellMonoculus
	CustomSpellBlastjump
	CustomSpellBats
	CustomSpellTiny
	CustomKart
	CustomGiantHammer
	CustomRuneReflect
)

// DamageFlag is a bit position in the damage-type bit field carried by
// death events.
type DamageFlag uint32

const (
	DmgCrush DamageFlag = iota
	DmgBullet
	DmgSlash
	DmgBurn
	DmgVehicle
	DmgFall
	DmgBlast
	DmgClub
	DmgShock
	DmgSonic
	DmgEnergyBeam
	DmgPreventPhysicsForce
	DmgNeverGib
	DmgAlwaysGib
	DmgDrown
	DmgParalyze
	DmgNerveGas
	DmgPoison
	DmgRadiation
	DmgDrownRecover
	DmgAcid
	DmgSlowBurn
	DmgRemoveNoRagdoll
	DmgPhysgun
	DmgPlasma
	DmgAirboat
	DmgDissolve
	DmgBlastSurface
	DmgDirect
	DmgBuckshot
)

// Mask returns the flag's bit mask.
func (f DamageFlag) Mask() uint32 { return 1 << uint32(f) }
