package analyser

// WeaponClass is the weapon class code carried by hurt events. The engine
// enum is much larger; only the classes the analyser inspects are named.
type WeaponClass uint16

const (
	WeaponNone               WeaponClass = 0
	WeaponBat                WeaponClass = 1
	WeaponBottle             WeaponClass = 3
	WeaponFireaxe            WeaponClass = 4
	WeaponKnife              WeaponClass = 7
	WeaponFists              WeaponClass = 8
	WeaponShovel             WeaponClass = 9
	WeaponWrench             WeaponClass = 10
	WeaponBonesaw            WeaponClass = 11
	WeaponShotgunPrimary     WeaponClass = 12
	WeaponScattergun         WeaponClass = 16
	WeaponSniperRifle        WeaponClass = 17
	WeaponMinigun            WeaponClass = 18
	WeaponSMG                WeaponClass = 19
	WeaponSyringeGun         WeaponClass = 20
	WeaponRocketLauncher     WeaponClass = 22
	WeaponGrenadeLauncher    WeaponClass = 23
	WeaponPipebombLauncher   WeaponClass = 24
	WeaponFlamethrower       WeaponClass = 25
	WeaponPistol             WeaponClass = 41
	WeaponRevolver           WeaponClass = 43
	WeaponMedigun            WeaponClass = 50
	WeaponFlareGun           WeaponClass = 58
	WeaponCompoundBow        WeaponClass = 61
	WeaponDirectHit          WeaponClass = 65
	WeaponCrossbow           WeaponClass = 73
	WeaponSniperRifleDecap   WeaponClass = 77
	WeaponParticleCannon     WeaponClass = 79
	WeaponLooseCannon        WeaponClass = 91
	WeaponSniperRifleClassic WeaponClass = 99
)

// airshotWeapons is the projectile/explosive allow-list for damage-based
// airshot detection. Hitscan weapons never count.
var airshotWeapons = map[WeaponClass]bool{
	WeaponRocketLauncher:  true,
	WeaponDirectHit:       true,
	WeaponParticleCannon:  true,
	WeaponGrenadeLauncher: true,
	WeaponLooseCannon:     true,
	WeaponCrossbow:        true,
}
