package analyser

import (
	"github.com/rs/zerolog/log"

	"tf-demo-insights/internal/replay"
)

func (a *MatchAnalyser) handleGameEvent(event replay.GameEvent, tick replay.Tick) {
	switch e := event.(type) {
	case replay.PlayerDeathEvent:
		a.handlePlayerDeath(e, tick)
	case replay.PlayerHurtEvent:
		a.handlePlayerHurt(e, tick)
	case replay.PlayerSpawnEvent:
		if p, ok := a.players[replay.UserID(e.UserID)]; ok {
			p.recordSpawn(e.Class)
		} else {
			log.Debug().Uint16("user", e.UserID).Msg("spawn event for unknown player")
		}
	case replay.CrossbowHealEvent:
		a.handleCrossbowHeal(e, tick)
	case replay.RoundStalemateEvent:
		a.addHighlight(RoundStalemateHighlight{}, tick)
	case replay.RoundStartEvent:
		a.addHighlight(RoundStartHighlight{}, tick)
	case replay.RoundWinEvent:
		a.addHighlight(RoundWinHighlight{Winner: e.Team}, tick)
	case replay.PointCapturedEvent:
		a.handlePointCaptured(e, tick)
	case replay.PlayerConnectEvent:
		a.addHighlight(PlayerConnectedHighlight{UserID: replay.UserID(e.UserID)}, tick)
	case replay.PlayerDisconnectEvent:
		a.addHighlight(PlayerDisconnectedHighlight{
			UserID: replay.UserID(e.UserID),
			Reason: e.Reason,
		}, tick)
	}
}

func (a *MatchAnalyser) handlePlayerDeath(e replay.PlayerDeathEvent, tick replay.Tick) {
	killerID := replay.UserID(e.Attacker)
	victimID := replay.UserID(e.UserID)

	var assisterID *replay.UserID
	if e.Assister != replay.NoAssister {
		id := replay.UserID(e.Assister)
		assisterID = &id
	}

	var drop, airshot bool
	if victim, ok := a.players[victimID]; ok {
		drop = victim.charge == 100
		airshot = a.isAirshot(victim, tick)
	}

	a.addHighlight(KillHighlight{
		KillerID:   killerID,
		AssisterID: assisterID,
		VictimID:   victimID,
		Weapon:     e.Weapon,
		KillIcon:   killIconFor(e, killerID, victimID),
		Streak:     uint(e.KillStreakTotal),
		Drop:       drop,
		Airshot:    airshot,
	}, tick)
}

// killIconFor substitutes the kill icon the game would have shown,
// starting from the nominal weapon and applying the custom-kill code and
// the suicide damage-bit special cases.
func killIconFor(e replay.PlayerDeathEvent, killerID, victimID replay.UserID) string {
	icon := e.Weapon

	switch CustomDamage(e.CustomKill) {
	case CustomBackstab:
		if icon == "sharp_dresser" {
			icon = "sharp_dresser_backstab"
		} else {
			icon = "backstab"
		}
	case CustomHeadshot, CustomHeadshotDecapitation:
		switch {
		case icon == "ambassador":
			icon = "ambassador_headshot"
		case icon == "huntsman":
			icon = "huntsman_headshot"
		case e.PlayerPenetrateCount > 0:
			icon = "headshot_player_penetration"
		default:
			icon = "headshot"
		}
	case CustomBurning:
		if killerID == victimID {
			icon = "firedeath"
		}
	case CustomBurningArrow:
		icon = "huntsman_burning"
	case CustomFlyingBurn:
		icon = "huntsman_flyingburn"
	case CustomPumpkinBomb:
		icon = "pumpkindeath"
	case CustomSuicide:
		// The code appears either for a killbind suicide or a self-kill
		// credited to another player because of recent damage.
		if killerID == victimID {
			icon = "#suicide"
		} else {
			icon = "#assisted_suicide"
		}
	case CustomKart:
		icon = "bumper_kart"
	case CustomGiantHammer:
		icon = "necro_smasher"
	}

	// Environmental suicides override whatever the nominal weapon said.
	if killerID == 0 || killerID == victimID {
		if e.DamageBits&DmgFall.Mask() != 0 {
			icon = "#fall"
		}
		if e.DamageBits&DmgNerveGas.Mask() != 0 {
			icon = "saw_kill"
		}
		if e.DamageBits&DmgVehicle.Mask() != 0 {
			icon = "vehicle"
		}
	}

	return icon
}

func (a *MatchAnalyser) handlePlayerHurt(e replay.PlayerHurtEvent, tick replay.Tick) {
	victimID := replay.UserID(e.UserID)
	attackerID := replay.UserID(e.Attacker)

	victim, ok := a.players[victimID]
	if !ok {
		log.Debug().Uint16("victim", e.UserID).Msg("hurt event for unknown player")
		return
	}

	// POV recordings only score airshots for the recording player; STV
	// recordings score everyone.
	if !a.isSTV {
		if local, ok := a.localUser(); !ok || local != attackerID {
			return
		}
	}

	if attackerID == victimID {
		return
	}
	if !airshotWeapons[WeaponClass(e.WeaponID)] {
		return
	}
	if !a.isAirshot(victim, tick) {
		return
	}

	a.addHighlight(AirshotHighlight{AttackerID: attackerID, VictimID: victimID}, tick)
}

// handleCrossbowHeal scores a heal landed on a blast-jumping teammate. The
// configurable airshot rule covers damage and deaths only; a healing bolt
// always keys off the condition bit.
func (a *MatchAnalyser) handleCrossbowHeal(e replay.CrossbowHealEvent, tick replay.Tick) {
	targetID := replay.UserID(e.Target)
	target, ok := a.players[targetID]
	if !ok {
		return
	}
	if !target.hasCondition(CondBlastJumping) {
		return
	}
	a.addHighlight(CrossbowAirshotHighlight{
		HealerID: replay.UserID(e.Healer),
		TargetID: targetID,
	}, tick)
}

// handlePointCaptured resolves each capper byte (an entity index) through
// the live identity map; unresolvable cappers are left out.
func (a *MatchAnalyser) handlePointCaptured(e replay.PointCapturedEvent, tick replay.Tick) {
	cappers := make([]replay.UserID, 0, len(e.Cappers))
	for _, b := range e.Cappers {
		if userID, ok := a.playerEntities[replay.EntityID(b)]; ok {
			cappers = append(cappers, userID)
		}
	}
	a.addHighlight(PointCapturedHighlight{
		PointName:     e.CPName,
		CapturingTeam: e.Team,
		Cappers:       cappers,
	}, tick)
}
