package analyser

import (
	"encoding/binary"
	"testing"

	"tf-demo-insights/internal/replay"
)

// Test fixture helpers. Entity class ids follow testClasses.

var testClasses = []replay.ServerClass{
	{ID: 0, Name: "CTFPlayer"},
	{ID: 1, Name: "CTFPlayerResource"},
	{ID: 2, Name: "CTFTeam"},
	{ID: 3, Name: "CWeaponMedigun"},
	{ID: 4, Name: "CTFProjectile_Rocket"},
}

const (
	classPlayer         = 0
	classPlayerResource = 1
	classTeam           = 2
	classMedigun        = 3
)

func newTestAnalyser(opts Options) *MatchAnalyser {
	a := New(opts)
	a.HandleHeader(replay.Header{ServerName: ""}) // STV by default
	a.HandleDataTables(testClasses)
	return a
}

func userInfoPayload(name string, userID uint32, steam3 string) []byte {
	buf := make([]byte, 69)
	copy(buf[:32], name)
	binary.LittleEndian.PutUint32(buf[32:36], userID)
	copy(buf[36:], steam3)
	return buf
}

// connect registers a player in the userinfo table at the given slot
// index. The entity handle becomes index+1.
func connect(a *MatchAnalyser, index int, name string, userID uint32) {
	a.HandleStringEntry(replay.UserInfoTable, index, replay.StringTableEntry{
		Text:      name,
		ExtraData: userInfoPayload(name, userID, "[U:1:1]"),
	})
}

func prop(table, name string, v replay.PropValue) replay.SendProp {
	return replay.SendProp{
		Ident: replay.PropIdentifier{Table: table, Name: name},
		Value: v,
	}
}

func playerEntity(id replay.EntityID, props ...replay.SendProp) replay.PacketEntity {
	return replay.PacketEntity{ID: id, ServerClass: classPlayer, Props: props}
}

func sendEntities(a *MatchAnalyser, tick replay.Tick, entities ...replay.PacketEntity) {
	a.HandleMessage(replay.PacketEntitiesMessage{Entities: entities}, tick)
}

func TestEntityHandleReuse(t *testing.T) {
	a := newTestAnalyser(Options{})

	connect(a, 4, "alice", 10) // entity 5
	sendEntities(a, 100, playerEntity(5,
		prop("DT_TFPlayerScoringDataExclusive", "m_iKills", replay.IntProp(3)),
	))

	// Teardown for slot 4, then a new connection reusing it.
	a.HandleStringEntry(replay.UserInfoTable, 4, replay.StringTableEntry{})
	connect(a, 4, "bob", 20)

	sendEntities(a, 200, playerEntity(5,
		prop("DT_TFPlayerScoringDataExclusive", "m_iKills", replay.IntProp(7)),
	))

	summary := a.Summarize()
	if len(summary.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(summary.Players))
	}
	alice, bob := summary.Players[0], summary.Players[1]
	if alice.UserID != 10 || bob.UserID != 20 {
		t.Fatalf("unexpected player order: %v, %v", alice.UserID, bob.UserID)
	}
	if alice.Scoreboard.Kills != 3 {
		t.Errorf("expected alice to keep 3 kills, got %d", alice.Scoreboard.Kills)
	}
	if bob.Scoreboard.Kills != 7 {
		t.Errorf("expected bob to get 7 kills, got %d", bob.Scoreboard.Kills)
	}
}

func TestScoreboardMonotonic(t *testing.T) {
	a := newTestAnalyser(Options{})
	connect(a, 0, "alice", 10) // entity 1

	// Full totals are resent and can arrive out of order; the stored
	// value must end up at the maximum regardless.
	for _, v := range []int64{5, 3, 9, 1, 9, 4} {
		sendEntities(a, 1, playerEntity(1,
			prop("DT_TFPlayerScoringDataExclusive", "m_iDamageDone", replay.IntProp(v)),
		))
	}

	summary := a.Summarize()
	if got := summary.Players[0].Scoreboard.DamageDealt; got != 9 {
		t.Errorf("expected max damage 9, got %d", got)
	}
}

func TestHighlightOrderFollowsArrival(t *testing.T) {
	a := newTestAnalyser(Options{})

	for _, tick := range []replay.Tick{5, 3, 9} {
		a.HandleMessage(replay.GameEventMessage{Event: replay.RoundStartEvent{}}, tick)
	}

	summary := a.Summarize()
	if len(summary.Highlights) != 3 {
		t.Fatalf("expected 3 highlights, got %d", len(summary.Highlights))
	}
	for i, want := range []replay.Tick{5, 3, 9} {
		if summary.Highlights[i].Tick != want {
			t.Errorf("highlight %d: expected tick %d, got %d", i, want, summary.Highlights[i].Tick)
		}
	}
}

func TestTeamScoreTracking(t *testing.T) {
	a := newTestAnalyser(Options{})

	sendEntities(a, 1,
		replay.PacketEntity{ID: 60, ServerClass: classTeam, Props: []replay.SendProp{
			prop("DT_Team", "m_iTeamNum", replay.IntProp(int64(TeamRed))),
		}},
		replay.PacketEntity{ID: 61, ServerClass: classTeam, Props: []replay.SendProp{
			prop("DT_Team", "m_iTeamNum", replay.IntProp(int64(TeamBlue))),
		}},
	)
	sendEntities(a, 2,
		replay.PacketEntity{ID: 60, ServerClass: classTeam, Props: []replay.SendProp{
			prop("DT_Team", "m_iScore", replay.IntProp(2)),
		}},
		replay.PacketEntity{ID: 61, ServerClass: classTeam, Props: []replay.SendProp{
			prop("DT_Team", "m_iScore", replay.IntProp(1)),
		}},
	)

	summary := a.Summarize()
	if summary.RedTeamScore != 2 || summary.BlueTeamScore != 1 {
		t.Errorf("expected scores 2/1, got %d/%d", summary.RedTeamScore, summary.BlueTeamScore)
	}
}

func TestMedigunChargeRouting(t *testing.T) {
	a := newTestAnalyser(Options{})
	connect(a, 0, "medic", 10) // entity 1

	// Owner binds first and never rebinds.
	sendEntities(a, 1, replay.PacketEntity{ID: 40, ServerClass: classMedigun, Props: []replay.SendProp{
		prop("DT_BaseCombatWeapon", "m_hOwner", replay.IntProp(1)),
	}})
	sendEntities(a, 2, replay.PacketEntity{ID: 40, ServerClass: classMedigun, Props: []replay.SendProp{
		prop("DT_BaseCombatWeapon", "m_hOwner", replay.IntProp(9)),
		prop("DT_TFWeaponMedigunDataNonLocal", "m_flChargeLevel", replay.FloatProp(0.995)),
	}})

	if got := a.players[10].charge; got != 100 {
		t.Errorf("expected charge 100, got %d", got)
	}
}

func TestUnknownPlayerUpdateDropped(t *testing.T) {
	a := newTestAnalyser(Options{})

	// No userinfo yet; must not create state or panic.
	sendEntities(a, 1, playerEntity(3,
		prop("DT_TFPlayerScoringDataExclusive", "m_iKills", replay.IntProp(5)),
	))

	if len(a.players) != 0 {
		t.Errorf("expected no players, got %d", len(a.players))
	}
}

func TestChatResolvesSender(t *testing.T) {
	a := newTestAnalyser(Options{})
	connect(a, 2, "alice", 10) // entity 3

	a.HandleMessage(replay.SayTextMessage{Client: 3, Text: "gg"}, 50)

	summary := a.Summarize()
	chat, ok := summary.Highlights[0].Event.(ChatMessageHighlight)
	if !ok {
		t.Fatalf("expected ChatMessageHighlight, got %T", summary.Highlights[0].Event)
	}
	if chat.Sender != 10 || chat.Text != "gg" {
		t.Errorf("unexpected chat highlight: %+v", chat)
	}
}

func TestEndToEnd(t *testing.T) {
	a := newTestAnalyser(Options{})

	a.HandleMessage(replay.ServerInfoMessage{PlayerSlot: 0, IntervalPerTick: 0.015}, 0)
	connect(a, 0, "alice", 10) // entity 1, the recording slot
	connect(a, 1, "bob", 20)   // entity 2

	// Teams: alice red (via player resource), team entities for scores.
	sendEntities(a, 10,
		replay.PacketEntity{ID: 50, ServerClass: classPlayerResource, Props: []replay.SendProp{
			prop("m_iTeam", "1", replay.IntProp(int64(TeamRed))),
			prop("m_iTeam", "2", replay.IntProp(int64(TeamBlue))),
		}},
		replay.PacketEntity{ID: 60, ServerClass: classTeam, Props: []replay.SendProp{
			prop("DT_Team", "m_iTeamNum", replay.IntProp(int64(TeamRed))),
		}},
	)

	a.HandleMessage(replay.GameEventMessage{Event: replay.RoundStartEvent{}}, 20)

	// Bob goes blast jumping, alice lands the rocket.
	sendEntities(a, 90, playerEntity(2,
		prop("DT_TFPlayerShared", "m_nPlayerCondEx2", replay.IntProp(1<<(uint32(CondBlastJumping)-64))),
	))
	a.HandleMessage(replay.GameEventMessage{Event: replay.PlayerDeathEvent{
		UserID:   20,
		Attacker: 10,
		Assister: replay.NoAssister,
		Weapon:   "tf_projectile_rocket",
	}}, 100)

	a.HandleMessage(replay.GameEventMessage{Event: replay.RoundWinEvent{Team: uint8(TeamRed)}}, 200)
	sendEntities(a, 201, replay.PacketEntity{ID: 60, ServerClass: classTeam, Props: []replay.SendProp{
		prop("DT_Team", "m_iScore", replay.IntProp(1)),
	}})

	summary := a.Summarize()

	if summary.LocalUserID != 10 {
		t.Errorf("expected local user 10, got %d", summary.LocalUserID)
	}
	if summary.IntervalPerTick != 0.015 {
		t.Errorf("expected interval 0.015, got %v", summary.IntervalPerTick)
	}
	if summary.RedTeamScore != 1 || summary.BlueTeamScore != 0 {
		t.Errorf("expected red 1 blue 0, got %d/%d", summary.RedTeamScore, summary.BlueTeamScore)
	}

	var kills []KillHighlight
	for _, h := range summary.Highlights {
		if k, ok := h.Event.(KillHighlight); ok {
			kills = append(kills, k)
		}
	}
	if len(kills) != 1 {
		t.Fatalf("expected exactly 1 kill highlight, got %d", len(kills))
	}
	kill := kills[0]
	if kill.KillerID != 10 || kill.VictimID != 20 {
		t.Errorf("unexpected kill attribution: %+v", kill)
	}
	if !kill.Airshot {
		t.Error("expected the kill to be an airshot")
	}
	if kill.AssisterID != nil {
		t.Errorf("expected no assister, got %v", *kill.AssisterID)
	}

	// Bob never disconnected but must still be present.
	if len(summary.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(summary.Players))
	}
	if summary.Players[0].Team != TeamRed || summary.Players[1].Team != TeamBlue {
		t.Errorf("unexpected teams: %v, %v", summary.Players[0].Team, summary.Players[1].Team)
	}
}
