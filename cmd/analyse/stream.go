package main

import (
	"bufio"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"tf-demo-insights/internal/analyser"
	"tf-demo-insights/internal/ipc"
	"tf-demo-insights/internal/replay"
)

// streamRecord is one NDJSON line of a decoded-stream dump. Exactly one of
// the kind-specific payloads is set, matching Kind.
type streamRecord struct {
	Kind    string                   `json:"kind"`
	Tick    replay.Tick              `json:"tick,omitempty"`
	Header  *replay.Header           `json:"header,omitempty"`
	Classes []replay.ServerClass     `json:"classes,omitempty"`
	Table   string                   `json:"table,omitempty"`
	Index   int                      `json:"index,omitempty"`
	Entry   *replay.StringTableEntry `json:"entry,omitempty"`
	Message *messageRecord           `json:"message,omitempty"`
}

// messageRecord is the wire form of the decoded message union.
type messageRecord struct {
	Type            string                `json:"type"`
	Entities        []replay.PacketEntity `json:"entities,omitempty"`
	Event           *eventRecord          `json:"event,omitempty"`
	Client          replay.EntityID       `json:"client,omitempty"`
	Text            string                `json:"text,omitempty"`
	Paused          bool                  `json:"paused,omitempty"`
	PlayerSlot      uint8                 `json:"player_slot,omitempty"`
	IntervalPerTick float32               `json:"interval_per_tick,omitempty"`
}

type eventRecord struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// Progress every this many stream units.
const progressInterval = 25000

// replayStream feeds every record of an NDJSON dump into the analyser in
// arrival order, honouring its declared-interest filter.
func replayStream(r io.Reader, a *analyser.MatchAnalyser, out *ipc.Output) error {
	scanner := bufio.NewScanner(r)
	// Entity batches can produce long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	unit := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec streamRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("failed to decode stream record %d: %w", unit+1, err)
		}
		if err := applyRecord(&rec, a); err != nil {
			return fmt.Errorf("stream record %d: %w", unit+1, err)
		}

		unit++
		if unit%progressInterval == 0 {
			out.Progress("analyse", unit, uint32(rec.Tick))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	return nil
}

func applyRecord(rec *streamRecord, a *analyser.MatchAnalyser) error {
	switch rec.Kind {
	case "header":
		if rec.Header == nil {
			return fmt.Errorf("header record without header payload")
		}
		a.HandleHeader(*rec.Header)
	case "datatables":
		a.HandleDataTables(rec.Classes)
	case "stringtable":
		if rec.Entry == nil {
			return fmt.Errorf("stringtable record without entry payload")
		}
		a.HandleStringEntry(rec.Table, rec.Index, *rec.Entry)
	case "message":
		if rec.Message == nil {
			return fmt.Errorf("message record without message payload")
		}
		if !a.WantsMessage(messageTypeOf(rec.Message.Type)) {
			return nil
		}
		msg, err := decodeMessage(rec.Message)
		if err != nil {
			return err
		}
		if msg != nil {
			a.HandleMessage(msg, rec.Tick)
		}
	default:
		return fmt.Errorf("unknown record kind %q", rec.Kind)
	}
	return nil
}

func messageTypeOf(kind string) replay.MessageType {
	switch kind {
	case "packet_entities":
		return replay.MsgPacketEntities
	case "game_event":
		return replay.MsgGameEvent
	case "say_text":
		return replay.MsgUserMessage
	case "set_pause":
		return replay.MsgSetPause
	case "server_info":
		return replay.MsgServerInfo
	default:
		return replay.MsgOther
	}
}

func decodeMessage(rec *messageRecord) (replay.Message, error) {
	switch rec.Type {
	case "packet_entities":
		return replay.PacketEntitiesMessage{Entities: rec.Entities}, nil
	case "game_event":
		if rec.Event == nil {
			return nil, fmt.Errorf("game_event message without event payload")
		}
		event, err := decodeGameEvent(rec.Event.Name, rec.Event.Data)
		if err != nil || event == nil {
			return nil, err
		}
		return replay.GameEventMessage{Event: event}, nil
	case "say_text":
		return replay.SayTextMessage{Client: rec.Client, Text: rec.Text}, nil
	case "set_pause":
		return replay.SetPauseMessage{Paused: rec.Paused}, nil
	case "server_info":
		return replay.ServerInfoMessage{
			PlayerSlot:      rec.PlayerSlot,
			IntervalPerTick: rec.IntervalPerTick,
		}, nil
	default:
		return nil, nil
	}
}

// decodeGameEvent maps an event name to its typed struct. Unknown event
// names are skipped, not errors: demos carry many events this analyser
// does not model.
func decodeGameEvent(name string, data json.RawMessage) (replay.GameEvent, error) {
	unmarshal := func(v replay.GameEvent) (replay.GameEvent, error) {
		if len(data) == 0 {
			return v, nil
		}
		if err := json.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", name, err)
		}
		return v, nil
	}

	switch name {
	case "player_death":
		e := &replay.PlayerDeathEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.PlayerDeathEvent), nil
	case "player_hurt":
		e := &replay.PlayerHurtEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.PlayerHurtEvent), nil
	case "player_spawn":
		e := &replay.PlayerSpawnEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.PlayerSpawnEvent), nil
	case "crossbow_heal":
		e := &replay.CrossbowHealEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.CrossbowHealEvent), nil
	case "teamplay_round_stalemate":
		e := &replay.RoundStalemateEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.RoundStalemateEvent), nil
	case "teamplay_round_start":
		e := &replay.RoundStartEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.RoundStartEvent), nil
	case "teamplay_round_win":
		e := &replay.RoundWinEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.RoundWinEvent), nil
	case "teamplay_point_captured":
		e := &replay.PointCapturedEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.PointCapturedEvent), nil
	case "player_connect_client":
		e := &replay.PlayerConnectEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.PlayerConnectEvent), nil
	case "player_disconnect":
		e := &replay.PlayerDisconnectEvent{}
		v, err := unmarshal(e)
		if err != nil {
			return nil, err
		}
		return *v.(*replay.PlayerDisconnectEvent), nil
	default:
		return nil, nil
	}
}
