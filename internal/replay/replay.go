// Package replay defines the decoded-message boundary between the external
// demo parser and the analyser. The parser owns all binary framing and
// bit-level decoding; everything it hands over arrives as one of the types
// in this package, in stream order.
package replay

// Tick identifies one simulation step. Ticks only move forward within a
// demo; elapsed time is ticks multiplied by the server's interval-per-tick.
type Tick uint32

// UserID is the connection-scoped player identity assigned by the server.
// It is stable for the whole demo and never reused.
type UserID uint16

// EntityID is a protocol-level entity handle. Unlike UserID it is reused:
// when a player disconnects, their entity slot can be handed to the next
// player who joins.
type EntityID uint32

// ClassID indexes into the server-class list delivered with the data tables.
type ClassID uint16

// Header carries the demo file header fields the analyser cares about.
// STV (full-match spectator) recordings have an empty server name.
type Header struct {
	ServerName string  `json:"server_name"`
	MapName    string  `json:"map_name,omitempty"`
	Nick       string  `json:"nick,omitempty"`
	Duration   float32 `json:"duration,omitempty"`
}

// ServerClass is one entry of the data-table class list.
type ServerClass struct {
	ID   ClassID `json:"id"`
	Name string  `json:"name"`
}

// StringTableEntry is a single decoded string-table row. ExtraData holds
// the raw payload bytes for tables that carry one (userinfo does).
type StringTableEntry struct {
	Text      string `json:"text,omitempty"`
	ExtraData []byte `json:"extra_data,omitempty"`
}

// MessageType enumerates the decoded message categories. The analyser
// declares up front which of these it wants so the parser can skip
// decoding the rest.
type MessageType int

const (
	MsgPacketEntities MessageType = iota
	MsgGameEvent
	MsgUserMessage
	MsgSetPause
	MsgServerInfo
	MsgOther
)

// Message is one decoded unit of the demo stream.
type Message interface {
	MessageType() MessageType
}

// PacketEntitiesMessage batches entity property updates for one tick.
type PacketEntitiesMessage struct {
	Entities []PacketEntity `json:"entities"`
}

func (PacketEntitiesMessage) MessageType() MessageType { return MsgPacketEntities }

// GameEventMessage wraps one discrete game event.
type GameEventMessage struct {
	Event GameEvent `json:"event"`
}

func (GameEventMessage) MessageType() MessageType { return MsgGameEvent }

// SayTextMessage is a decoded SayText2 chat user-message. Client is the
// entity handle of the sender.
type SayTextMessage struct {
	Client EntityID `json:"client"`
	Text   string   `json:"text"`
}

func (SayTextMessage) MessageType() MessageType { return MsgUserMessage }

// SetPauseMessage toggles the server pause state.
type SetPauseMessage struct {
	Paused bool `json:"paused"`
}

func (SetPauseMessage) MessageType() MessageType { return MsgSetPause }

// ServerInfoMessage arrives once per demo and fixes the recording
// perspective (PlayerSlot) and the tick duration.
type ServerInfoMessage struct {
	PlayerSlot      uint8   `json:"player_slot"`
	IntervalPerTick float32 `json:"interval_per_tick"`
}

func (ServerInfoMessage) MessageType() MessageType { return MsgServerInfo }
