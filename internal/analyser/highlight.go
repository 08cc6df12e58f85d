package analyser

import (
	"fmt"

	json "github.com/goccy/go-json"

	"tf-demo-insights/internal/replay"
)

// Highlight is one classified notable event. On the wire each variant is
// an adjacently tagged object, {"t": <variant>, "c": <payload>}, with unit
// variants carrying no "c". This shape is the persisted contract; stored
// summaries must keep round-tripping against it.
type Highlight interface {
	highlightTag() string
}

// HighlightEvent pairs a highlight with the tick it was observed at. The
// highlight log preserves arrival order, not tick order.
type HighlightEvent struct {
	Tick  replay.Tick
	Event Highlight
}

// KillHighlight records a death, with the icon the game would have shown
// for it and the airshot/drop classification.
type KillHighlight struct {
	KillerID   replay.UserID  `json:"killer_id"`
	AssisterID *replay.UserID `json:"assister_id"`
	VictimID   replay.UserID  `json:"victim_id"`
	Weapon     string         `json:"weapon"`
	KillIcon   string         `json:"kill_icon"`
	Streak     uint           `json:"streak"`
	Drop       bool           `json:"drop"`
	Airshot    bool           `json:"airshot"`
}

func (KillHighlight) highlightTag() string { return "Kill" }

// ChatMessageHighlight records one chat line.
type ChatMessageHighlight struct {
	Sender replay.UserID `json:"sender"`
	Text   string        `json:"text"`
}

func (ChatMessageHighlight) highlightTag() string { return "ChatMessage" }

// AirshotHighlight records a mid-air projectile hit that did not kill.
type AirshotHighlight struct {
	AttackerID replay.UserID `json:"attacker_id"`
	VictimID   replay.UserID `json:"victim_id"`
}

func (AirshotHighlight) highlightTag() string { return "Airshot" }

// CrossbowAirshotHighlight records a crossbow heal landed on an airborne
// teammate.
type CrossbowAirshotHighlight struct {
	HealerID replay.UserID `json:"healer_id"`
	TargetID replay.UserID `json:"target_id"`
}

func (CrossbowAirshotHighlight) highlightTag() string { return "CrossbowAirshot" }

// PointCapturedHighlight records a control-point capture.
type PointCapturedHighlight struct {
	PointName     string          `json:"point_name"`
	CapturingTeam uint8           `json:"capturing_team"`
	Cappers       []replay.UserID `json:"cappers"`
}

func (PointCapturedHighlight) highlightTag() string { return "PointCaptured" }

// RoundStalemateHighlight marks a round that ended with no winner.
type RoundStalemateHighlight struct{}

func (RoundStalemateHighlight) highlightTag() string { return "RoundStalemate" }

// RoundStartHighlight marks a round start.
type RoundStartHighlight struct{}

func (RoundStartHighlight) highlightTag() string { return "RoundStart" }

// RoundWinHighlight records which team won a round.
type RoundWinHighlight struct {
	Winner uint8 `json:"winner"`
}

func (RoundWinHighlight) highlightTag() string { return "RoundWin" }

// PlayerConnectedHighlight records a player joining.
type PlayerConnectedHighlight struct {
	UserID replay.UserID `json:"user_id"`
}

func (PlayerConnectedHighlight) highlightTag() string { return "PlayerConnected" }

// PlayerDisconnectedHighlight records a player leaving.
type PlayerDisconnectedHighlight struct {
	UserID replay.UserID `json:"user_id"`
	Reason string        `json:"reason"`
}

func (PlayerDisconnectedHighlight) highlightTag() string { return "PlayerDisconnected" }

// PauseHighlight marks the server pausing.
type PauseHighlight struct{}

func (PauseHighlight) highlightTag() string { return "Pause" }

// UnpauseHighlight marks the server unpausing.
type UnpauseHighlight struct{}

func (UnpauseHighlight) highlightTag() string { return "Unpause" }

// unitHighlight reports whether a variant carries no payload object.
func unitHighlight(h Highlight) bool {
	switch h.(type) {
	case RoundStalemateHighlight, RoundStartHighlight, PauseHighlight, UnpauseHighlight:
		return true
	}
	return false
}

// MarshalJSON writes {"tick": N, "event": {"t": ..., "c": ...}}.
func (e HighlightEvent) MarshalJSON() ([]byte, error) {
	if unitHighlight(e.Event) {
		return json.Marshal(struct {
			Tick  replay.Tick `json:"tick"`
			Event struct {
				T string `json:"t"`
			} `json:"event"`
		}{
			Tick: e.Tick,
			Event: struct {
				T string `json:"t"`
			}{T: e.Event.highlightTag()},
		})
	}
	return json.Marshal(struct {
		Tick  replay.Tick `json:"tick"`
		Event struct {
			T string    `json:"t"`
			C Highlight `json:"c"`
		} `json:"event"`
	}{
		Tick: e.Tick,
		Event: struct {
			T string    `json:"t"`
			C Highlight `json:"c"`
		}{T: e.Event.highlightTag(), C: e.Event},
	})
}

// UnmarshalJSON restores a tagged highlight event.
func (e *HighlightEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Tick  replay.Tick `json:"tick"`
		Event struct {
			T string          `json:"t"`
			C json.RawMessage `json:"c"`
		} `json:"event"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	event, err := decodeHighlight(raw.Event.T, raw.Event.C)
	if err != nil {
		return err
	}
	e.Tick = raw.Tick
	e.Event = event
	return nil
}

func decodeHighlight(tag string, payload json.RawMessage) (Highlight, error) {
	decode := func(v Highlight) (Highlight, error) {
		if len(payload) == 0 {
			return v, nil
		}
		if err := json.Unmarshal(payload, v); err != nil {
			return nil, err
		}
		return v, nil
	}

	switch tag {
	case "Kill":
		h, err := decode(&KillHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*KillHighlight), nil
	case "ChatMessage":
		h, err := decode(&ChatMessageHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*ChatMessageHighlight), nil
	case "Airshot":
		h, err := decode(&AirshotHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*AirshotHighlight), nil
	case "CrossbowAirshot":
		h, err := decode(&CrossbowAirshotHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*CrossbowAirshotHighlight), nil
	case "PointCaptured":
		h, err := decode(&PointCapturedHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*PointCapturedHighlight), nil
	case "RoundWin":
		h, err := decode(&RoundWinHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*RoundWinHighlight), nil
	case "PlayerConnected":
		h, err := decode(&PlayerConnectedHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*PlayerConnectedHighlight), nil
	case "PlayerDisconnected":
		h, err := decode(&PlayerDisconnectedHighlight{})
		if err != nil {
			return nil, err
		}
		return *h.(*PlayerDisconnectedHighlight), nil
	case "RoundStalemate":
		return RoundStalemateHighlight{}, nil
	case "RoundStart":
		return RoundStartHighlight{}, nil
	case "Pause":
		return PauseHighlight{}, nil
	case "Unpause":
		return UnpauseHighlight{}, nil
	default:
		return nil, fmt.Errorf("unknown highlight tag %q", tag)
	}
}
