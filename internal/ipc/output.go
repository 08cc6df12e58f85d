// Package ipc streams NDJSON (newline-delimited JSON) records to the
// process that spawned the driver: progress while the stream is replayed,
// log lines, and the final result.
package ipc

import (
	"fmt"
	"io"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// Output writes NDJSON records. All methods are safe for concurrent use.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOutput returns an Output writing to stdout.
func NewOutput() *Output {
	return NewOutputTo(os.Stdout)
}

// NewOutputTo returns an Output writing to w.
func NewOutputTo(w io.Writer) *Output {
	return &Output{w: w}
}

// Progress reports how far the stream replay has gotten.
func (o *Output) Progress(stage string, unit int, tick uint32) {
	o.writeJSON(map[string]interface{}{
		"type":  "progress",
		"stage": stage,
		"unit":  unit,
		"tick":  tick,
	})
}

// Log sends a log record.
func (o *Output) Log(level, msg string) {
	o.writeJSON(map[string]interface{}{
		"type":  "log",
		"level": level,
		"msg":   msg,
	})
}

// Error sends an error record.
func (o *Output) Error(msg string) {
	o.writeJSON(map[string]interface{}{
		"type": "error",
		"msg":  msg,
	})
}

// Result sends the final summary record.
func (o *Output) Result(summary interface{}) {
	o.writeJSON(map[string]interface{}{
		"type":    "result",
		"summary": summary,
	})
}

// writeJSON writes one record followed by a newline.
func (o *Output) writeJSON(obj map[string]interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()

	data, err := json.Marshal(obj)
	if err != nil {
		// Fallback to stderr if JSON marshaling fails
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintf(o.w, "%s\n", data)
}
