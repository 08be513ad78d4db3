//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/logger"
	"github.com/kittclouds/pollfinder/internal/pipeline"
	"github.com/kittclouds/pollfinder/pkg/roster"
	"github.com/kittclouds/pollfinder/pkg/scanner/pollster"
)

// Version info
const Version = "0.3.0"

// Global state
var extractor *pipeline.Extractor
var dict *roster.Roster

func main() {
	newExtractor()
	println("[PollFinder] WASM Ready v" + Version)

	js.Global().Set("PollFinder", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		"extract":    js.FuncOf(extract),
		"explain":    js.FuncOf(explain),
		"label":      js.FuncOf(label),
	}))

	select {}
}

func newExtractor() {
	cfg := config.Default()
	cfg.Workers = 1
	extractor = pipeline.NewExtractor(cfg, nil, nil, logger.NewLogger(logger.TestConfig()))
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize resets the extractor and compiles the pollster roster
// Args: [rosterJSON string] - optional JSON array of pollster names
func initialize(this js.Value, args []js.Value) interface{} {
	newExtractor()
	dict = nil

	if len(args) > 0 && args[0].String() != "" && args[0].String() != "[]" {
		var names []string
		if err := json.Unmarshal([]byte(args[0].String()), &names); err != nil {
			return errorResult("invalid roster json: " + err.Error())
		}

		r, err := roster.Compile(roster.Expand(names))
		if err != nil {
			return errorResult("roster compile: " + err.Error())
		}
		dict = r
		println("[PollFinder] ✅ Roster compiled:", r.Len(), "names")
	}

	return successResult("initialized")
}

// extract runs both extraction paths over every candidate sentence
// Args: [text string]
func extract(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("extract requires 1 argument: text")
	}

	start := time.Now()
	results, err := extractor.ExtractText(context.Background(), args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}

	return jsonResult(map[string]interface{}{
		"results":   results,
		"timing_us": time.Since(start).Microseconds(),
	})
}

type traceStep struct {
	Direction string `json:"direction"`
	Index     int    `json:"index"`
	Element   string `json:"element"`
	Phase     string `json:"phase"`
	Action    string `json:"action"`
}

// explain returns the scanner decisions for one sentence
// Args: [sentence string]
func explain(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("explain requires 1 argument: sentence")
	}

	var steps []traceStep
	f := pollster.NewFinder()
	f.Trace = func(s pollster.Step) {
		steps = append(steps, traceStep{
			Direction: s.Direction.String(),
			Index:     s.Index,
			Element:   s.Element.String(),
			Phase:     s.Phase.String(),
			Action:    string(s.Action),
		})
	}

	name, ok := f.FindText(args[0].String())
	return jsonResult(map[string]interface{}{
		"pollster": name,
		"found":    ok,
		"steps":    steps,
	})
}

// label finds roster names in a text block
// Args: [text string]
func label(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("label requires 1 argument: text")
	}
	if dict == nil {
		return errorResult("roster not initialized")
	}

	positives, negative := dict.Label(args[0].String())
	return jsonResult(map[string]interface{}{
		"pollsters": positives,
		"negative":  negative,
	})
}

func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(jsonBytes)
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
