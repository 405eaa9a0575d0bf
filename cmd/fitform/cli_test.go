package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/db"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// setupCatalog creates a seeded in-memory catalog for testing.
func setupCatalog(t *testing.T) *wardrobe.Catalog {
	t.Helper()
	database, err := db.Init(fmt.Sprintf("file:cli_%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	catalog := wardrobe.NewCatalog(database)
	if err := catalog.Seed(wardrobe.DefaultItems()); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
	return catalog
}

// runApp runs the CLI app with the given args, capturing stdout.
func runApp(t *testing.T, catalog *wardrobe.Catalog, args ...string) ([]byte, error) {
	t.Helper()

	app := newCLIApp(catalog, synth.NewFake(), config.DefaultConfig(), zerolog.Nop())

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"fitform"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.Bytes(), err
}

func TestCLIPoses(t *testing.T) {
	out, err := runApp(t, setupCatalog(t), "poses")
	if err != nil {
		t.Fatalf("poses command failed: %v", err)
	}

	var output struct {
		Poses []struct {
			Index int    `json:"index"`
			Label string `json:"label"`
		} `json:"poses"`
	}
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}

	if len(output.Poses) != 20 {
		t.Errorf("poses = %d, want 20", len(output.Poses))
	}
	if output.Poses[0].Index != 0 || output.Poses[0].Label == "" {
		t.Errorf("first pose = %+v", output.Poses[0])
	}
}

func TestCLIWardrobe(t *testing.T) {
	out, err := runApp(t, setupCatalog(t), "wardrobe")
	if err != nil {
		t.Fatalf("wardrobe command failed: %v", err)
	}

	var output struct {
		Items []wardrobe.Item `json:"items"`
	}
	if err := json.Unmarshal(out, &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}

	if len(output.Items) != len(wardrobe.DefaultItems()) {
		t.Errorf("items = %d, want %d", len(output.Items), len(wardrobe.DefaultItems()))
	}
}

func TestIsCLIMode(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"fitform"}, false},
		{[]string{"fitform", "serve"}, true},
		{[]string{"fitform", "poses"}, true},
		{[]string{"fitform", "wardrobe"}, true},
		{[]string{"fitform", "--help"}, true},
		{[]string{"fitform", "-v"}, true},
		{[]string{"fitform", "unknown"}, false},
	}

	for _, tt := range tests {
		os.Args = tt.args
		if got := isCLIMode(); got != tt.want {
			t.Errorf("isCLIMode() with %v = %v, want %v", tt.args, got, tt.want)
		}
	}
}
