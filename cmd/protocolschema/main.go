// Command protocolschema writes the JSON schema of the WebSocket protocol
// payloads, keyed by message type.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/gravitas-games/hexgrid/internal/network"
)

// clientMessages maps each client message type to its payload
type clientMessages struct {
	EditorSettings network.EditorSettingsPayload `json:"editor_settings"`
	Pointer        network.PointerPayload        `json:"pointer"`
	FindPath       network.FindPathPayload       `json:"find_path"`
	SpawnUnit      network.SpawnUnitPayload      `json:"spawn_unit"`
	MoveUnit       network.MoveUnitPayload       `json:"move_unit"`
	RemoveUnit     network.RemoveUnitPayload     `json:"remove_unit"`
	FillDistances  network.FillDistancesPayload  `json:"fill_distances"`
}

// serverMessages maps each server message type to its payload
type serverMessages struct {
	Welcome      network.WelcomePayload      `json:"welcome"`
	PlayerJoined network.PlayerJoinedPayload `json:"player_joined"`
	PlayerLeft   network.PlayerLeftPayload   `json:"player_left"`
	GridChunk    network.GridChunkPayload    `json:"grid_chunk"`
	CellsChanged network.CellsChangedPayload `json:"cells_changed"`
	Path         network.PathPayload         `json:"path"`
	UnitUpdate   network.UnitPayload         `json:"unit_update"`
	UnitRemoved  network.UnitRemovedPayload  `json:"unit_removed"`
	FillStep     network.FillStepPayload     `json:"fill_step"`
	Error        network.ErrorPayload        `json:"error"`
}

type protocol struct {
	Envelope network.ClientMessage `json:"envelope"`
	Client   clientMessages        `json:"client"`
	Server   serverMessages        `json:"server"`
}

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(protocol))
	schema.Title = "Hex Grid Protocol"
	schema.Description = "Payloads exchanged over the /ws endpoint, keyed by message type"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
