package provision

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ontrackx/smarthome/thing"
)

const testDefinitions = `
things:
  - uid: knx:gateway:main
    kind: bridge
    label: Main Gateway
    config:
      host: 192.168.1.10
      port: 3671
  - uid: knx:dimmer:living
    label: Living Room Dimmer
    bridge: knx:gateway:main
    properties:
      vendor: acme
    channels:
      - id: brightness
        accepted_type: Dimmer
        config:
          fade: 2
      - id: switch
        accepted_type: Switch
  - uid: knx:sensor:hall
    label: Hall Sensor
`

func TestParse(t *testing.T) {
	things, err := Parse([]byte(testDefinitions))
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if len(things) != 3 {
		t.Fatalf("Parse() = %d things, want 3", len(things))
	}

	bridge, dimmer, sensor := things[0], things[1], things[2]

	if bridge.Kind() != thing.KindBridge {
		t.Errorf("bridge kind = %v, want KindBridge", bridge.Kind())
	}
	if port, ok := bridge.Configuration().Int("port"); !ok || port != 3671 {
		t.Errorf("bridge port = %d, %v", port, ok)
	}

	if dimmer.Kind() != thing.KindThing {
		t.Errorf("dimmer kind = %v, want KindThing", dimmer.Kind())
	}
	if got := dimmer.BridgeUID(); got == nil || got.String() != "knx:gateway:main" {
		t.Errorf("dimmer bridge uid = %v", got)
	}
	if dimmer.Properties()["vendor"] != "acme" {
		t.Errorf("dimmer properties = %v", dimmer.Properties())
	}
	channels := dimmer.Channels()
	if len(channels) != 2 {
		t.Fatalf("dimmer channels = %d, want 2", len(channels))
	}
	if channels[0].UID.String() != "knx:dimmer:living:brightness" {
		t.Errorf("channel uid = %q", channels[0].UID)
	}
	if channels[0].AcceptedValueType != "Dimmer" {
		t.Errorf("channel accepted type = %q", channels[0].AcceptedValueType)
	}
	if fade, ok := channels[0].Configuration.Int("fade"); !ok || fade != 2 {
		t.Errorf("channel fade = %d, %v", fade, ok)
	}

	// The dimmer names the bridge in the same file, so it is attached as
	// a child; the sensor names no bridge.
	children := bridge.Children()
	if len(children) != 1 || children[0] != dimmer {
		t.Errorf("bridge children = %v, want [dimmer]", children)
	}
	if len(sensor.Children()) != 0 {
		t.Error("sensor has children")
	}
}

func TestParseGeneratesUIDFromType(t *testing.T) {
	things, err := Parse([]byte("things:\n  - type: knx:dimmer\n    label: Anonymous\n"))
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if len(things) != 1 {
		t.Fatalf("Parse() = %d things, want 1", len(things))
	}
	uid := things[0].UID()
	if uid.TypeUID() != thing.NewThingTypeUID("knx", "dimmer") {
		t.Errorf("generated uid type = %v", uid.TypeUID())
	}
	if uid.ID == "" {
		t.Error("generated uid has empty id")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "missing identity",
			yaml:    "things:\n  - label: Nameless\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "unknown kind",
			yaml:    "things:\n  - uid: knx:dimmer:a\n    kind: hub\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "malformed uid",
			yaml:    "things:\n  - uid: knx\n",
			wantErr: thing.ErrMalformedUID,
		},
		{
			name:    "malformed bridge uid",
			yaml:    "things:\n  - uid: knx:dimmer:a\n    bridge: nope\n",
			wantErr: thing.ErrMalformedUID,
		},
		{
			name:    "type contradicts uid",
			yaml:    "things:\n  - uid: knx:dimmer:a\n    type: knx:sensor\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "duplicate uid",
			yaml:    "things:\n  - uid: knx:dimmer:a\n  - uid: knx:dimmer:a\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "channel without id",
			yaml:    "things:\n  - uid: knx:dimmer:a\n    channels:\n      - accepted_type: Dimmer\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "bridge target not a bridge",
			yaml:    "things:\n  - uid: knx:dimmer:a\n  - uid: knx:dimmer:b\n    bridge: knx:dimmer:a\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "not yaml",
			yaml:    "things: [",
			wantErr: nil, // any error is fine, just not a success
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "things.yaml")
	if err := os.WriteFile(path, []byte(testDefinitions), 0o600); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	things, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if len(things) != 3 {
		t.Errorf("Load() = %d things, want 3", len(things))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil, want error")
	}
}
