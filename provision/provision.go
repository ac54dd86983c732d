package provision

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ontrackx/smarthome/config"
	"github.com/Ontrackx/smarthome/thing"
)

// ErrInvalidDefinition is returned when a thing definition fails
// validation. Check with errors.Is(); the returned error carries the
// offending entry's index and field.
var ErrInvalidDefinition = errors.New("provision: invalid definition")

// definition is the root of a YAML thing-definition file.
type definition struct {
	Things []thingDefinition `yaml:"things"`
}

// thingDefinition declares one thing. Either uid or type must be set;
// when uid is omitted a random one is generated under the type.
type thingDefinition struct {
	UID        string              `yaml:"uid"`
	Type       string              `yaml:"type"`
	Kind       string              `yaml:"kind"` // "thing" (default) or "bridge"
	Label      string              `yaml:"label"`
	Bridge     string              `yaml:"bridge"`
	Config     map[string]any      `yaml:"config"`
	Properties map[string]string   `yaml:"properties"`
	Channels   []channelDefinition `yaml:"channels"`
}

// channelDefinition declares one channel by its short id; the full
// channel UID is the owning thing's UID plus the id.
type channelDefinition struct {
	ID           string         `yaml:"id"`
	AcceptedType string         `yaml:"accepted_type"`
	Config       map[string]any `yaml:"config"`
}

// Load reads and parses a thing-definition file.
func Load(path string) ([]*thing.Thing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	things, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return things, nil
}

// Parse parses YAML thing definitions and builds the declared things in
// file order. After all things are built, every thing whose bridge field
// names a bridge declared in the same data is attached to it as a child,
// again in file order. A bridge field naming a thing outside the data is
// kept as a dangling reference, not an error.
func Parse(data []byte) ([]*thing.Thing, error) {
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}

	things := make([]*thing.Thing, 0, len(def.Things))
	byUID := make(map[string]*thing.Thing, len(def.Things))
	for i, td := range def.Things {
		t, err := buildThing(td)
		if err != nil {
			return nil, fmt.Errorf("things[%d]: %w", i, err)
		}
		if _, ok := byUID[t.UID().String()]; ok {
			return nil, fmt.Errorf("things[%d]: %w: duplicate uid %s", i, ErrInvalidDefinition, t.UID())
		}
		things = append(things, t)
		byUID[t.UID().String()] = t
	}

	// Second pass: attach children to bridges declared in the same file.
	for i, t := range things {
		bridgeUID := t.BridgeUID()
		if bridgeUID == nil {
			continue
		}
		bridge, ok := byUID[bridgeUID.String()]
		if !ok {
			continue
		}
		if err := bridge.AddChild(t); err != nil {
			return nil, fmt.Errorf("things[%d]: %w: bridge %s is not declared as kind bridge",
				i, ErrInvalidDefinition, bridgeUID)
		}
	}

	return things, nil
}

// buildThing constructs one thing from its definition.
func buildThing(td thingDefinition) (*thing.Thing, error) {
	uid, typeUID, err := resolveIdentity(td)
	if err != nil {
		return nil, err
	}

	var builder *thing.Builder
	switch td.Kind {
	case "", "thing":
		builder = thing.NewThingBuilder(typeUID, uid)
	case "bridge":
		builder = thing.NewBridgeBuilder(typeUID, uid)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDefinition, td.Kind)
	}

	builder.WithLabel(td.Label)
	if td.Bridge != "" {
		bridgeUID, err := thing.ParseThingUID(td.Bridge)
		if err != nil {
			return nil, fmt.Errorf("bridge: %w", err)
		}
		builder.WithBridge(&bridgeUID)
	}
	if td.Config != nil {
		builder.WithConfiguration(config.New(td.Config))
	}
	if td.Properties != nil {
		builder.WithProperties(td.Properties)
	}

	for j, cd := range td.Channels {
		if cd.ID == "" {
			return nil, fmt.Errorf("channels[%d]: %w: missing id", j, ErrInvalidDefinition)
		}
		builder.WithChannel(thing.Channel{
			UID:               thing.NewChannelUID(uid, cd.ID),
			AcceptedValueType: cd.AcceptedType,
			Configuration:     config.New(cd.Config),
		})
	}

	return builder.Build()
}

// resolveIdentity derives the thing UID and type UID from a definition.
// An explicit uid wins and implies the type when type is omitted; with
// only a type, a random uid is generated under it.
func resolveIdentity(td thingDefinition) (thing.ThingUID, thing.ThingTypeUID, error) {
	if td.UID == "" && td.Type == "" {
		return thing.ThingUID{}, thing.ThingTypeUID{}, fmt.Errorf("%w: uid or type required", ErrInvalidDefinition)
	}

	if td.UID == "" {
		typeUID, err := thing.ParseThingTypeUID(td.Type)
		if err != nil {
			return thing.ThingUID{}, thing.ThingTypeUID{}, fmt.Errorf("type: %w", err)
		}
		return thing.NewRandomThingUID(typeUID), typeUID, nil
	}

	uid, err := thing.ParseThingUID(td.UID)
	if err != nil {
		return thing.ThingUID{}, thing.ThingTypeUID{}, fmt.Errorf("uid: %w", err)
	}
	typeUID := uid.TypeUID()
	if td.Type != "" {
		typeUID, err = thing.ParseThingTypeUID(td.Type)
		if err != nil {
			return thing.ThingUID{}, thing.ThingTypeUID{}, fmt.Errorf("type: %w", err)
		}
		if typeUID != uid.TypeUID() {
			return thing.ThingUID{}, thing.ThingTypeUID{}, fmt.Errorf(
				"%w: type %s does not match uid %s", ErrInvalidDefinition, typeUID, uid)
		}
	}
	return uid, typeUID, nil
}
