package thing

import (
	"errors"
	"testing"

	"github.com/Ontrackx/smarthome/config"
)

func TestBuilderBuild(t *testing.T) {
	th, err := NewThingBuilder(testTypeUID, testUID).
		WithLabel("Living Room Dimmer").
		WithBridge(&testBridgeUID).
		WithConfiguration(config.New(map[string]any{"address": "1/2/3"})).
		WithProperties(map[string]string{"vendor": "acme"}).
		WithChannel(Channel{UID: NewChannelUID(testUID, "brightness"), AcceptedValueType: "Dimmer"}).
		Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}

	if th.UID() != testUID {
		t.Errorf("UID() = %v, want %v", th.UID(), testUID)
	}
	if th.TypeUID() != testTypeUID {
		t.Errorf("TypeUID() = %v, want %v", th.TypeUID(), testTypeUID)
	}
	if th.Kind() != KindThing {
		t.Errorf("Kind() = %v, want KindThing", th.Kind())
	}
	if th.Label() != "Living Room Dimmer" {
		t.Errorf("Label() = %q", th.Label())
	}
	if got := th.BridgeUID(); got == nil || *got != testBridgeUID {
		t.Errorf("BridgeUID() = %v, want %v", got, testBridgeUID)
	}
	if got, ok := th.Configuration().String("address"); !ok || got != "1/2/3" {
		t.Errorf("Configuration()[address] = %q, %v", got, ok)
	}
	if ch, ok := th.Channel("brightness"); !ok || ch.AcceptedValueType != "Dimmer" {
		t.Errorf("Channel(brightness) = %+v, %v", ch, ok)
	}
	if _, ok := th.Channel("missing"); ok {
		t.Error("Channel(missing) reported ok")
	}
}

func TestBuilderIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
	}{
		{
			name:    "missing uid",
			builder: NewThingBuilder(testTypeUID, ThingUID{}),
		},
		{
			name:    "missing type uid",
			builder: NewThingBuilder(ThingTypeUID{}, testUID),
		},
		{
			name:    "missing both",
			builder: NewBridgeBuilder(ThingTypeUID{}, ThingUID{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.builder.Build(); !errors.Is(err, ErrIncompleteThing) {
				t.Errorf("Build() = %v, want ErrIncompleteThing", err)
			}
		})
	}
}

func TestBuilderWithChannelsReplaces(t *testing.T) {
	builder := NewThingBuilder(testTypeUID, testUID).
		WithChannel(Channel{UID: NewChannelUID(testUID, "a")}).
		WithChannel(Channel{UID: NewChannelUID(testUID, "b")}).
		WithChannels([]Channel{{UID: NewChannelUID(testUID, "c")}})

	th, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}
	channels := th.Channels()
	if len(channels) != 1 || channels[0].UID.ID != "c" {
		t.Errorf("Channels() = %v, want exactly [c]", channels)
	}
}

func TestBuilderWithBridgeNilClears(t *testing.T) {
	th, err := NewThingBuilder(testTypeUID, testUID).
		WithBridge(&testBridgeUID).
		WithBridge(nil).
		Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}
	if th.BridgeUID() != nil {
		t.Errorf("BridgeUID() = %v, want nil", th.BridgeUID())
	}
}

func TestBuiltThingIsIsolated(t *testing.T) {
	properties := map[string]string{"vendor": "acme"}
	channels := []Channel{{UID: NewChannelUID(testUID, "a"), AcceptedValueType: "Switch"}}

	th, err := NewThingBuilder(testTypeUID, testUID).
		WithProperties(properties).
		WithChannels(channels).
		Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}

	// Mutating the inputs after Build must not reach the thing.
	properties["vendor"] = "other"
	channels[0].AcceptedValueType = "Dimmer"

	if th.Properties()["vendor"] != "acme" {
		t.Error("thing shares the caller's properties map")
	}
	if th.Channels()[0].AcceptedValueType != "Switch" {
		t.Error("thing shares the caller's channel slice")
	}

	// Mutating getter results must not reach the thing either.
	th.Properties()["vendor"] = "mutated"
	th.Channels()[0].AcceptedValueType = "mutated"
	if th.Properties()["vendor"] != "acme" || th.Channels()[0].AcceptedValueType != "Switch" {
		t.Error("getter results alias internal state")
	}
}

func TestAddChildOnPlainThing(t *testing.T) {
	plain, err := NewThingBuilder(testTypeUID, testUID).Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}
	child, err := NewThingBuilder(testTypeUID, NewThingUID(testTypeUID, "bedroom")).Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}

	if err := plain.AddChild(child); !errors.Is(err, ErrNotABridge) {
		t.Errorf("AddChild on plain thing = %v, want ErrNotABridge", err)
	}
}

func TestAddChildOnBridge(t *testing.T) {
	bridge, err := NewBridgeBuilder(NewThingTypeUID("knx", "gateway"), testBridgeUID).Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}
	child, err := NewThingBuilder(testTypeUID, testUID).Build()
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}

	if err := bridge.AddChild(child); err != nil {
		t.Fatalf("AddChild() = %v, want nil", err)
	}
	children := bridge.Children()
	if len(children) != 1 || children[0] != child {
		t.Errorf("Children() = %v, want [child]", children)
	}
}
