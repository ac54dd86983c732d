package thing

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Ontrackx/smarthome/config"
)

// Builder accumulates field values and constructs an immutable Thing.
// The variant (plain or bridge) is chosen by the constructor and cannot
// change afterwards. Builders are not safe for concurrent use.
type Builder struct {
	kind          Kind
	uid           ThingUID
	typeUID       ThingTypeUID
	label         string
	bridgeUID     *ThingUID
	configuration config.Configuration
	properties    map[string]string
	channels      []Channel
}

// NewThingBuilder starts building a plain thing with the given identity.
func NewThingBuilder(typeUID ThingTypeUID, uid ThingUID) *Builder {
	return &Builder{kind: KindThing, uid: uid, typeUID: typeUID}
}

// NewBridgeBuilder starts building a bridge with the given identity.
func NewBridgeBuilder(typeUID ThingTypeUID, uid ThingUID) *Builder {
	return &Builder{kind: KindBridge, uid: uid, typeUID: typeUID}
}

// WithLabel sets the human-readable name.
func (b *Builder) WithLabel(label string) *Builder {
	b.label = label
	return b
}

// WithBridge sets the UID of the bridge the thing is attached to. Pass
// nil for a top-level thing.
func (b *Builder) WithBridge(bridgeUID *ThingUID) *Builder {
	if bridgeUID == nil {
		b.bridgeUID = nil
		return b
	}
	uid := *bridgeUID
	b.bridgeUID = &uid
	return b
}

// WithConfiguration sets the thing's configuration wholesale.
func (b *Builder) WithConfiguration(cfg config.Configuration) *Builder {
	b.configuration = cfg
	return b
}

// WithProperties sets the thing's read-only metadata wholesale.
func (b *Builder) WithProperties(properties map[string]string) *Builder {
	b.properties = properties
	return b
}

// WithChannel appends one channel to the accumulated list.
func (b *Builder) WithChannel(channel Channel) *Builder {
	b.channels = append(b.channels, channel)
	return b
}

// WithChannels replaces the accumulated channel list.
func (b *Builder) WithChannels(channels []Channel) *Builder {
	b.channels = slices.Clone(channels)
	return b
}

// Build validates the accumulated state and constructs the thing.
// Returns ErrIncompleteThing when the uid or type uid is missing; a
// builder obtained from an existing thing cannot hit this.
func (b *Builder) Build() (*Thing, error) {
	if b.uid.IsZero() {
		return nil, fmt.Errorf("%w: missing uid", ErrIncompleteThing)
	}
	if b.typeUID.IsZero() {
		return nil, fmt.Errorf("%w: missing type uid", ErrIncompleteThing)
	}

	t := &Thing{
		uid:           b.uid,
		typeUID:       b.typeUID,
		kind:          b.kind,
		label:         b.label,
		configuration: b.configuration,
		channels:      slices.Clone(b.channels),
	}
	if b.bridgeUID != nil {
		uid := *b.bridgeUID
		t.bridgeUID = &uid
	}
	if b.properties != nil {
		t.properties = maps.Clone(b.properties)
	}
	return t, nil
}
