package thing

import (
	"maps"
	"slices"

	"github.com/Ontrackx/smarthome/config"
)

// Kind distinguishes the two thing variants. The variant is fixed when a
// builder is created and never changes across a merge.
type Kind int

// Kind constants.
const (
	// KindThing is a plain thing with no children.
	KindThing Kind = iota
	// KindBridge is a thing that owns references to child things.
	KindBridge
)

// String returns the kind name for logging.
func (k Kind) String() string {
	if k == KindBridge {
		return "bridge"
	}
	return "thing"
}

// Channel is a named interaction point exposed by a thing. Channels are
// plain values; copying one is safe.
type Channel struct {
	UID               ChannelUID
	AcceptedValueType string
	Configuration     config.Configuration
}

// Thing represents a managed device or service instance. Things are
// immutable once built: all state is set through a Builder and only read
// afterwards. The single exception is AddChild on the bridge variant,
// which re-attaches children after construction.
type Thing struct {
	uid           ThingUID
	typeUID       ThingTypeUID
	kind          Kind
	label         string
	bridgeUID     *ThingUID
	configuration config.Configuration
	properties    map[string]string
	channels      []Channel
	children      []*Thing
}

// UID returns the thing's unique identifier.
func (t *Thing) UID() ThingUID { return t.uid }

// TypeUID returns the thing's semantic type.
func (t *Thing) TypeUID() ThingTypeUID { return t.typeUID }

// Kind returns the thing's variant.
func (t *Thing) Kind() Kind { return t.kind }

// Label returns the human-readable name, which may be empty.
func (t *Thing) Label() string { return t.label }

// BridgeUID returns the UID of the bridge this thing is attached to, or
// nil for top-level things. The returned pointer is a copy; mutating it
// does not affect the thing.
func (t *Thing) BridgeUID() *ThingUID {
	if t.bridgeUID == nil {
		return nil
	}
	uid := *t.bridgeUID
	return &uid
}

// Configuration returns the thing's configuration, or nil when it has
// none. The returned map is shared; treat it as read-only.
func (t *Thing) Configuration() config.Configuration { return t.configuration }

// Properties returns a copy of the thing's read-only metadata.
func (t *Thing) Properties() map[string]string {
	if t.properties == nil {
		return nil
	}
	return maps.Clone(t.properties)
}

// Channels returns a copy of the thing's channel list in declaration
// order.
func (t *Thing) Channels() []Channel {
	return slices.Clone(t.channels)
}

// Channel returns the channel with the given id, or false when the thing
// has no such channel.
func (t *Thing) Channel(id string) (Channel, bool) {
	for _, ch := range t.channels {
		if ch.UID.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// AddChild registers a child thing on a bridge. It is part of the bridge
// variant's contract: building a bridge and attaching children are two
// separate phases, so a rebuilt bridge can take over the children of the
// instance it replaces. Returns ErrNotABridge on a plain thing.
//
// No validation is done against the child's own BridgeUID, and the same
// child may be registered more than once; callers own that discipline.
func (t *Thing) AddChild(child *Thing) error {
	if t.kind != KindBridge {
		return ErrNotABridge
	}
	t.children = append(t.children, child)
	return nil
}

// Children returns a copy of the bridge's child list in registration
// order. It is empty for plain things.
func (t *Thing) Children() []*Thing {
	return slices.Clone(t.children)
}
