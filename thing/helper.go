package thing

import (
	"sort"
	"strings"

	"github.com/Ontrackx/smarthome/config"
)

// Equal reports whether two things are semantically identical across
// identity, bridge linkage, configuration and channel set. Channel order
// is not significant (channels are identified by uid), and children of a
// bridge are deliberately ignored.
//
// A nil configuration is only equal to another nil configuration, never
// to a present-but-empty one.
//
// Both arguments must be non-nil; passing nil is a programming error and
// panics.
func Equal(a, b *Thing) bool {
	if a == nil || b == nil {
		panic("thing: Equal requires non-nil things")
	}
	if a.uid != b.uid {
		return false
	}
	if a.bridgeUID == nil && b.bridgeUID != nil {
		return false
	}
	if a.bridgeUID != nil && (b.bridgeUID == nil || *a.bridgeUID != *b.bridgeUID) {
		return false
	}
	// configuration
	if a.configuration == nil && b.configuration != nil {
		return false
	}
	if a.configuration != nil && (b.configuration == nil || !a.configuration.Equal(b.configuration)) {
		return false
	}
	// channels
	if len(a.channels) != len(b.channels) {
		return false
	}
	return channelKey(a.channels) == channelKey(b.channels)
}

// channelKey projects a channel list onto an order-independent string
// key: each channel becomes "<uid>#<acceptedValueType>", the projections
// are sorted and comma-joined. Sorting the serialized form gives an
// order-free comparison on plain string ordering alone.
func channelKey(channels []Channel) string {
	keys := make([]string, len(channels))
	for i, ch := range channels {
		keys[i] = ch.UID.String() + "#" + ch.AcceptedValueType
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// Merge builds a new thing from an existing one and a partial update.
// Wherever the DTO carries nil, the existing value is kept; wherever it
// carries a value, that value replaces the whole field. Maps and the
// channel list are replaced wholesale, never merged entry by entry, so
// an update that intends to change one entry must carry the full
// collection.
//
// Two collection fields differ on present-but-empty:
//   - an empty configuration map keeps the existing configuration;
//   - an empty properties map replaces the existing properties.
//
// The variant and identity always come from the existing thing, never
// from the DTO. If the existing thing is a bridge, its children are
// re-registered on the merged bridge in their original order; the old
// instance should be discarded by the caller.
//
// The existing thing is never mutated. Errors: ErrNilThing for a nil
// existing thing, ErrMalformedUID for an unparseable bridge or channel
// uid in the DTO, ErrIncompleteThing propagated from the builder.
func Merge(t *Thing, dto ThingDTO) (*Thing, error) {
	if t == nil {
		return nil, ErrNilThing
	}

	var builder *Builder
	switch t.kind {
	case KindBridge:
		builder = NewBridgeBuilder(t.typeUID, t.uid)
	default:
		builder = NewThingBuilder(t.typeUID, t.uid)
	}

	if dto.Label != nil {
		builder.WithLabel(*dto.Label)
	} else {
		builder.WithLabel(t.label)
	}

	if dto.BridgeUID != nil {
		bridgeUID, err := ParseThingUID(*dto.BridgeUID)
		if err != nil {
			return nil, err
		}
		builder.WithBridge(&bridgeUID)
	} else {
		builder.WithBridge(t.bridgeUID)
	}

	if len(dto.Configuration) > 0 {
		builder.WithConfiguration(config.New(dto.Configuration))
	} else {
		builder.WithConfiguration(t.configuration)
	}

	if dto.Properties != nil {
		builder.WithProperties(dto.Properties)
	} else {
		builder.WithProperties(t.properties)
	}

	if dto.Channels != nil {
		channels := make([]Channel, len(dto.Channels))
		for i, chDTO := range dto.Channels {
			ch, err := channelFromDTO(chDTO)
			if err != nil {
				return nil, err
			}
			channels[i] = ch
		}
		builder.WithChannels(channels)
	} else {
		builder.WithChannels(t.channels)
	}

	merged, err := builder.Build()
	if err != nil {
		return nil, err
	}

	// Keep all child things in place on a merged bridge. No dedup, no
	// check that the child's own BridgeUID matches.
	if t.kind == KindBridge {
		for _, child := range t.children {
			if err := merged.AddChild(child); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}
