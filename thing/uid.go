package thing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// UID segments are joined with ':' and restricted to a conservative
// character set so UIDs stay usable as topic fragments and URL parts.
const uidSeparator = ":"

var segmentRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// splitUID splits s into validated segments. Returns ErrMalformedUID if
// any segment is empty or contains a character outside [A-Za-z0-9_-].
func splitUID(s string) ([]string, error) {
	segments := strings.Split(s, uidSeparator)
	for _, seg := range segments {
		if !segmentRegex.MatchString(seg) {
			return nil, fmt.Errorf("%w: %q", ErrMalformedUID, s)
		}
	}
	return segments, nil
}

// ThingTypeUID identifies the semantic type of a thing. It has exactly
// two segments: "binding:type".
type ThingTypeUID struct {
	Binding string
	TypeID  string
}

// NewThingTypeUID creates a type UID from its two segments. The segments
// are not validated; use ParseThingTypeUID for untrusted input.
func NewThingTypeUID(binding, typeID string) ThingTypeUID {
	return ThingTypeUID{Binding: binding, TypeID: typeID}
}

// ParseThingTypeUID parses "binding:type". Anything else is
// ErrMalformedUID.
func ParseThingTypeUID(s string) (ThingTypeUID, error) {
	segments, err := splitUID(s)
	if err != nil {
		return ThingTypeUID{}, err
	}
	if len(segments) != 2 {
		return ThingTypeUID{}, fmt.Errorf("%w: %q: want 2 segments, got %d", ErrMalformedUID, s, len(segments))
	}
	return ThingTypeUID{Binding: segments[0], TypeID: segments[1]}, nil
}

// String returns the canonical "binding:type" form.
func (u ThingTypeUID) String() string {
	return u.Binding + uidSeparator + u.TypeID
}

// IsZero reports whether the UID is the zero value.
func (u ThingTypeUID) IsZero() bool {
	return u.Binding == "" && u.TypeID == ""
}

// ThingUID identifies a thing: "binding:type:id". The id may itself span
// several segments (things attached below a bridge commonly carry the
// bridge id as a prefix, e.g. "knx:dimmer:mainbridge:living").
type ThingUID struct {
	Binding string
	TypeID  string
	ID      string
}

// NewThingUID creates a thing UID under the given type. The id is not
// validated; use ParseThingUID for untrusted input.
func NewThingUID(typeUID ThingTypeUID, id string) ThingUID {
	return ThingUID{Binding: typeUID.Binding, TypeID: typeUID.TypeID, ID: id}
}

// NewRandomThingUID creates a thing UID under the given type with a
// generated unique id segment.
func NewRandomThingUID(typeUID ThingTypeUID) ThingUID {
	return NewThingUID(typeUID, uuid.New().String())
}

// ParseThingUID parses "binding:type:id...". At least three segments are
// required; segments past the second are joined back into the id.
func ParseThingUID(s string) (ThingUID, error) {
	segments, err := splitUID(s)
	if err != nil {
		return ThingUID{}, err
	}
	if len(segments) < 3 {
		return ThingUID{}, fmt.Errorf("%w: %q: want at least 3 segments, got %d", ErrMalformedUID, s, len(segments))
	}
	return ThingUID{
		Binding: segments[0],
		TypeID:  segments[1],
		ID:      strings.Join(segments[2:], uidSeparator),
	}, nil
}

// String returns the canonical "binding:type:id" form.
func (u ThingUID) String() string {
	return u.Binding + uidSeparator + u.TypeID + uidSeparator + u.ID
}

// IsZero reports whether the UID is the zero value.
func (u ThingUID) IsZero() bool {
	return u.Binding == "" && u.TypeID == "" && u.ID == ""
}

// TypeUID returns the type portion of the thing UID.
func (u ThingUID) TypeUID() ThingTypeUID {
	return ThingTypeUID{Binding: u.Binding, TypeID: u.TypeID}
}

// ChannelUID identifies a channel within a thing. Its string form is the
// owning thing's UID with the channel id appended as a final segment.
type ChannelUID struct {
	Thing ThingUID
	ID    string
}

// NewChannelUID creates a channel UID under the given thing.
func NewChannelUID(thingUID ThingUID, id string) ChannelUID {
	return ChannelUID{Thing: thingUID, ID: id}
}

// ParseChannelUID parses "binding:type:thingid...:channelid". The last
// segment is the channel id; the rest must form a valid thing UID.
func ParseChannelUID(s string) (ChannelUID, error) {
	segments, err := splitUID(s)
	if err != nil {
		return ChannelUID{}, err
	}
	if len(segments) < 4 {
		return ChannelUID{}, fmt.Errorf("%w: %q: want at least 4 segments, got %d", ErrMalformedUID, s, len(segments))
	}
	last := len(segments) - 1
	return ChannelUID{
		Thing: ThingUID{
			Binding: segments[0],
			TypeID:  segments[1],
			ID:      strings.Join(segments[2:last], uidSeparator),
		},
		ID: segments[last],
	}, nil
}

// String returns the canonical "<thing-uid>:<channel-id>" form.
func (u ChannelUID) String() string {
	return u.Thing.String() + uidSeparator + u.ID
}

// IsZero reports whether the UID is the zero value.
func (u ChannelUID) IsZero() bool {
	return u.Thing.IsZero() && u.ID == ""
}
