package thing

import (
	"fmt"

	"github.com/Ontrackx/smarthome/config"
)

// ThingDTO is the partial, nullable-field representation of a thing used
// to express a requested change. Nil means "leave unchanged"; a non-nil
// value replaces the whole field. For maps and the channel list, a
// present-but-empty value is distinct from an absent one, which is why
// the maps stay reference types and the scalars are pointers.
//
// UID and ThingTypeUID describe identity for full representations
// (ToDTO, provisioning); Merge ignores them — identity never changes
// across a merge.
type ThingDTO struct {
	UID           string            `json:"UID,omitempty"`
	ThingTypeUID  string            `json:"thingTypeUID,omitempty"`
	Label         *string           `json:"label,omitempty"`
	BridgeUID     *string           `json:"bridgeUID,omitempty"`
	Configuration map[string]any    `json:"configuration,omitempty"`
	Properties    map[string]string `json:"properties,omitempty"`
	Channels      []ChannelDTO      `json:"channels,omitempty"`
}

// ChannelDTO is the wire representation of a single channel.
type ChannelDTO struct {
	UID               string         `json:"uid"`
	AcceptedValueType string         `json:"acceptedValueType,omitempty"`
	Configuration     map[string]any `json:"configuration,omitempty"`
}

// ToDTO maps a thing to its full DTO representation. Children of a
// bridge are not part of the representation; they are reachable through
// their own UIDs.
func ToDTO(t *Thing) ThingDTO {
	dto := ThingDTO{
		UID:          t.uid.String(),
		ThingTypeUID: t.typeUID.String(),
	}
	if t.label != "" {
		label := t.label
		dto.Label = &label
	}
	if t.bridgeUID != nil {
		bridge := t.bridgeUID.String()
		dto.BridgeUID = &bridge
	}
	if t.configuration != nil {
		dto.Configuration = t.configuration.Copy()
	}
	dto.Properties = t.Properties()
	if t.channels != nil {
		dto.Channels = make([]ChannelDTO, len(t.channels))
		for i, ch := range t.channels {
			dto.Channels[i] = channelToDTO(ch)
		}
	}
	return dto
}

// FromDTO constructs a new plain thing from a full DTO. The DTO must
// carry a parseable UID and type UID; bridges are provisioned through
// FromDTOWithKind.
func FromDTO(dto ThingDTO) (*Thing, error) {
	return FromDTOWithKind(dto, KindThing)
}

// FromDTOWithKind constructs a new thing of the given variant from a
// full DTO.
func FromDTOWithKind(dto ThingDTO, kind Kind) (*Thing, error) {
	uid, err := ParseThingUID(dto.UID)
	if err != nil {
		return nil, fmt.Errorf("thing uid: %w", err)
	}
	typeUID, err := ParseThingTypeUID(dto.ThingTypeUID)
	if err != nil {
		return nil, fmt.Errorf("thing type uid: %w", err)
	}

	var builder *Builder
	if kind == KindBridge {
		builder = NewBridgeBuilder(typeUID, uid)
	} else {
		builder = NewThingBuilder(typeUID, uid)
	}

	if dto.Label != nil {
		builder.WithLabel(*dto.Label)
	}
	if dto.BridgeUID != nil {
		bridgeUID, err := ParseThingUID(*dto.BridgeUID)
		if err != nil {
			return nil, fmt.Errorf("bridge uid: %w", err)
		}
		builder.WithBridge(&bridgeUID)
	}
	if dto.Configuration != nil {
		builder.WithConfiguration(config.New(dto.Configuration))
	}
	if dto.Properties != nil {
		builder.WithProperties(dto.Properties)
	}
	for _, chDTO := range dto.Channels {
		ch, err := channelFromDTO(chDTO)
		if err != nil {
			return nil, err
		}
		builder.WithChannel(ch)
	}
	return builder.Build()
}

// channelFromDTO converts one channel record into a constructed Channel.
func channelFromDTO(dto ChannelDTO) (Channel, error) {
	uid, err := ParseChannelUID(dto.UID)
	if err != nil {
		return Channel{}, fmt.Errorf("channel uid: %w", err)
	}
	return Channel{
		UID:               uid,
		AcceptedValueType: dto.AcceptedValueType,
		Configuration:     config.New(dto.Configuration),
	}, nil
}

// channelToDTO maps a channel to its wire representation.
func channelToDTO(ch Channel) ChannelDTO {
	dto := ChannelDTO{
		UID:               ch.UID.String(),
		AcceptedValueType: ch.AcceptedValueType,
	}
	if ch.Configuration != nil {
		dto.Configuration = ch.Configuration.Copy()
	}
	return dto
}
