package fit

// subfieldResolver picks a specialized fieldDescriptor for a dynamic field
// given the fields already decoded earlier in the same record. The dynamic
// set is finite and small (spec.md §9), so each message gets its own
// handler rather than a generic expression language.
type subfieldResolver func(decoded []DataMessageField) fieldDescriptor

var subfieldResolvers = map[GlobalMessageKind]map[uint8]subfieldResolver{
	MesgEvent: {
		3: resolveEventData,
	},
}

// resolveEventData implements Event.Data: its interpretation depends on the
// sibling Event.Event enum value decoded earlier in the same record.
func resolveEventData(decoded []DataMessageField) fieldDescriptor {
	for _, f := range decoded {
		if f.Identity.Name != "event" || len(f.Values) == 0 {
			continue
		}
		if f.Values[0].Kind != KindEnum {
			continue
		}
		switch f.Values[0].Enum.Raw {
		case 15: // SpeedHighAlert
			return fieldDescriptor{name: "speed_high_alert_value", base: BaseUint32, scale: 1000, hasScaleOffset: true}
		}
	}
	return fieldDescriptor{name: "data", base: BaseUint32}
}

// resolveDynamicField returns the descriptor to use for a dynamic field,
// falling back to the declared default when no resolver is registered or
// none of its cases match.
func resolveDynamicField(kind GlobalMessageKind, number uint8, decoded []DataMessageField, fallback fieldDescriptor) fieldDescriptor {
	if byField, ok := subfieldResolvers[kind]; ok {
		if resolver, ok := byField[number]; ok {
			return resolver(decoded)
		}
	}
	return fallback
}
