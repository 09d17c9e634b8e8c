package fit

// enumTable maps a raw integer to its named variant for one FIT enum type.
// Values outside the table decode as an unknown, but valid, enum variant.
type enumTable map[uint32]string

func resolveEnum(table enumTable, raw uint32) EnumVariant {
	if name, ok := table[raw]; ok {
		return EnumVariant{Raw: raw, Name: name, Known: true}
	}
	return EnumVariant{Raw: raw}
}

// File is the FIT file-type enum (FileId.Type).
var fileEnum = enumTable{
	1:  "Device",
	2:  "Settings",
	4:  "Activity",
	6:  "Workout",
	7:  "Course",
	9:  "Schedules",
	11: "Weight",
	14: "BloodPressure",
	15: "MonitoringA",
	20: "ActivitySummary",
	28: "MonitoringDaily",
	32: "MonitoringB",
}

// Sport is the FIT sport enum (Sport.Sport, Session.Sport, Workout.Sport,
// Course.Sport, Goal.Sport).
var sportEnum = enumTable{
	0:  "Generic",
	1:  "Running",
	2:  "Cycling",
	5:  "Swimming",
	10: "Training",
	15: "AlpineSkiing",
	37: "Rowing",
}

// Event is the FIT event enum (Event.Event). Covers the subset this module's
// dynamic subfield resolver and test fixtures exercise, plus the common
// timer/workout lifecycle events.
var eventEnum = enumTable{
	0:  "Timer",
	3:  "Workout",
	4:  "WorkoutStep",
	7:  "PoolLap",
	8:  "BattLow",
	9:  "TimeDuration",
	15: "SpeedHighAlert",
	32: "RearGearChange",
	72: "TankPressureCritical",
}

// EventType is the FIT event_type enum (Event.EventType).
var eventTypeEnum = enumTable{
	0: "Start",
	1: "Stop",
	2: "ConsecutiveDepreciated",
	3: "Marker",
	4: "StopAll",
}

// Manufacturer is the FIT manufacturer enum (DeviceInfo.Manufacturer,
// FileId.Manufacturer). A small representative subset.
var manufacturerEnum = enumTable{
	1:   "Garmin",
	13:  "Dynastream",
	255: "Development",
	260: "Zwift",
}

// FitBaseType is the enum FieldDescription.FitBaseTypeId carries, mapping
// 1:1 onto the BaseType codes in basetype.go but declared separately since it is
// itself an enum-typed field in the wire format.
var fitBaseTypeEnum = enumTable{
	0x00: "Enum",
	0x01: "Sint8",
	0x02: "Uint8",
	0x83: "Sint16",
	0x84: "Uint16",
	0x85: "Sint32",
	0x86: "Uint32",
	0x07: "String",
	0x88: "Float32",
	0x89: "Float64",
	0x0A: "Uint8z",
	0x8B: "Uint16z",
	0x8C: "Uint32z",
	0x0D: "Byte",
	0x8E: "Sint64",
	0x8F: "Uint64",
	0x90: "Uint64z",
}
