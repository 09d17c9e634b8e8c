package fit

import "fmt"

// GlobalMessageKind is the 16-bit global message number declared by a
// definition record. Numbers outside the catalog decode as an unknown kind
// carrying their raw value.
type GlobalMessageKind uint16

const (
	MesgFileId           GlobalMessageKind = 0
	MesgCapabilities     GlobalMessageKind = 1
	MesgDeviceSettings   GlobalMessageKind = 2
	MesgUserProfile      GlobalMessageKind = 3
	MesgZonesTarget      GlobalMessageKind = 7
	MesgSport            GlobalMessageKind = 12
	MesgGoal             GlobalMessageKind = 15
	MesgSession          GlobalMessageKind = 18
	MesgLap              GlobalMessageKind = 19
	MesgRecord           GlobalMessageKind = 20
	MesgEvent            GlobalMessageKind = 21
	MesgDeviceInfo       GlobalMessageKind = 23
	MesgWorkout          GlobalMessageKind = 26
	MesgWorkoutStep      GlobalMessageKind = 27
	MesgCourse           GlobalMessageKind = 31
	MesgCoursePoint      GlobalMessageKind = 32
	MesgTotals           GlobalMessageKind = 33
	MesgActivity         GlobalMessageKind = 34
	MesgFileCreator      GlobalMessageKind = 49
	MesgLength           GlobalMessageKind = 101
	MesgDeveloperDataId  GlobalMessageKind = 207
	MesgFieldDescription GlobalMessageKind = 206
)

var globalMessageNames = map[GlobalMessageKind]string{
	MesgFileId:           "FileId",
	MesgCapabilities:     "Capabilities",
	MesgDeviceSettings:   "DeviceSettings",
	MesgUserProfile:      "UserProfile",
	MesgZonesTarget:      "ZonesTarget",
	MesgSport:            "Sport",
	MesgGoal:             "Goal",
	MesgSession:          "Session",
	MesgLap:              "Lap",
	MesgRecord:           "Record",
	MesgEvent:            "Event",
	MesgDeviceInfo:       "DeviceInfo",
	MesgWorkout:          "Workout",
	MesgWorkoutStep:      "WorkoutStep",
	MesgCourse:           "Course",
	MesgCoursePoint:      "CoursePoint",
	MesgTotals:           "Totals",
	MesgActivity:         "Activity",
	MesgFileCreator:      "FileCreator",
	MesgLength:           "Length",
	MesgDeveloperDataId:  "DeveloperDataId",
	MesgFieldDescription: "FieldDescription",
}

func (k GlobalMessageKind) String() string {
	if name, ok := globalMessageNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(k))
}

// FieldIdentity names one field of a decoded message: either a catalog-known
// field (Name set), an unrecognized field number of a known or unknown
// message (Name empty), or a developer field (Developer set).
type FieldIdentity struct {
	Number    uint8
	Name      string
	Developer *DeveloperFieldDescription
}

func (f FieldIdentity) String() string {
	if f.Developer != nil {
		if f.Developer.Name != "" {
			return f.Developer.Name
		}
		return fmt.Sprintf("developer(%d,%d)", f.Developer.DeveloperIndex, f.Developer.FieldNumber)
	}
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("unknown_field_%d", f.Number)
}

// fieldDescriptor is the catalog's answer for one (message, field number)
// pair: what to call the field, how to parse it off the wire, and whether a
// scale/offset applies.
type fieldDescriptor struct {
	name           string
	base           BaseType
	enum           enumTable
	scale          float64
	offset         float64
	hasScaleOffset bool
	dynamic        bool
	dateTime       bool
}

var messageCatalog = map[GlobalMessageKind]map[uint8]fieldDescriptor{
	MesgFileId: {
		0:   {name: "type", base: BaseEnum, enum: fileEnum},
		1:   {name: "manufacturer", base: BaseUint16, enum: manufacturerEnum},
		2:   {name: "product", base: BaseUint16},
		3:   {name: "serial_number", base: BaseUint32z},
		4:   {name: "time_created", base: BaseUint32, dateTime: true},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgFileCreator: {
		0: {name: "software_version", base: BaseUint16},
		1: {name: "hardware_version", base: BaseUint8},
	},
	MesgSession: {
		0:   {name: "event", base: BaseEnum, enum: eventEnum},
		1:   {name: "event_type", base: BaseEnum, enum: eventTypeEnum},
		5:   {name: "sport", base: BaseEnum, enum: sportEnum},
		7:   {name: "total_elapsed_time", base: BaseUint32, scale: 1000, hasScaleOffset: true},
		8:   {name: "total_timer_time", base: BaseUint32, scale: 1000, hasScaleOffset: true},
		9:   {name: "total_distance", base: BaseUint32, scale: 100, hasScaleOffset: true},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgLap: {
		0:   {name: "event", base: BaseEnum, enum: eventEnum},
		1:   {name: "event_type", base: BaseEnum, enum: eventTypeEnum},
		7:   {name: "total_elapsed_time", base: BaseUint32, scale: 1000, hasScaleOffset: true},
		9:   {name: "total_distance", base: BaseUint32, scale: 100, hasScaleOffset: true},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgRecord: {
		0:   {name: "position_lat", base: BaseSint32},
		1:   {name: "position_long", base: BaseSint32},
		3:   {name: "heart_rate", base: BaseUint8},
		4:   {name: "cadence", base: BaseUint8},
		5:   {name: "distance", base: BaseUint32, scale: 100, hasScaleOffset: true},
		6:   {name: "speed", base: BaseUint16, scale: 1000, hasScaleOffset: true},
		7:   {name: "power", base: BaseUint16},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgEvent: {
		0:   {name: "event", base: BaseEnum, enum: eventEnum},
		1:   {name: "event_type", base: BaseEnum, enum: eventTypeEnum},
		3:   {name: "data", base: BaseUint32, dynamic: true},
		4:   {name: "event_group", base: BaseUint8},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgDeviceInfo: {
		0:   {name: "device_index", base: BaseUint8},
		1:   {name: "device_type", base: BaseUint8},
		2:   {name: "manufacturer", base: BaseUint16, enum: manufacturerEnum},
		3:   {name: "serial_number", base: BaseUint32z},
		4:   {name: "product", base: BaseUint16},
		5:   {name: "software_version", base: BaseUint16, scale: 100, hasScaleOffset: true},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgActivity: {
		0:   {name: "total_timer_time", base: BaseUint32, scale: 1000, hasScaleOffset: true},
		1:   {name: "num_sessions", base: BaseUint16},
		2:   {name: "type", base: BaseEnum},
		3:   {name: "event", base: BaseEnum, enum: eventEnum},
		4:   {name: "event_type", base: BaseEnum, enum: eventTypeEnum},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgWorkout: {
		4: {name: "sport", base: BaseEnum, enum: sportEnum},
		8: {name: "num_valid_steps", base: BaseUint16},
	},
	MesgWorkoutStep: {
		0: {name: "step_name", base: BaseString},
		1: {name: "duration_type", base: BaseEnum},
		2: {name: "duration_value", base: BaseUint32},
	},
	MesgLength: {
		0:   {name: "event", base: BaseEnum, enum: eventEnum},
		1:   {name: "event_type", base: BaseEnum, enum: eventTypeEnum},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgCourse: {
		4: {name: "name", base: BaseString},
		5: {name: "sport", base: BaseEnum, enum: sportEnum},
	},
	MesgCoursePoint: {
		1:   {name: "type", base: BaseEnum},
		6:   {name: "name", base: BaseString},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgTotals: {
		0:   {name: "timer_time", base: BaseUint32},
		1:   {name: "distance", base: BaseUint32},
		253: {name: "timestamp", base: BaseUint32, dateTime: true},
	},
	MesgSport: {
		0: {name: "sport", base: BaseEnum, enum: sportEnum},
		1: {name: "sub_sport", base: BaseEnum},
		2: {name: "name", base: BaseString},
	},
	MesgUserProfile: {
		0: {name: "weight", base: BaseUint16, scale: 10, hasScaleOffset: true},
		1: {name: "gender", base: BaseEnum},
	},
	MesgZonesTarget: {
		1: {name: "max_heart_rate", base: BaseUint8},
		2: {name: "threshold_heart_rate", base: BaseUint8},
	},
	MesgGoal: {
		0: {name: "sport", base: BaseEnum, enum: sportEnum},
		3: {name: "value", base: BaseUint32},
	},
	MesgFieldDescription: {
		0: {name: "developer_data_index", base: BaseUint8},
		1: {name: "field_definition_number", base: BaseUint8},
		2: {name: "fit_base_type_id", base: BaseEnum, enum: fitBaseTypeEnum},
		3: {name: "field_name", base: BaseString},
		8: {name: "units", base: BaseString},
	},
	MesgDeveloperDataId: {
		0: {name: "developer_id", base: BaseByte},
		3: {name: "developer_data_index", base: BaseUint8},
	},
}

// lookupField returns the catalog descriptor for (kind, number), and false
// if no entry exists. Callers fall back to fieldDescriptor{base: BaseUint8}
// per spec.md §4.3's stable "unknown field N, parse as u8" default.
func lookupField(kind GlobalMessageKind, number uint8) (fieldDescriptor, bool) {
	fields, ok := messageCatalog[kind]
	if !ok {
		return fieldDescriptor{}, false
	}
	d, ok := fields[number]
	return d, ok
}

var unknownFieldDefault = fieldDescriptor{base: BaseUint8}
