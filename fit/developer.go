package fit

// DeveloperFieldDescription is a publisher-defined field whose schema the
// file declares via a FieldDescription data record, referenced by later
// definition records that carry the developer-fields-present flag.
type DeveloperFieldDescription struct {
	DeveloperIndex uint8
	FieldNumber    uint8
	BaseType       BaseType
	Name           string
	Units          string
}

// harvestDeveloperDescription extracts a DeveloperFieldDescription from a
// fully-decoded FieldDescription data message, per spec.md §4.4.5. It
// returns false if the message is missing one of the required fields.
func harvestDeveloperDescription(msg DataMessage) (DeveloperFieldDescription, bool) {
	var (
		desc         DeveloperFieldDescription
		haveIndex    bool
		haveFieldNum bool
		haveBaseType bool
	)
	for _, f := range msg.Fields {
		if len(f.Values) == 0 {
			continue
		}
		switch f.Identity.Name {
		case "developer_data_index":
			desc.DeveloperIndex = uint8(f.Values[0].Uint)
			haveIndex = true
		case "field_definition_number":
			desc.FieldNumber = uint8(f.Values[0].Uint)
			haveFieldNum = true
		case "fit_base_type_id":
			desc.BaseType = BaseType(f.Values[0].Enum.Raw)
			haveBaseType = true
		case "field_name":
			desc.Name = f.Values[0].Str
		case "units":
			desc.Units = f.Values[0].Str
		}
	}
	if !haveIndex || !haveFieldNum || !haveBaseType {
		return DeveloperFieldDescription{}, false
	}
	return desc, true
}
