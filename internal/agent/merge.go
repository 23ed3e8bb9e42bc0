package agent

// ApplyExtract merges the payload's extracted_fields into a copy of the
// record, last writer wins per key. A missing or non-object payload is a
// no-op, never a failure.
func ApplyExtract(record WorkingRecord, payload map[string]interface{}) WorkingRecord {
	out := record.Clone()
	extracted, ok := payload["extracted_fields"].(map[string]interface{})
	if !ok {
		return out
	}
	for k, v := range extracted {
		out[k] = v
	}
	return out
}

// ApplyEdit overwrites a single field on a copy of the record. Requires both
// field_to_edit and a non-nil new_value; anything else is a no-op. Keys are
// never cleared to absent.
func ApplyEdit(record WorkingRecord, payload map[string]interface{}) WorkingRecord {
	out := record.Clone()
	field, ok := payload["field_to_edit"].(string)
	if !ok || field == "" {
		return out
	}
	value, present := payload["new_value"]
	if !present || value == nil {
		return out
	}
	out[field] = value
	return out
}
