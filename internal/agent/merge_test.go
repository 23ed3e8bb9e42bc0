package agent

import "testing"

func TestApplyExtract_MergesAndOverwrites(t *testing.T) {
	record := WorkingRecord{}

	record = ApplyExtract(record, map[string]interface{}{
		"extracted_fields": map[string]interface{}{"hcpName": "Dr. Lee"},
	})
	if record["hcpName"] != "Dr. Lee" {
		t.Fatalf("expected Dr. Lee, got %v", record["hcpName"])
	}

	// Second extract overwrites, not appends
	record = ApplyExtract(record, map[string]interface{}{
		"extracted_fields": map[string]interface{}{"hcpName": "Dr. Patel"},
	})
	if record["hcpName"] != "Dr. Patel" {
		t.Errorf("expected overwrite to Dr. Patel, got %v", record["hcpName"])
	}
}

func TestApplyExtract_AbsentKeysUntouched(t *testing.T) {
	record := WorkingRecord{"sentiment": "Positive"}

	out := ApplyExtract(record, map[string]interface{}{
		"extracted_fields": map[string]interface{}{"hcpName": "Dr. Lee"},
	})
	if out["sentiment"] != "Positive" {
		t.Errorf("prior key lost: %+v", out)
	}
	if out["hcpName"] != "Dr. Lee" {
		t.Errorf("new key missing: %+v", out)
	}
}

func TestApplyExtract_MalformedPayloadIsNoOp(t *testing.T) {
	record := WorkingRecord{"hcpName": "Dr. Lee"}
	cases := []map[string]interface{}{
		{},
		{"extracted_fields": "not an object"},
		{"extracted_fields": []interface{}{"a", "b"}},
		{"extracted_fields": nil},
	}
	for _, payload := range cases {
		out := ApplyExtract(record, payload)
		if len(out) != 1 || out["hcpName"] != "Dr. Lee" {
			t.Errorf("payload %+v should be a no-op, got %+v", payload, out)
		}
	}
}

func TestApplyExtract_CopyOnWrite(t *testing.T) {
	record := WorkingRecord{}
	out := ApplyExtract(record, map[string]interface{}{
		"extracted_fields": map[string]interface{}{"hcpName": "Dr. Lee"},
	})
	if len(record) != 0 {
		t.Errorf("input record mutated: %+v", record)
	}
	if len(out) != 1 {
		t.Errorf("output record missing merge: %+v", out)
	}
}

func TestApplyEdit_SetsField(t *testing.T) {
	record := WorkingRecord{"sentiment": "Neutral"}
	out := ApplyEdit(record, map[string]interface{}{
		"field_to_edit": "sentiment",
		"new_value":     "Positive",
	})
	if out["sentiment"] != "Positive" {
		t.Errorf("expected Positive, got %v", out["sentiment"])
	}
	if record["sentiment"] != "Neutral" {
		t.Errorf("input record mutated: %+v", record)
	}
}

func TestApplyEdit_NoOpCases(t *testing.T) {
	record := WorkingRecord{"sentiment": "Neutral"}
	cases := []map[string]interface{}{
		{"field_to_edit": "sentiment", "new_value": nil},
		{"field_to_edit": "sentiment"},
		{"new_value": "Positive"},
		{"field_to_edit": "", "new_value": "Positive"},
	}
	for _, payload := range cases {
		out := ApplyEdit(record, payload)
		if len(out) != 1 || out["sentiment"] != "Neutral" {
			t.Errorf("payload %+v should be a no-op, got %+v", payload, out)
		}
	}
}

func TestApplyEdit_EmptyStringValueAllowed(t *testing.T) {
	// Only nil is a no-op; an explicit empty string is a legitimate overwrite
	record := WorkingRecord{"outcomes": "TBD"}
	out := ApplyEdit(record, map[string]interface{}{
		"field_to_edit": "outcomes",
		"new_value":     "",
	})
	if v, ok := out["outcomes"]; !ok || v != "" {
		t.Errorf("expected empty-string overwrite, got %+v", out)
	}
}
