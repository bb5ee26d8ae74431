package handler

import "testing"

func TestSetOptional(t *testing.T) {
	updates := map[string]interface{}{}

	setOptional(updates, "notes", nil)
	if _, ok := updates["notes"]; ok {
		t.Error("nil value should leave the field untouched")
	}

	val := "hello"
	setOptional(updates, "notes", &val)
	if updates["notes"] != "hello" {
		t.Errorf("notes = %v, want hello", updates["notes"])
	}

	empty := ""
	setOptional(updates, "notes", &empty)
	if v, ok := updates["notes"]; !ok || v != nil {
		t.Errorf("empty string should clear the column to NULL, got %v", v)
	}
}

func TestSetOptionalRef(t *testing.T) {
	updates := map[string]interface{}{}

	setOptionalRef(updates, "buyer_id", nil)
	if _, ok := updates["buyer_id"]; ok {
		t.Error("nil value should leave the field untouched")
	}

	id := uint(12)
	setOptionalRef(updates, "buyer_id", &id)
	if updates["buyer_id"] != uint(12) {
		t.Errorf("buyer_id = %v, want 12", updates["buyer_id"])
	}

	zero := uint(0)
	setOptionalRef(updates, "buyer_id", &zero)
	if v, ok := updates["buyer_id"]; !ok || v != nil {
		t.Errorf("zero id should clear the reference, got %v", v)
	}
}
