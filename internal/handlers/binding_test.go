package handlers

import (
	"encoding/json"
	"testing"
)

func TestOptUintJSON(t *testing.T) {
	type payload struct {
		CategoryID OptUint `json:"categoryId"`
	}

	cases := []struct {
		name string
		body string
		set  bool
		null bool
		val  uint
	}{
		{"absent", `{}`, false, false, 0},
		{"null", `{"categoryId":null}`, true, true, 0},
		{"empty_string", `{"categoryId":""}`, true, true, 0},
		{"zero", `{"categoryId":0}`, true, true, 0},
		{"value", `{"categoryId":7}`, true, false, 7},
		{"quoted_value", `{"categoryId":"7"}`, true, false, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tc.body), &p); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if p.CategoryID.Set != tc.set || p.CategoryID.Null != tc.null || p.CategoryID.Value != tc.val {
				t.Errorf("got %+v, want set=%v null=%v value=%d", p.CategoryID, tc.set, tc.null, tc.val)
			}
		})
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"categoryId":"abc"}`), &p); err == nil {
		t.Error("non-numeric input should fail to unmarshal")
	}
}

func TestOptUintForm(t *testing.T) {
	var o OptUint
	if err := o.UnmarshalParam(""); err != nil || !o.Null {
		t.Errorf("empty form value should clear, got %+v err %v", o, err)
	}

	o = OptUint{}
	if err := o.UnmarshalParam("0"); err != nil || !o.Null {
		t.Errorf("zero form value should clear, got %+v err %v", o, err)
	}

	o = OptUint{}
	if err := o.UnmarshalParam("12"); err != nil || o.Null || o.Value != 12 {
		t.Errorf("expected value 12, got %+v err %v", o, err)
	}

	o = OptUint{}
	if err := o.UnmarshalParam("abc"); err == nil {
		t.Error("non-numeric form value should error")
	}
}

func TestOptUintPtr(t *testing.T) {
	if (OptUint{}).Ptr() != nil {
		t.Error("unset should be nil")
	}
	if (OptUint{Set: true, Null: true}).Ptr() != nil {
		t.Error("cleared should be nil")
	}
	if p := (OptUint{Set: true, Value: 5}).Ptr(); p == nil || *p != 5 {
		t.Errorf("expected 5, got %v", p)
	}
}
