package handlers

import (
	"strconv"
	"strings"
)

// OptUint is a tri-state unsigned integer for partial updates: absent (Set
// false), explicitly cleared (Set true, Null true: JSON null, empty string,
// or zero), or set to a value. It binds from both JSON bodies and form
// fields, which is what lets one typed request struct normalize either body
// encoding in a single step.
type OptUint struct {
	Set   bool
	Null  bool
	Value uint
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		o.Null = true
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	if v == 0 {
		o.Null = true
		return nil
	}
	o.Value = uint(v)
	return nil
}

// UnmarshalParam implements gin's form binding hook (binding.BindUnmarshaler).
func (o *OptUint) UnmarshalParam(param string) error {
	o.Set = true
	if param == "" || param == "0" {
		o.Null = true
		return nil
	}
	v, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return err
	}
	o.Value = uint(v)
	return nil
}

// Ptr returns the value as a nullable pointer: nil when cleared or unset.
func (o OptUint) Ptr() *uint {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
