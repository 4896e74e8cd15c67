package goal

import (
	"bytes"
	"strconv"
	"strings"
)

// RawValue accepts a JSON string, number or null and keeps its text form.
type RawValue string

func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*v = RawValue(unquoted)
		return nil
	}
	*v = RawValue(data)
	return nil
}

func (v RawValue) String() string {
	return strings.TrimSpace(string(v))
}

// Float parses the value, reporting false when absent or unparseable.
func (v RawValue) Float() (float64, bool) {
	s := v.String()
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses whole numbers and truncates decimal ones such as "45.0".
func (v RawValue) Int() (int, bool) {
	s := v.String()
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
