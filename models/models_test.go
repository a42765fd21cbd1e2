package models

import (
	"encoding/json"
	"testing"
)

func TestSwitchCommandRaw(t *testing.T) {
	cases := []struct {
		payload string
		want    string
		ok      bool
	}{
		{`{"address":"11111","channel":"A","state":"on"}`, "11111A1", true},
		{`{"address":"01010","channel":"d","state":"0"}`, "01010D0", true},
		{`{"command":"11111B1\n"}`, "11111B1\n", true},
		{`{"address":"11111","channel":"E","state":"on"}`, "", false},
		{`{"address":"11111","channel":"A"}`, "", false},
	}

	for _, c := range cases {
		cmd := new(SwitchCommand)
		if err := json.Unmarshal([]byte(c.payload), cmd); err != nil {
			t.Fatal(err)
		}
		raw, err := cmd.Raw()
		if (err == nil) != c.ok {
			t.Errorf("%s: error = %v", c.payload, err)
			continue
		}
		if raw != c.want {
			t.Errorf("%s: Raw() = %q, want %q", c.payload, raw, c.want)
		}
	}
}
