package cli

import "testing"

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate values",
			args:   []string{"eval", "--log-level", "debug", "--log-format", "text"},
			level:  "debug",
			format: "text",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=trace", "--no-log-pretty", "--log-caller"},
			level:  "trace",
			format: "json",
			caller: true,
		},
		{
			name:   "explicit booleans",
			args:   []string{"--log-pretty=false", "--no-log-caller=false"},
			level:  "info",
			format: "json",
			caller: true,
		},
		{
			name:   "value looks like flag",
			args:   []string{"--log-level", "--log-caller"},
			level:  "",
			format: "json",
			pretty: true,
			caller: true,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--", "--log-level=error"},
			level:  "info",
			format: "json",
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Level: "info", Format: "json", Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("unexpected config %+v", f)
			}
		})
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		assigned bool
		want     bool
		ok       bool
	}{
		{"--log-pretty", "", false, true, true},
		{"--no-log-pretty", "", false, false, true},
		{"--log-pretty", "0", true, false, true},
		{"--no-log-pretty", "false", true, true, true},
		{"--log-pretty", "maybe", true, false, false},
	}

	for _, tt := range tests {
		v, ok := scanBool(tt.name, tt.value, tt.assigned)
		if v != tt.want || ok != tt.ok {
			t.Errorf("scanBool(%q, %q, %v) = (%v, %v), want (%v, %v)",
				tt.name, tt.value, tt.assigned, v, ok, tt.want, tt.ok)
		}
	}
}
