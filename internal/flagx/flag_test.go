package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "double dash with equals",
			args:         []string{"--config=alt.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "double dash matches single dash declaration",
			args:         []string{"--a", "http://api", "shell"},
			allowedFlags: []string{"-a"},
			want:         []string{"--a", "http://api"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestStripArgs(t *testing.T) {
	args := []string{"-a", "http://api", "cases", "list", "--page", "2", "-t=5"}
	got := StripArgs(args, []string{"-a", "-t"})
	assert.Equal(t, []string{"cases", "list", "--page", "2"}, got)
}

func TestStripArgs_KeepsDoubleDashTerminator(t *testing.T) {
	got := StripArgs([]string{"--", "-a"}, []string{"-a"})
	assert.Equal(t, []string{"--"}, got[:1])
}

func TestJsonConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"-c", "a.json", "shell"}, want: "a.json"},
		{name: "long equals", args: []string{"--config=b.json"}, want: "b.json"},
		{name: "absent", args: []string{"cases", "list"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JsonConfigPath(tt.args))
		})
	}
}
