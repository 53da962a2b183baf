package gui

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		debugEnv bool
		current  zerolog.Level
		want     zerolog.Level
	}{
		{
			name:     "quiet default",
			debugEnv: false,
			current:  zerolog.InfoLevel,
			want:     zerolog.WarnLevel,
		},
		{
			name:     "env variable enables debug",
			debugEnv: true,
			current:  zerolog.InfoLevel,
			want:     zerolog.DebugLevel,
		},
		{
			name:     "verbose flag already lowered level",
			debugEnv: false,
			current:  zerolog.DebugLevel,
			want:     zerolog.DebugLevel,
		},
		{
			name:     "trace level is preserved",
			debugEnv: false,
			current:  zerolog.TraceLevel,
			want:     zerolog.TraceLevel,
		},
		{
			name:     "warn stays warn",
			debugEnv: false,
			current:  zerolog.WarnLevel,
			want:     zerolog.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveLogLevel(tt.debugEnv, tt.current)
			if got != tt.want {
				t.Errorf("resolveLogLevel(%v, %v) = %v, want %v", tt.debugEnv, tt.current, got, tt.want)
			}
		})
	}
}
