package config

import (
	"testing"
	"time"
)

func TestGetEnvDefault(t *testing.T) {
	if got := getEnv("CONFIG_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("getEnv default = %q, want %q", got, "fallback")
	}

	t.Setenv("CONFIG_TEST_SET_KEY", "explicit")
	if got := getEnv("CONFIG_TEST_SET_KEY", "fallback"); got != "explicit" {
		t.Errorf("getEnv set = %q, want %q", got, "explicit")
	}
}

func TestGetDuration(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", time.Hour},
		{"valid", "30m", 30 * time.Minute},
		{"garbage", "not-a-duration", time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value != "" {
				t.Setenv("CONFIG_TEST_DURATION", tc.value)
			}
			if got := getDuration("CONFIG_TEST_DURATION", time.Hour); got != tc.want {
				t.Errorf("getDuration(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestGetInt64(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  int64
	}{
		{"unset", "", 42},
		{"valid", "1048576", 1048576},
		{"garbage", "lots", 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value != "" {
				t.Setenv("CONFIG_TEST_INT", tc.value)
			}
			if got := getInt64("CONFIG_TEST_INT", 42); got != tc.want {
				t.Errorf("getInt64(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}
