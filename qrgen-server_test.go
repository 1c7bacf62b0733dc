package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-lab/go/osx"
	"github.com/m-lab/go/prometheusx/promtest"
	"github.com/m-lab/go/rtx"

	"github.com/m3-datalogger/qrgen/payload"
)

func TestLoadLimitsDefaults(t *testing.T) {
	limits, err := loadLimits("")
	rtx.Must(err, "loadLimits with no file should succeed")
	if limits != payload.DefaultLimits() {
		t.Errorf("loadLimits(\"\") = %+v, want defaults", limits)
	}
}

func TestLoadLimitsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	rtx.Must(os.WriteFile(path, []byte("wifi_ssid_max: 32\nmqtt_host_max: 64\n"), 0o644), "Could not write limits file")

	limits, err := loadLimits(path)
	rtx.Must(err, "loadLimits should succeed")
	if limits.WifiSSIDMax != 32 || limits.MQTTHostMax != 64 {
		t.Errorf("overrides not applied: %+v", limits)
	}
	// Untouched fields keep their defaults.
	if limits.MaxBytes != payload.MaxPayloadBytes {
		t.Errorf("MaxBytes = %d, want %d", limits.MaxBytes, payload.MaxPayloadBytes)
	}
}

func TestLoadLimitsMissingFile(t *testing.T) {
	if _, err := loadLimits(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing limits file")
	}
}

func Test_ContextCancelsMain(t *testing.T) {
	// Set up the command-line args via environment variables.
	cleanups := []func(){
		osx.MustSetenv("ADDR", ":0"),
		osx.MustSetenv("PROMETHEUSX_LISTEN_ADDRESS", ":0"),
	}
	defer func() {
		for _, f := range cleanups {
			f()
		}
	}()

	// Run main, but cancel it very soon after starting.
	ctx, cancel = context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	// If this doesn't run forever, then canceling the context causes
	// main to exit.
	main()
}

func TestMetrics(t *testing.T) {
	promtest.LintMetrics(t)
}
