// qrgen generates provisioning QR codes for the M3 data logger from
// the command line. It has two modes: "metadata" embeds a test run's
// identifying data, "config" embeds Wi-Fi and MQTT settings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/m3-datalogger/qrgen/payload"
	"github.com/m3-datalogger/qrgen/qrimage"
	"github.com/m3-datalogger/qrgen/shortid"
)

var (
	mode = flag.String("mode", "", "QR generation mode: metadata or config")

	// Metadata mode flags.
	testID      = flag.String("test-id", "", "8-character alphanumeric test ID (auto-generated if not provided)")
	description = flag.String("description", "", "Test description (1-64 chars)")
	labels      = flag.String("labels", "", "Comma-separated labels (1-10 labels, each 1-32 chars)")

	// Config mode flags.
	wifiSSID     = flag.String("wifi-ssid", "", "WiFi SSID")
	wifiPassword = flag.String("wifi-password", "", "WiFi password (WPA2, min 8 chars)")
	mqttHost     = flag.String("mqtt-host", "", "MQTT broker host (DNS name or IPv4 address)")
	mqttPort     = flag.Int("mqtt-port", payload.DefaultMQTTPort, "MQTT broker port")
	mqttUsername = flag.String("mqtt-username", "", "MQTT username (optional)")
	mqttPassword = flag.String("mqtt-password", "", "MQTT password (optional)")
	deviceID     = flag.String("device-id", "", "Device identifier")

	// Common flags.
	output = flag.String("output", "", "Output PNG file path")
	noShow = flag.Bool("no-show", false, "Do not display the QR code in the terminal")
)

// splitLabels turns the comma-separated -labels value into a slice,
// trimming surrounding whitespace from each label. An empty flag yields
// no labels, which the validator rejects with its own message.
func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

type requiredFlag struct {
	name  string
	value string
}

// requireFlags returns an error naming every required flag whose value
// is still empty, in declaration order.
func requireFlags(flags []requiredFlag) error {
	var missing []string
	for _, f := range flags {
		if f.value == "" {
			missing = append(missing, "-"+f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}

// emit renders the payload: ASCII to the terminal unless suppressed, a
// PNG file when an output path was given, and the display form with the
// measured payload size for verification.
func emit(data []byte, display, banner string) error {
	if !*noShow {
		ascii, err := qrimage.ASCII(data)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s:\n%s", banner, ascii)
	}
	if *output != "" {
		if err := qrimage.WriteFile(*output, data); err != nil {
			return err
		}
		fmt.Printf("\nQR code saved to: %s\n", *output)
	}
	fmt.Printf("\nPayload JSON (%d bytes):\n%s\n", len(data), display)
	return nil
}

func runMetadata(limits payload.Limits) error {
	if err := requireFlags([]requiredFlag{
		{"description", *description},
		{"labels", *labels},
	}); err != nil {
		return err
	}

	id := *testID
	if id == "" {
		id = shortid.New()
		fmt.Printf("Generated test_id: %s\n", id)
	}

	record := payload.Metadata{
		TestID:      id,
		Description: *description,
		Labels:      splitLabels(*labels),
	}
	if err := record.Validate(); err != nil {
		return err
	}
	data, err := record.Encode(limits)
	if err != nil {
		return err
	}
	display, err := record.Display()
	if err != nil {
		return err
	}
	return emit(data, display, "QR Code (scan with M3 Data Logger)")
}

func runConfig(limits payload.Limits) error {
	if err := requireFlags([]requiredFlag{
		{"wifi-ssid", *wifiSSID},
		{"wifi-password", *wifiPassword},
		{"mqtt-host", *mqttHost},
		{"device-id", *deviceID},
	}); err != nil {
		return err
	}

	record := payload.NewDeviceConfig(
		payload.WifiCredentials{SSID: *wifiSSID, Password: *wifiPassword},
		payload.BrokerConfig{
			Host:     *mqttHost,
			Port:     *mqttPort,
			Username: *mqttUsername,
			Password: *mqttPassword,
			DeviceID: *deviceID,
		},
	)
	if err := record.Validate(limits); err != nil {
		return err
	}
	data, err := record.Encode(limits)
	if err != nil {
		return err
	}
	// Display form masks the passwords; the encoded payload does not.
	display, err := record.Display()
	if err != nil {
		return err
	}
	return emit(data, display, "Configuration QR Code (scan with M3 Data Logger)")
}

func main() {
	flag.Parse()

	limits := payload.DefaultLimits()
	var err error
	switch *mode {
	case "metadata":
		err = runMetadata(limits)
	case "config":
		err = runConfig(limits)
	case "":
		err = errors.New("missing required flag: -mode (metadata or config)")
	default:
		err = fmt.Errorf("unknown mode %q (must be metadata or config)", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
