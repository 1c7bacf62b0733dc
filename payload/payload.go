package payload

import (
	"bytes"
	"encoding/json"
)

// Record type/version markers scanned by the device firmware.
const (
	ConfigType    = "device_config"
	ConfigVersion = "1.0"
)

const passwordMask = "********"

// Metadata identifies a test run. Field order is the wire key order;
// the scanner budget is computed over this exact serialization, so the
// order must not change.
type Metadata struct {
	TestID      string   `json:"test_id"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
}

// WifiCredentials joins a device to the local network.
type WifiCredentials struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// BrokerConfig points a device at its MQTT broker.
type BrokerConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DeviceID string `json:"device_id"`
}

// DeviceConfig provisions Wi-Fi and MQTT onto a device.
type DeviceConfig struct {
	Type    string          `json:"type"`
	Version string          `json:"version"`
	Wifi    WifiCredentials `json:"wifi"`
	MQTT    BrokerConfig    `json:"mqtt"`
}

// NewDeviceConfig assembles a config record with the fixed type and
// version markers.
func NewDeviceConfig(wifi WifiCredentials, mqtt BrokerConfig) DeviceConfig {
	return DeviceConfig{
		Type:    ConfigType,
		Version: ConfigVersion,
		Wifi:    wifi,
		MQTT:    mqtt,
	}
}

// marshal produces the densest valid JSON encoding: no whitespace, no
// HTML escaping (the scanner parses raw JSON, and escaped bytes would
// inflate the measured size).
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalIndent(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Validate runs every field validator and returns the first failure in
// declared field order.
func (m Metadata) Validate() error {
	if err := ValidateTestID(m.TestID); err != nil {
		return err
	}
	if err := ValidateDescription(m.Description); err != nil {
		return err
	}
	return ValidateLabels(m.Labels)
}

// Encode serializes the record to its canonical compact form and
// enforces the payload budget. Identical input yields byte-identical
// output.
func (m Metadata) Encode(l Limits) ([]byte, error) {
	data, err := marshal(m)
	if err != nil {
		return nil, err
	}
	if len(data) > l.MaxBytes {
		return nil, &BudgetError{Actual: len(data), Max: l.MaxBytes}
	}
	return data, nil
}

// Display renders the record as indented JSON for human verification.
func (m Metadata) Display() (string, error) {
	return marshalIndent(m)
}

// Validate runs every field validator and returns the first failure in
// declared field order.
func (c DeviceConfig) Validate(l Limits) error {
	if err := l.ValidateWifiSSID(c.Wifi.SSID); err != nil {
		return err
	}
	if err := l.ValidateWifiPassword(c.Wifi.Password); err != nil {
		return err
	}
	if err := l.ValidateMQTTHost(c.MQTT.Host); err != nil {
		return err
	}
	if err := ValidateMQTTPort(c.MQTT.Port); err != nil {
		return err
	}
	if err := l.ValidateMQTTUsername(c.MQTT.Username); err != nil {
		return err
	}
	if err := l.ValidateMQTTPassword(c.MQTT.Password); err != nil {
		return err
	}
	return l.ValidateDeviceID(c.MQTT.DeviceID)
}

// Encode serializes the record to its canonical compact form and
// enforces the payload budget. On overflow the returned BudgetError
// itemizes each field's usage against its allowance.
func (c DeviceConfig) Encode(l Limits) ([]byte, error) {
	data, err := marshal(c)
	if err != nil {
		return nil, err
	}
	if len(data) > l.MaxBytes {
		return nil, &BudgetError{
			Actual: len(data),
			Max:    l.MaxBytes,
			Fields: []FieldUsage{
				{Name: "WiFi SSID", Used: len(c.Wifi.SSID), Allowed: l.WifiSSIDMax},
				{Name: "WiFi Password", Used: len(c.Wifi.Password), Allowed: l.WifiPasswordMax},
				{Name: "MQTT Host", Used: len(c.MQTT.Host), Allowed: l.MQTTHostMax},
				{Name: "MQTT Username", Used: len(c.MQTT.Username), Allowed: l.MQTTUsernameMax},
				{Name: "MQTT Password", Used: len(c.MQTT.Password), Allowed: l.MQTTPasswordMax},
				{Name: "Device ID", Used: len(c.MQTT.DeviceID), Allowed: l.DeviceIDMax},
			},
		}
	}
	return data, nil
}

// Display renders the record as indented JSON with secrets masked. The
// encoded form is never masked; the display form is built from a copy
// so the record itself stays untouched.
func (c DeviceConfig) Display() (string, error) {
	masked := c
	masked.Wifi.Password = passwordMask
	if masked.MQTT.Password != "" {
		masked.MQTT.Password = passwordMask
	}
	return marshalIndent(masked)
}
