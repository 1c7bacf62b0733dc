// Package payload implements the records embedded in M3 data logger
// provisioning QR codes: per-field validation, the canonical compact
// serialization scanned by the device, and the byte budget imposed by
// the Tiny Code Reader hardware.
package payload

// MaxPayloadBytes is the hard ceiling on a serialized payload. The Tiny
// Code Reader returns at most 256 bytes per scan; the remainder is held
// back as margin for the reader's own framing.
const MaxPayloadBytes = 220

// Metadata record bounds. These are fixed by the scanner firmware's
// parser and are not configurable.
const (
	TestIDLength      = 8
	DescriptionMaxLen = 64
	LabelsMax         = 10
	LabelMaxLen       = 32
)

// DefaultMQTTPort is used when a config request omits the broker port.
const DefaultMQTTPort = 1883

// Limits bounds the individual fields of a device-config record. The
// defaults are chosen so that realistic configurations fit the payload
// budget; maxing out every field at once still overflows it, which is
// why the size guard exists as an independent backstop.
type Limits struct {
	// MaxBytes is the serialized payload ceiling.
	MaxBytes int `yaml:"max_payload_bytes"`
	// WifiSSIDMax caps the SSID. IEEE 802.11 allows 32; reduced to
	// keep the payload small.
	WifiSSIDMax int `yaml:"wifi_ssid_max"`
	// WifiPasswordMin is the WPA2 passphrase minimum.
	WifiPasswordMin int `yaml:"wifi_password_min"`
	// WifiPasswordMax caps the passphrase below the WPA2 maximum of 63.
	WifiPasswordMax int `yaml:"wifi_password_max"`
	// MQTTHostMax fits most broker hostnames. Long managed-broker
	// endpoints need a CNAME.
	MQTTHostMax     int `yaml:"mqtt_host_max"`
	MQTTUsernameMax int `yaml:"mqtt_username_max"`
	MQTTPasswordMax int `yaml:"mqtt_password_max"`
	DeviceIDMax     int `yaml:"device_id_max"`
}

// DefaultLimits returns the limits matching the deployed scanner
// firmware.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:        MaxPayloadBytes,
		WifiSSIDMax:     16,
		WifiPasswordMin: 8,
		WifiPasswordMax: 16,
		MQTTHostMax:     40,
		MQTTUsernameMax: 10,
		MQTTPasswordMax: 10,
		DeviceIDMax:     10,
	}
}
