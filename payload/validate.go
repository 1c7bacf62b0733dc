package payload

import (
	"regexp"
	"unicode/utf8"
)

// Host grammars accepted by ValidateMQTTHost: DNS hostnames (labels of
// 1-63 alphanumeric-plus-internal-hyphen characters, dot separated) or
// dotted-quad IPv4 addresses.
var (
	dnsHostRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	ipv4Re    = regexp.MustCompile(`^((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
)

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}

// ValidateTestID accepts exactly 8 alphanumeric characters.
func ValidateTestID(id string) error {
	if utf8.RuneCountInString(id) != TestIDLength {
		return fieldErr("test_id", "must be exactly %d characters", TestIDLength)
	}
	if !isAlnum(id) {
		return fieldErr("test_id", "must be alphanumeric only")
	}
	return nil
}

// ValidateDescription accepts 1-64 characters.
func ValidateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n == 0 {
		return fieldErr("description", "cannot be empty")
	}
	if n > DescriptionMaxLen {
		return fieldErr("description", "must be %d characters or less", DescriptionMaxLen)
	}
	return nil
}

// ValidateLabels accepts 1-10 labels of 1-32 characters each. The first
// violation found is reported, citing the offending label.
func ValidateLabels(labels []string) error {
	if len(labels) == 0 {
		return fieldErr("labels", "must provide at least 1 label")
	}
	if len(labels) > LabelsMax {
		return fieldErr("labels", "cannot exceed %d labels", LabelsMax)
	}
	for _, label := range labels {
		n := utf8.RuneCountInString(label)
		if n == 0 {
			return fieldErr("labels", "label cannot be empty")
		}
		if n > LabelMaxLen {
			return fieldErr("labels", "label %q exceeds %d characters", label, LabelMaxLen)
		}
	}
	return nil
}

// ValidateWifiSSID accepts 1..WifiSSIDMax printable-ASCII characters,
// the charset IEEE 802.11 allows.
func (l Limits) ValidateWifiSSID(ssid string) error {
	n := len(ssid)
	if n < 1 || n > l.WifiSSIDMax {
		return fieldErr("wifi_ssid", "must be 1-%d characters (IEEE 802.11 allows 32, reduced for QR size)", l.WifiSSIDMax)
	}
	if !isPrintableASCII(ssid) {
		return fieldErr("wifi_ssid", "contains non-printable characters (use printable ASCII)")
	}
	return nil
}

// ValidateWifiPassword accepts a WPA2 passphrase of WifiPasswordMin..
// WifiPasswordMax printable-ASCII characters.
func (l Limits) ValidateWifiPassword(password string) error {
	n := len(password)
	if n < l.WifiPasswordMin || n > l.WifiPasswordMax {
		return fieldErr("wifi_password", "must be %d-%d characters (WPA2 requirement + QR size limit)", l.WifiPasswordMin, l.WifiPasswordMax)
	}
	if !isPrintableASCII(password) {
		return fieldErr("wifi_password", "must contain only printable ASCII characters (ASCII 32-126)")
	}
	return nil
}

// ValidateMQTTHost accepts a DNS hostname or an IPv4 address no longer
// than MQTTHostMax characters.
func (l Limits) ValidateMQTTHost(host string) error {
	if !dnsHostRe.MatchString(host) && !ipv4Re.MatchString(host) {
		return fieldErr("mqtt_host", "invalid format (must be DNS name or IPv4 address)")
	}
	if len(host) > l.MQTTHostMax {
		return fieldErr("mqtt_host", "too long (%d chars, max %d)", len(host), l.MQTTHostMax)
	}
	return nil
}

// ValidateMQTTPort accepts ports 1-65535.
func ValidateMQTTPort(port int) error {
	if port < 1 || port > 65535 {
		return fieldErr("mqtt_port", "port %d out of valid range (1-65535)", port)
	}
	return nil
}

// ValidateMQTTUsername accepts an empty or short username.
func (l Limits) ValidateMQTTUsername(username string) error {
	if len(username) > l.MQTTUsernameMax {
		return fieldErr("mqtt_username", "too long (%d chars, max %d)", len(username), l.MQTTUsernameMax)
	}
	return nil
}

// ValidateMQTTPassword accepts an empty or short password.
func (l Limits) ValidateMQTTPassword(password string) error {
	if len(password) > l.MQTTPasswordMax {
		return fieldErr("mqtt_password", "too long (%d chars, max %d)", len(password), l.MQTTPasswordMax)
	}
	return nil
}

// ValidateDeviceID accepts 1..DeviceIDMax characters.
func (l Limits) ValidateDeviceID(deviceID string) error {
	n := len(deviceID)
	if n < 1 || n > l.DeviceIDMax {
		return fieldErr("device_id", "must be 1-%d characters", l.DeviceIDMax)
	}
	return nil
}
