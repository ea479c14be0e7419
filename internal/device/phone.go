package device

import (
	"bufio"
	"fmt"
	"strings"
)

// adb device states reported by `adb devices`.
const (
	StateDevice       = "device"
	StateOffline      = "offline"
	StateUnauthorized = "unauthorized"
	StateRecovery     = "recovery"
)

// Phone is one device known to the adb server.
type Phone struct {
	// Serial is the adb serial, e.g. "R58N123ABC" or "192.168.1.20:37815".
	Serial string

	// State is the adb state: "device", "offline", "unauthorized", ...
	State string

	// Model is the marketing model with underscores replaced, e.g. "SM G991B".
	Model string

	// Product and Codename come from the product: and device: fields.
	Product  string
	Codename string

	// TransportID is adb's transport number for this connection.
	TransportID string
}

// String is the label shown in the device picker.
func (p Phone) String() string {
	if p.Model == "" {
		return p.Serial
	}
	return fmt.Sprintf("%s (%s)", p.Model, p.Serial)
}

// Equal reports whether p and o are the same phone.
func (p Phone) Equal(o Phone) bool {
	return p.Serial == o.Serial
}

// Online reports whether adb can run commands on the phone.
func (p Phone) Online() bool {
	return p.State == StateDevice
}

// Wireless reports whether the phone is connected over TCP.
func (p Phone) Wireless() bool {
	return strings.Contains(p.Serial, ":") || strings.Contains(p.Serial, "._adb-tls-connect.")
}

// Emulator reports whether the serial belongs to an emulator instance.
func (p Phone) Emulator() bool {
	return strings.HasPrefix(p.Serial, "emulator-")
}

// ParseDevicesOutput parses the output of `adb devices -l`. Header lines,
// daemon start-up chatter and blank lines are skipped.
func ParseDevicesOutput(output string) []Phone {
	var phones []Phone

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "List of devices") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		phone := Phone{Serial: fields[0], State: fields[1]}
		for _, f := range fields[2:] {
			key, value, ok := strings.Cut(f, ":")
			if !ok {
				continue
			}
			switch key {
			case "model":
				phone.Model = strings.ReplaceAll(value, "_", " ")
			case "product":
				phone.Product = value
			case "device":
				phone.Codename = value
			case "transport_id":
				phone.TransportID = value
			}
		}
		phones = append(phones, phone)
	}

	return phones
}

// Merge appends phones from extra that are not already in base. Order of
// base is kept, so the picker does not reshuffle on refresh.
func Merge(base, extra []Phone) []Phone {
	out := make([]Phone, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]Phone{base, extra} {
		for _, p := range list {
			if seen[p.Serial] {
				continue
			}
			seen[p.Serial] = true
			out = append(out, p)
		}
	}
	return out
}

// Find returns the phone with the given serial.
func Find(phones []Phone, serial string) (Phone, bool) {
	for _, p := range phones {
		if p.Serial == serial {
			return p, true
		}
	}
	return Phone{}, false
}

// OnlineOnly filters out phones adb cannot talk to.
func OnlineOnly(phones []Phone) []Phone {
	var out []Phone
	for _, p := range phones {
		if p.Online() {
			out = append(out, p)
		}
	}
	return out
}
