package midi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// ErrDeviceNotFound is returned when no available MIDI device matches a query.
var ErrDeviceNotFound = errors.New("midi device not found")

// FindDevice returns the index of the first device whose name contains the
// query, compared case-insensitively. Devices are scanned in the order the
// backend reported them.
//
// devices []contracts.DeviceInfo: The available MIDI input devices.
// query string: A fragment of the desired device name.
//
// Returns:
//   - int: The index of the matching device.
//   - error: ErrDeviceNotFound if no device name contains the query.
func FindDevice(devices []contracts.DeviceInfo, query string) (int, error) {
	needle := strings.ToLower(query)
	for i, device := range devices {
		if strings.Contains(strings.ToLower(device.Name), needle) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDeviceNotFound, query)
}
