package qso

import "strings"

// Display-mode classes for the band/mode breakdown. Raw logged modes collapse
// into CW, Phone, and DIG; anything unrecognized passes through unchanged.
const (
	DisplayCW    = "CW"
	DisplayPhone = "Phone"
	DisplayDig   = "DIG"
)

// DisplayMode maps a raw mode string to its report display class.
func DisplayMode(mode string) string {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case "CW":
		return DisplayCW
	case "SSB", "PHONE", "FM", "AM":
		return DisplayPhone
	case "FT8", "FT4", "PSK31", "DIGITAL", "DIG":
		return DisplayDig
	default:
		return mode
	}
}

// DisplayModeOrder returns the preferred column order for the breakdown
// table, with any extra passthrough modes sorted after the fixed three.
func DisplayModeOrder() []string {
	return []string{DisplayCW, DisplayPhone, DisplayDig}
}
