// Package adif reads ADIF (Amateur Data Interchange Format) contest logs
// and produces normalized QSO records for the analysis engine. Records are
// delimited by <eor>; tag extraction is case-insensitive and tolerant of
// unknown tags.
package adif

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"contestlog/qso"
)

var (
	freqRe     = regexp.MustCompile(`(?i)<freq:(\d+)>([\d.]+)`)
	bandRe     = regexp.MustCompile(`(?i)<band:(\d+)>([^<]+)`)
	timeOnRe   = regexp.MustCompile(`(?i)<time_on:(\d+)>(\d+)`)
	modeRe     = regexp.MustCompile(`(?i)<mode:(\d+)>([^<]+)`)
	callRe     = regexp.MustCompile(`(?i)<call:(\d+)>([^<]+)`)
	operatorRe = regexp.MustCompile(`(?i)<operator:(\d+)>([^<]+)`)
	stationRe  = regexp.MustCompile(`(?i)<station_callsign:(\d+)>([^<]+)`)
	computerRe = regexp.MustCompile(`(?i)<(?:app_)?n3fjp_computername:(\d+)>([^<]+)`)
	sectionRe  = regexp.MustCompile(`(?i)<arrl_sect:(\d+)>([^<]+)`)
	countryRe  = regexp.MustCompile(`(?i)<country:(\d+)>([^<]+)`)
	dateRe     = regexp.MustCompile(`(?i)<qso_date:(\d+)>(\d{8})`)
)

// ParseFile reads one ADIF file and returns its usable records, normalized,
// in wire order. Records carrying neither a frequency nor a band are dropped
// at this boundary; everything else degrades per field.
func ParseFile(filename string) ([]qso.Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("adif: open %s: %w", filename, err)
	}
	defer f.Close()

	var records []qso.Record
	var buffer strings.Builder

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		buffer.WriteString(line)
		buffer.WriteString("\n")
		if strings.Contains(strings.ToLower(line), "<eor>") {
			if r, ok := parseRecord(buffer.String()); ok {
				records = append(records, r)
			}
			buffer.Reset()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("adif: read %s: %w", filename, err)
	}

	return records, nil
}

// ParseFiles concatenates the records of several logs in argument order.
func ParseFiles(filenames []string) ([]qso.Record, error) {
	var all []qso.Record
	for _, name := range filenames {
		records, err := ParseFile(name)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// parseRecord extracts one record from an <eor>-terminated buffer. The
// second result is false when the record is unusable (no frequency and no
// band).
func parseRecord(buffer string) (qso.Record, bool) {
	var r qso.Record

	if m := freqRe.FindStringSubmatch(buffer); m != nil {
		if f, err := strconv.ParseFloat(m[2], 64); err == nil && f > 0 {
			r.Freq = f
			r.HasFreq = true
		}
	}
	if m := bandRe.FindStringSubmatch(buffer); m != nil {
		r.Band = strings.TrimSpace(m[2])
	}
	if !r.HasFreq && r.Band == "" {
		return qso.Record{}, false
	}

	if m := timeOnRe.FindStringSubmatch(buffer); m != nil {
		if t, err := strconv.Atoi(m[2]); err == nil {
			r.TimeOn = t
			r.HasTime = true
		}
	}
	if m := modeRe.FindStringSubmatch(buffer); m != nil {
		r.Mode = strings.TrimSpace(m[2])
	}
	if m := callRe.FindStringSubmatch(buffer); m != nil {
		r.Call = strings.TrimSpace(m[2])
	}
	if m := operatorRe.FindStringSubmatch(buffer); m != nil {
		r.Operator = strings.TrimSpace(m[2])
	} else if m := stationRe.FindStringSubmatch(buffer); m != nil {
		// Logs exported without per-operator tagging fall back to the
		// station callsign as the operator identity.
		r.Operator = strings.TrimSpace(m[2])
	}
	if m := computerRe.FindStringSubmatch(buffer); m != nil {
		r.Station = strings.TrimSpace(m[2])
	}
	if m := sectionRe.FindStringSubmatch(buffer); m != nil {
		r.Section = strings.TrimSpace(m[2])
	}
	if m := countryRe.FindStringSubmatch(buffer); m != nil {
		r.Country = strings.TrimSpace(m[2])
	}
	if m := dateRe.FindStringSubmatch(buffer); m != nil {
		r.Date = m[2]
	}

	return qso.Normalize(r), true
}
