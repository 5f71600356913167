package chart

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFile reads an existing chart in the UltraStar text layout.
// Parsing is lenient: unknown header keys and malformed note lines are
// skipped rather than rejected, because charts in the wild are hand edited.
func ParseFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chart: %w", err)
	}
	defer f.Close()

	c := &Chart{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line == "E":
			continue
		case strings.HasPrefix(line, "#"):
			parseHeader(line, &c.Meta)
		case strings.HasPrefix(line, "-"):
			if n, ok := parsePause(line); ok {
				c.Notes = append(c.Notes, n)
			}
		case strings.HasPrefix(line, ":") || strings.HasPrefix(line, "*"):
			if n, ok := parseNote(line); ok {
				c.Notes = append(c.Notes, n)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}

	return c, nil
}

func parseHeader(line string, meta *Metadata) {
	key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)

	switch strings.ToUpper(key) {
	case "TITLE":
		meta.Title = value
	case "ARTIST":
		meta.Artist = value
	case "MP3":
		meta.MP3 = value
	case "BPM":
		// some charts use a decimal comma
		if bpm, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64); err == nil {
			meta.BPM = bpm
		}
	case "GAP":
		if gap, err := strconv.Atoi(value); err == nil {
			meta.GapMS = gap
		}
	case "END":
		if end, err := strconv.Atoi(value); err == nil {
			meta.EndMS = end
		}
	}
}

func parsePause(line string) (Note, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Note{}, false
	}
	beat, err := strconv.Atoi(fields[1])
	if err != nil {
		return Note{}, false
	}
	return Note{Kind: Pause, Beat: beat}, true
}

func parseNote(line string) (Note, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Note{}, false
	}

	beat, err1 := strconv.Atoi(fields[1])
	dur, err2 := strconv.Atoi(fields[2])
	pitch, err3 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return Note{}, false
	}

	kind := Sung
	if fields[0] == "*" {
		kind = Emphasized
	}

	text := ""
	if len(fields) > 4 {
		text = strings.Join(fields[4:], " ")
	}

	return Note{Kind: kind, Beat: beat, Duration: dur, Pitch: pitch, Text: text}, true
}
