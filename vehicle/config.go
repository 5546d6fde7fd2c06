// Package vehicle holds the static vehicle configuration, the live
// telemetry shown on the dashboard and the driving-speed calculation.
package vehicle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMalformedLine = errors.New("vehicle: malformed line, 'Key = Value' expected")
	ErrInvalidValue  = errors.New("vehicle: invalid value")
)

// Config is the static description of the vehicle.
type Config struct {
	// GearRatio is wheel revolutions per motor revolution.
	GearRatio float32
	// DriveWheelDiameter is the diameter of the drive wheel in m.
	DriveWheelDiameter float32
}

// LoadConfig reads a configuration file. A missing file yields an error
// wrapping fs.ErrNotExist.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load vehicle config: %w", err)
	}
	defer f.Close()
	return ParseConfig(f, path)
}

// LoadConfigFS is LoadConfig reading from fsys.
func LoadConfigFS(fsys fs.FS, name string) (Config, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Config{}, fmt.Errorf("load vehicle config: %w", err)
	}
	defer f.Close()
	return ParseConfig(f, name)
}

// ParseConfig parses "Key = Value" lines. Blank lines and lines starting
// with '#' are skipped. Any other line without exactly one '=' aborts the
// parse. Unknown keys are logged and ignored; keys that are absent keep
// their zero value. name is used in errors and log records.
func ParseConfig(r io.Reader, name string) (Config, error) {
	var cfg Config
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.Contains(value, "=") {
			return Config{}, fmt.Errorf("%s:%d: %w: %q", name, lineNo, ErrMalformedLine, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var dst *float32
		switch key {
		case "GearRatio":
			dst = &cfg.GearRatio
		case "DriveWheelDiameter":
			dst = &cfg.DriveWheelDiameter
		default:
			Logger().Warn("unknown vehicle config key",
				slog.String("file", name),
				slog.Int("line", lineNo),
				slog.String("key", key))
			continue
		}
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return Config{}, fmt.Errorf("%s:%d: %s: %w: %q", name, lineNo, key, ErrInvalidValue, value)
		}
		*dst = float32(v)
	}
	if err := sc.Err(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}
