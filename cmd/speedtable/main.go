// Command speedtable prints the driving speed of a vehicle configuration
// over a range of motor speeds.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dash/data"
	"dash/vehicle"

	"gopkg.in/yaml.v3"
)

func main() {
	var cfgPath string
	var rpmList string
	var format string
	flag.StringVar(&cfgPath, "vehicle", "", "Vehicle config file (default: embedded test vehicle).")
	flag.StringVar(&rpmList, "rpm", "2000,3000,4000,5000,6000", "Comma separated motor speeds.")
	flag.StringVar(&format, "format", "text", "Output format: text|yaml.")
	flag.Parse()

	rpms, err := parseRPMs(rpmList)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if format != "text" && format != "yaml" {
		fmt.Fprintln(os.Stderr, "error: -format must be text or yaml")
		os.Exit(2)
	}

	if err := run(os.Stdout, cfgPath, rpms, format); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfgPath string, rpms []int32, format string) error {
	var cfg vehicle.Config
	var err error
	if cfgPath == "" {
		cfg, err = vehicle.LoadConfigFS(data.FS, "test_vehicle.cfg")
	} else {
		cfg, err = vehicle.LoadConfig(cfgPath)
	}
	if err != nil {
		return err
	}

	table := vehicle.SpeedTable(cfg, rpms)
	if format == "yaml" {
		return writeYAML(w, cfg, table)
	}

	fmt.Fprintf(w, "GearRatio          %g\n", cfg.GearRatio)
	fmt.Fprintf(w, "DriveWheelDiameter %g m\n", cfg.DriveWheelDiameter)
	for _, row := range table {
		fmt.Fprintf(w, "%6d rpm  %7.2f km/h\n", row.RPM, row.KMH)
	}
	return nil
}

type yamlRow struct {
	RPM int32   `yaml:"rpm"`
	KMH float32 `yaml:"kmh"`
}

type yamlTable struct {
	GearRatio          float32   `yaml:"gear_ratio"`
	DriveWheelDiameter float32   `yaml:"drive_wheel_diameter"`
	Speeds             []yamlRow `yaml:"speeds"`
}

func writeYAML(w io.Writer, cfg vehicle.Config, table []vehicle.SpeedSample) error {
	out := yamlTable{GearRatio: cfg.GearRatio, DriveWheelDiameter: cfg.DriveWheelDiameter}
	for _, row := range table {
		out.Speeds = append(out.Speeds, yamlRow{RPM: row.RPM, KMH: row.KMH})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func parseRPMs(s string) ([]int32, error) {
	var out []int32
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("rpm %q: %w", f, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("rpm %d: must not be negative", v)
		}
		out = append(out, int32(v))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rpm given")
	}
	return out, nil
}
