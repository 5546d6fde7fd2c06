// Package data embeds the default dashboard assets: the "default" shader
// pair, the test texture and the test vehicle configuration.
package data

import "embed"

//go:embed default.vert default.frag test.png test_vehicle.cfg
var FS embed.FS
