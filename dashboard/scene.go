package dashboard

import (
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"

	"dash/dashboard/label"
	"dash/gpu"
)

// Texture units used by the scene.
const (
	ImageUnit = 0
	LabelUnit = 1
)

// LabelScale is the magnification of the label texture on screen.
const LabelScale = 2

// Options selects the assets and layout of the scene.
type Options struct {
	// Assets holds "<Shader>.vert", "<Shader>.frag" and Texture.
	Assets     fs.FS
	Shader     string
	Texture    string
	ClearColor [4]float32
	// Width and Height are the surface size in pixels.
	Width, Height int
	// Label is drawn in the top right corner when non-empty.
	Label string
	// World adds the world stage ahead of the UI stage.
	World bool
}

type uiQuad struct {
	pos, size [2]float32
	rgb       [3]float32
}

var uiQuads = []uiQuad{
	{pos: [2]float32{0, 50}, size: [2]float32{100, 100}, rgb: [3]float32{0, 1, 0}},
	{pos: [2]float32{10, 550}, size: [2]float32{1004, 500}, rgb: [3]float32{0, 0, 1}},
}

// Build loads the stages and assembles the render context. The UI stage is
// loaded last so its program is the active one when the frame loop starts.
func Build(dev gpu.Device, opt Options) (*gpu.RenderContext, error) {
	rc := gpu.NewRenderContext(opt.ClearColor)
	if opt.World {
		world, err := PrepareWorldStage(dev, opt)
		if err != nil {
			return nil, err
		}
		rc.AddStage(world)
	}

	ui, cmds, err := PrepareUIStage(dev, opt)
	if err != nil {
		return nil, err
	}
	rc.AddStage(ui, cmds...)

	gpu.Logger().Info("scene built",
		slog.Int("stages", len(rc.Stages)),
		slog.Int("commands", len(cmds)),
		slog.Int("width", opt.Width),
		slog.Int("height", opt.Height))
	return rc, nil
}

// PrepareUIStage loads the UI shader and texture and returns the stage with
// one command per quad. u_resolution is bound to the surface size when the
// shader declares it.
func PrepareUIStage(dev gpu.Device, opt Options) (*gpu.Stage, []*gpu.Command, error) {
	stage, err := gpu.LoadStageFS(dev, opt.Assets, opt.Shader)
	if err != nil {
		return nil, nil, fmt.Errorf("ui stage: %w", err)
	}
	tex, err := gpu.LoadTextureFS(dev, opt.Assets, opt.Texture, ImageUnit)
	if err != nil {
		return nil, nil, fmt.Errorf("ui stage: %w", err)
	}

	var extra []gpu.UniformBinding
	if stage.HasUniform("u_resolution") {
		res, err := stage.BindUniformFloats("u_resolution", float32(opt.Width), float32(opt.Height))
		if err != nil {
			return nil, nil, fmt.Errorf("ui stage: %w", err)
		}
		extra = append(extra, res)
	}

	var cmds []*gpu.Command
	for _, q := range uiQuads {
		cmd, err := CreateUIQuad(dev, q.pos, q.size, q.rgb).Command(stage, tex, extra...)
		if err != nil {
			return nil, nil, fmt.Errorf("ui stage: %w", err)
		}
		cmds = append(cmds, cmd)
	}

	if opt.Label != "" {
		cmd, err := labelCommand(dev, stage, opt, extra)
		if err != nil {
			return nil, nil, fmt.Errorf("ui stage: %w", err)
		}
		cmds = append(cmds, cmd)
	}
	return stage, cmds, nil
}

func labelCommand(dev gpu.Device, stage *gpu.Stage, opt Options, extra []gpu.UniformBinding) (*gpu.Command, error) {
	img := label.Render(opt.Label, label.DefaultFont,
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		color.RGBA{A: 255})
	tex, err := gpu.NewTexture(dev, img, LabelUnit)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	size := [2]float32{float32(tex.Width * LabelScale), float32(tex.Height * LabelScale)}
	pos := [2]float32{float32(opt.Width) - size[0] - 8, 8}
	return CreateUIQuad(dev, pos, size, [3]float32{1, 1, 1}).Command(stage, tex, extra...)
}

// PrepareWorldStage loads the world stage. It has no geometry yet.
func PrepareWorldStage(dev gpu.Device, opt Options) (*gpu.Stage, error) {
	stage, err := gpu.LoadStageFS(dev, opt.Assets, opt.Shader)
	if err != nil {
		return nil, fmt.Errorf("world stage: %w", err)
	}
	return stage, nil
}
