package gpu

import "fmt"

// RenderContext is the per-frame scene: stages, the commands drawn with
// each stage (index aligned) and the clear color.
type RenderContext struct {
	Stages     []*Stage
	Commands   [][]*Command
	ClearColor [4]float32
}

func NewRenderContext(clear [4]float32) *RenderContext {
	return &RenderContext{ClearColor: clear}
}

// AddStage appends a stage and the commands drawn with it.
func (rc *RenderContext) AddStage(stage *Stage, cmds ...*Command) {
	rc.Stages = append(rc.Stages, stage)
	rc.Commands = append(rc.Commands, cmds)
}

func (rc *RenderContext) Validate() error {
	if len(rc.Stages) != len(rc.Commands) {
		return fmt.Errorf("%w: %d stages, %d command lists", ErrStageMismatch, len(rc.Stages), len(rc.Commands))
	}
	return nil
}

// Render dispatches the context's command lists.
func (rc *RenderContext) Render(dev Device) error {
	return Render(dev, rc.Stages, rc.Commands)
}

// Render executes every command of commandLists[i] for stage i, in order.
// The stage program is not re-activated per command and no state is reset
// between stages. Mismatched lengths fail before any device call.
func Render(dev Device, stages []*Stage, commandLists [][]*Command) error {
	if len(stages) != len(commandLists) {
		return fmt.Errorf("%w: %d stages, %d command lists", ErrStageMismatch, len(stages), len(commandLists))
	}
	for i := range stages {
		for j, cmd := range commandLists[i] {
			if err := cmd.Execute(dev); err != nil {
				return fmt.Errorf("stage %d command %d: %w", i, j, err)
			}
		}
	}
	return nil
}
