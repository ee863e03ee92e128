package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/marionette"
	"github.com/phanxgames/marionette/ecs"
	"github.com/phanxgames/marionette/internal/demo"
)

// simResult summarizes a finished simulation.
type simResult struct {
	RunID         string
	Frames        int
	PhysicsEvents int
	Params        map[string]marionette.Vec2
	// Deform is the combined deform of the demo mouth's first vertex.
	Deform marionette.Vec2
}

func (c *CLI) simulateCommand() *cobra.Command {
	var (
		scriptPath string
		frames     int
		dt         float32
		watch      []string
		minChange  float32
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the demo puppet headless and report parameter values",
		Long: `Runs the built-in demo puppet for a number of frames. A script file
(.toml, .yaml, .yml or .json) can set and tween parameters on given frames.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &Script{}
			if scriptPath != "" {
				var err error
				if s, err = loadScript(scriptPath); err != nil {
					return err
				}
			} else {
				s.setDefaults()
			}
			if cmd.Flags().Changed("frames") {
				s.Frames = frames
			}
			if cmd.Flags().Changed("dt") {
				s.DT = dt
			}
			s.Watch = append(s.Watch, watch...)
			if cmd.Flags().Changed("min-change") {
				s.MinChange = minChange
			}

			res, err := c.simulate(cmd.Context(), s)
			if err != nil {
				return err
			}
			c.printResult(res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "simulation script (.toml, .yaml, .yml, .json)")
	cmd.Flags().IntVarP(&frames, "frames", "n", defaultFrames, "number of frames to evaluate")
	cmd.Flags().Float32Var(&dt, "dt", defaultDT, "seconds per frame")
	cmd.Flags().Float32Var(&minChange, "min-change", 0, "publish a physics event only when its output moved at least this much")
	cmd.Flags().StringSliceVarP(&watch, "watch", "w", nil, "parameters to log every frame")
	return cmd
}

// simulate evaluates the demo puppet under s. Physics events are routed
// through a Donburi world so the run exercises the same path a game would.
func (c *CLI) simulate(ctx context.Context, s *Script) (*simResult, error) {
	runID := uuid.New().String()
	logger := c.Logger.With("run", runID[:8])
	prog := newProgress(logger)

	debug := c.Logger.GetLevel() <= log.DebugLevel
	p := demo.Build(s.config(debug))
	p.Prepare()

	world := p.World().Donburi()
	var sinkOpts []ecs.SinkOption
	if s.MinChange > 0 {
		sinkOpts = append(sinkOpts, ecs.OnlyChanges(s.MinChange))
	}
	p.SetEventSink(ecs.NewDonburiSink(world, sinkOpts...))
	res := &simResult{RunID: runID, Frames: s.Frames, Params: map[string]marionette.Vec2{}}
	ecs.PhysicsEventType.Subscribe(world, func(_ donburi.World, e marionette.PhysicsEvent) {
		res.PhysicsEvents++
		logger.Debug("physics", "node", e.Node, "param", e.Param, "x", e.Value[0], "y", e.Value[1])
	})

	for _, name := range s.Watch {
		if _, ok := p.Param(name); !ok {
			return nil, &marionette.UnknownParamError{Name: name}
		}
	}

	var (
		tweens []*marionette.ParamTween
		nextSet, nextTween int
	)
	for frame := 0; frame < s.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.BeginSetParams()

		for ; nextSet < len(s.Sets) && s.Sets[nextSet].Frame <= frame; nextSet++ {
			st := s.Sets[nextSet]
			if err := p.SetParam(st.Param, marionette.Vec2(st.Value)); err != nil {
				return nil, fmt.Errorf("frame %d: %w", frame, err)
			}
		}
		for ; nextTween < len(s.Tweens) && s.Tweens[nextTween].Frame <= frame; nextTween++ {
			ts := s.Tweens[nextTween]
			fn, _ := easeByName(ts.Ease)
			tw, err := marionette.TweenParam(p, ts.Param, marionette.Vec2(ts.To), ts.Duration, fn)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", frame, err)
			}
			tweens = append(tweens, tw)
		}
		live := tweens[:0]
		for _, tw := range tweens {
			tw.Update(s.DT)
			if !tw.Done {
				live = append(live, tw)
			}
		}
		tweens = live

		p.EndSetParams(s.DT)
		ecs.PhysicsEventType.ProcessEvents(world)

		for _, name := range s.Watch {
			v, _ := p.ParamValue(name)
			logger.Debug("watch", "frame", frame, "param", name, "x", v[0], "y", v[1])
		}
	}

	for _, param := range p.Params() {
		v, _ := p.ParamValue(param.Name)
		res.Params[param.Name] = v
	}
	if nc, ok := p.RenderCtx().NodeCtx(demo.NodeMouth); ok && nc.TexturedMesh != nil {
		res.Deform = p.RenderCtx().VertexBuffers.Deforms[nc.TexturedMesh.VertOffset]
	}
	prog.done("simulation finished", "frames", s.Frames, "events", res.PhysicsEvents)
	return res, nil
}

func (c *CLI) printResult(res *simResult) {
	printTitle(c.out, "Simulation "+res.RunID)
	printKeyValue(c.out, "frames", fmt.Sprint(res.Frames))
	printKeyValue(c.out, "physics events", fmt.Sprint(res.PhysicsEvents))
	names := make([]string, 0, len(res.Params))
	for name := range res.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := res.Params[name]
		printVec(c.out, name, v[0], v[1])
	}
	printVec(c.out, "mouth deform[0]", res.Deform[0], res.Deform[1])
	printSuccess(c.out, "done")
}
