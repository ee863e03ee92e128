package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/marionette"
	"github.com/phanxgames/marionette/internal/demo"
)

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the demo puppet's node tree, draw order and parameters",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p := demo.Build(marionette.DefaultConfig())
			p.Prepare()
			c.inspect(p)
			return nil
		},
	}
}

func (c *CLI) inspect(p *marionette.Puppet) {
	printTitle(c.out, "Nodes")
	printBlock(c.out, p.Dump())

	printTitle(c.out, "Parameters")
	for _, param := range p.Params() {
		kind := "1D"
		if param.IsVec2 {
			kind = "2D"
		}
		detail := fmt.Sprintf("%s %s %v..%v, %d bindings", iconArrow, kind, param.Min, param.Max, len(param.Bindings))
		printKeyValue(c.out, param.Name, detail)
	}
}
