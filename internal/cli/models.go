package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scadkit/pkg/gallery"
)

// newModelsCmd creates the models command.
func newModelsCmd() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the demo models",
		Long: `Models lists the built-in demo models. With --pick, an interactive
picker is shown and the selected model is built to OpenSCAD source in the
current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick {
				return runModelsPick(cmd.Context())
			}
			return runModelsList()
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "pick a model interactively and build it")

	return cmd
}

func runModelsList() error {
	fmt.Println(StyleTitle.Render("Models"))
	printNewline()
	for _, m := range gallery.Models() {
		fmt.Println("  " + StyleHighlight.Render(fmt.Sprintf("%-12s", m.Name)) + StyleDim.Render(m.Description))
	}
	printNewline()
	printNextStep("Build one", "scadkit build <model>")
	return nil
}

func runModelsPick(ctx context.Context) error {
	picker := NewModelListModel(gallery.Models())
	prog := tea.NewProgram(picker, tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	final, err := prog.Run()
	if err != nil {
		return err
	}

	result, ok := final.(ModelListModel)
	if !ok || result.Selected == nil {
		printInfo("No model selected")
		return nil
	}

	return runBuild(ctx, result.Selected.Model.Name, buildParams{format: "scad"})
}
