// Catalog listings for CLI commands.

package cli

import (
	"fmt"

	"github.com/richinex/procrustes/size"
	"github.com/richinex/procrustes/summarize"
	"github.com/richinex/procrustes/tools"
)

// ListStrategies prints the supported summarization strategies.
func ListStrategies() {
	fmt.Println("Available strategies:")
	fmt.Println()

	for _, strategy := range summarize.SupportedStrategies() {
		fmt.Printf("  %s\n", strategy)
		fmt.Printf("    %s\n", strategy.Description())
		fmt.Println()
	}
}

// ListTools prints the size tools available to agent-assisted generation.
func ListTools(verbose bool) {
	// The limit only parameterizes validate_size; any positive value
	// yields the same metadata.
	registry, err := tools.ForSizeGovernance(size.NewMeasurer(), size.UnitCharacters, 100)
	if err != nil {
		fmt.Printf("Failed to build tool registry: %v\n", err)
		return
	}

	fmt.Println("Available tools:")
	fmt.Println()

	for _, meta := range registry.List() {
		fmt.Printf("  %s\n", meta.Name)
		fmt.Printf("    %s\n", meta.Description)

		if verbose && len(meta.Parameters) > 0 {
			fmt.Println("    Parameters:")
			for _, param := range meta.Parameters {
				req := ""
				if param.Required {
					req = "*"
				}
				fmt.Printf("      %s%s: %s - %s\n", param.Name, req, param.ParamType, param.Description)
			}
		}
		fmt.Println()
	}
}
