package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tabspace/internal/document"
	"tabspace/internal/layout"
)

var layoutJSON bool

// layoutCmd prints the settled startup layout
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the workspace layout",
	Long: `Loads the configured workspace, restores the highlighted panel and prints
the resulting panels and tabs. YAML by default; --json for JSON.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().BoolVar(&layoutJSON, "json", false, "print JSON instead of YAML")
}

// layoutReport is the printed form of a layout.
type layoutReport struct {
	Highlighted string                               `json:"highlighted" yaml:"highlighted"`
	Panels      []*layout.Panel[document.Descriptor] `json:"panels" yaml:"panels"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.shutdown()

	report := layoutReport{Highlighted: ws.store.Highlighted(), Panels: ws.store.Panels()}
	var out []byte
	if layoutJSON {
		out, err = json.MarshalIndent(report, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = yaml.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
