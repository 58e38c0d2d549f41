package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coilpos/internal/config"
	"github.com/matzehuels/coilpos/pkg/coil"
	"github.com/matzehuels/coilpos/pkg/track"
)

// coilRow is the JSON shape for one coil in `layout --json` output.
type coilRow struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	DX   float64 `json:"dx"`
	DZ   float64 `json:"dz"`
}

func newLayoutCmd() *cobra.Command {
	var cfgPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Generate an initial coil layout from a machine description",
		Long:  `Layout builds the reference PF track from the machine's shape parameters, equispaces PF coils along it and stacks the central solenoid, then prints the resulting coil set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			_, set, err := buildCoilSet(cfg, cmd)
			if err != nil {
				return err
			}

			if asJSON {
				rows := make([]coilRow, 0, len(set.Coils()))
				for _, c := range set.Coils() {
					rows = append(rows, coilRow{
						Name: c.Key.String(),
						Type: c.Key.Kind.String(),
						X:    c.X, Z: c.Z, DX: c.DX, DZ: c.DZ,
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return err
				}
			} else {
				printCoilTable(cmd, set)
			}

			p.done(fmt.Sprintf("Placed %d coils", len(set.Coils())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "machine description TOML (defaults to a DEMO-like machine)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}

// loadConfig reads the machine description, falling back to the built-in
// DEMO-like defaults when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildCoilSet constructs the reference track and coil set described by
// the config.
func buildCoilSet(cfg *config.Config, cmd *cobra.Command) (*track.Track, *coil.Set, error) {
	tr, err := layoutTrack(cfg)
	if err != nil {
		return nil, nil, err
	}
	pos := cfg.Positioner()
	pos.Track = tr
	pos.Logger = loggerFromContext(cmd.Context())
	set, err := pos.MakeCoilSet(cfg.Coils.DCoil)
	if err != nil {
		return nil, nil, err
	}
	return tr, set, nil
}

func printCoilTable(cmd *cobra.Command, set *coil.Set) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleHeader.Render(fmt.Sprintf("%-6s %-4s %9s %9s %7s %7s", "NAME", "TYPE", "X [m]", "Z [m]", "DX [m]", "DZ [m]")))
	for _, c := range set.Coils() {
		line := fmt.Sprintf("%-6s %-4s %9.3f %9.3f %7.3f %7.3f", c.Key, c.Key.Kind, c.X, c.Z, c.DX, c.DZ)
		fmt.Fprintln(out, styleValue.Render(line))
	}
}
