package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coilpos/internal/config"
	"github.com/matzehuels/coilpos/pkg/coil"
	"github.com/matzehuels/coilpos/pkg/layout"
	"github.com/matzehuels/coilpos/pkg/position"
	"github.com/matzehuels/coilpos/pkg/track"
)

func newLmapCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "lmap",
		Short: "Map a generated coil set into normalised optimiser coordinates",
		Long:  `Lmap generates the initial coil layout and runs it through the track mapper, printing the normalised position vector and its bounds — the exact view a positional optimiser would receive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			tr, set, err := buildCoilSet(cfg, cmd)
			if err != nil {
				return err
			}

			mapper := position.NewXZLMapper(tr)
			if cfg.Coils.NCS > 0 {
				_, zmax := tr.ZRange()
				mapper.AttachCS(cfg.Coils.XCS, -zmax, zmax, cfg.Coils.Gap)
			}

			var names []coil.Key
			for _, c := range set.OfKind(coil.KindPF) {
				names = append(names, c.Key)
			}
			l, lb, ub, err := mapper.GetLMap(set, names)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleHeader.Render(fmt.Sprintf("%-6s %8s %8s %8s", "COIL", "L", "LOWER", "UPPER")))
			keys := append(names, csKeys(set)...)
			for i := range l {
				name := "-"
				if i < len(keys) {
					name = keys[i].String()
				}
				row := fmt.Sprintf("%-6s %8.4f %8.4f %8.4f", name, l[i], lb[i], ub[i])
				// A position sitting on a bound was clipped into its slice.
				if l[i] == lb[i] || l[i] == ub[i] {
					fmt.Fprintln(out, styleWarn.Render(row))
				} else {
					fmt.Fprintln(out, styleValue.Render(row))
				}
			}
			fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("track length %.2f m, %s CS layout", tr.Length(), cfg.Coils.Layout)))
			logger.Debug("mapped coil set", "n", len(l))
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "machine description TOML (defaults to a DEMO-like machine)")
	return cmd
}

func csKeys(set *coil.Set) []coil.Key {
	var keys []coil.Key
	for _, c := range set.OfKind(coil.KindCS) {
		keys = append(keys, c.Key)
	}
	return keys
}

// layoutTrack builds the synthetic reference track for a config.
func layoutTrack(cfg *config.Config) (*track.Track, error) {
	return layout.ReferenceTrack(
		cfg.Machine.R0,
		cfg.Machine.Aspect,
		cfg.Machine.Kappa,
		cfg.Track.Extension,
		cfg.Track.Offset,
		cfg.Track.Points,
	)
}
