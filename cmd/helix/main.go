// Command helix views protein structures (and arbitrary OBJ meshes) in
// the terminal.
//
//	helix 1CRN                  Fetch and view crambin from the RCSB PDB
//	helix 4HHB --chain A        View only chain A
//	helix ./structure.cif       View a local PDB/CIF file (via PyMOL)
//	helix ./mesh.obj            View an OBJ wireframe directly
//	helix search insulin        Search the RCSB PDB
//	helix cache [clear]         Inspect or clear the export cache
//
// Cartoon rendering of PDB/CIF structures requires PyMOL on the PATH.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/helix"
)

var (
	flagChain  string
	flagColor  string
	flagMode   string
	flagFill   bool
	flagPoints bool
	flagFPS    int
	flagStatic bool
)

var (
	idStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func main() {
	root := &cobra.Command{
		Use:   "helix <PDB_ID | file.pdb | file.cif | file.obj>",
		Short: "View protein structures in your terminal",
		Long: `helix renders 3D molecular structures as colored Braille or block
glyphs in the terminal, with mouse-driven orbit, pan, and zoom.

Color schemes: ` + strings.Join(helix.SchemeNames(), ", ") + `

Controls:
  Mouse drag     Rotate around the model (disables auto-rotate)
  Shift + drag   Pan the view
  Scroll         Zoom in/out
  r              Toggle auto-rotation
  c              Cycle color schemes
  b              Toggle Braille/block glyphs
  0              Reset the view
  q, Ctrl-C      Quit

Cartoon rendering of PDB/CIF structures requires PyMOL on the PATH.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0])
		},
	}
	root.Flags().StringVarP(&flagChain, "chain", "n", "", "show only the specified chain (e.g. A)")
	root.Flags().StringVarP(&flagColor, "color", "c", "coolwarm", "color scheme")
	root.Flags().StringVar(&flagMode, "mode", "braille", "glyph mode: braille or block")
	root.Flags().BoolVar(&flagFill, "fill", false, "fill triangles instead of drawing the wireframe")
	root.Flags().BoolVar(&flagPoints, "points", false, "draw vertices as points only")
	root.Flags().IntVar(&flagFPS, "fps", 30, "target frames per second")
	root.Flags().BoolVar(&flagStatic, "static", false, "start with auto-rotation off")

	root.AddCommand(searchCmd(), cacheCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runView(input string) error {
	scheme := helix.SchemeIndex(flagColor)
	if scheme < 0 {
		return fmt.Errorf("unknown color scheme %q (available: %s)",
			flagColor, strings.Join(helix.SchemeNames(), ", "))
	}
	var mode helix.GlyphMode
	switch flagMode {
	case "braille":
		mode = helix.ModeBraille
	case "block":
		mode = helix.ModeBlock
	default:
		return fmt.Errorf("unknown glyph mode %q (braille or block)", flagMode)
	}
	if flagFill && flagPoints {
		return fmt.Errorf("--fill and --points are mutually exclusive")
	}

	if flagChain != "" {
		fmt.Fprintf(os.Stderr, "Loading %s (chain %s)...\n", input, flagChain)
	} else {
		fmt.Fprintf(os.Stderr, "Loading %s...\n", input)
	}
	model, err := helix.LoadModel(input, flagChain)
	if err != nil {
		return err
	}
	if flagFill {
		model.Kind = helix.KindTriangles
	}
	if flagPoints {
		model.Kind = helix.KindPoints
	}

	term, err := helix.OpenTerminal()
	if err != nil {
		return err
	}
	defer term.Close()

	sess := helix.NewSession(term, model, helix.Config{
		Name:         input,
		Scheme:       scheme,
		Mode:         mode,
		TargetFPS:    flagFPS,
		NoAutoRotate: flagStatic,
	})
	return sess.Run()
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the RCSB PDB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			fmt.Fprintf(os.Stderr, "Searching RCSB PDB for %q...\n", query)

			results, err := helix.NewRCSB().Search(query)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Printf("No results found for %q\n", query)
				return nil
			}
			fmt.Println()
			for _, r := range results {
				title := r.Title
				if len(title) > 60 {
					title = title[:57] + "..."
				}
				fmt.Printf("  %s  %s\n", idStyle.Render(r.ID), titleStyle.Render(title))
			}
			fmt.Println(dimStyle.Render("\nUse: helix <PDB_ID> to view a structure"))
			return nil
		},
	}
}

func cacheCmd() *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Show cartoon export cache info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, size, dir, err := helix.CacheInfo()
			if err != nil {
				return err
			}
			fmt.Printf("Cache directory: %s\n", dir)
			fmt.Printf("Files: %d\n", count)
			fmt.Printf("Total size: %.2f MB\n", float64(size)/1024/1024)
			fmt.Println(dimStyle.Render("\nUse 'helix cache clear' to remove cached files."))
			return nil
		},
	}
	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear cached cartoon exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := helix.CacheClear()
			if err != nil {
				return err
			}
			fmt.Printf("Cleared %d cached files.\n", removed)
			return nil
		},
	})
	return cache
}
