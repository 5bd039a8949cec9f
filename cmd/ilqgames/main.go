package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/config"
	"github.com/MikFerrari/ilqgames/internal/cost"
	"github.com/MikFerrari/ilqgames/internal/experiment"
	"github.com/MikFerrari/ilqgames/internal/lqgame"
	"github.com/MikFerrari/ilqgames/internal/storage"
)

var (
	dataDir    string
	horizon    int
	dt         float64
	reg        float64
	initState  []float64
	configFile string
	preset     string
	benchIters int

	log zerolog.Logger
)

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "ilqgames",
		Short: "open-loop LQ game solver lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ilqgames", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [game]",
		Short: "solve a game and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runGame,
	}
	runCmd.Flags().IntVar(&horizon, "horizon", config.DefaultHorizon, "time steps including terminal")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&reg, "reg", config.DefaultRegularization, "control Hessian regularization")
	runCmd.Flags().Float64SliceVar(&initState, "x0", nil, "initial state perturbation")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	gamesCmd := &cobra.Command{
		Use:   "games",
		Short: "list available games",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			for _, name := range registry.ListGames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [game]",
		Short: "list available presets for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for game: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [game]",
		Short: "benchmark repeated solves",
		Args:  cobra.ExactArgs(1),
		RunE:  benchGame,
	}
	benchCmd.Flags().IntVar(&horizon, "horizon", config.DefaultHorizon, "time steps including terminal")
	benchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	benchCmd.Flags().IntVar(&benchIters, "iters", 100, "number of solves")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, gamesCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGame(cmd *cobra.Command, args []string) error {
	game := args[0]

	if preset != "" {
		cfg := config.GetPreset(game, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(game))
		}
		if !cmd.Flags().Changed("horizon") {
			horizon = cfg.Horizon
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("x0") {
			initState = cfg.InitState
		}
		if !cmd.Flags().Changed("reg") && cfg.Regularization > 0 {
			reg = cfg.Regularization
		}
	}

	// Config file fills in anything the CLI flags did not override.
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("horizon") {
			horizon = cfg.Horizon
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("x0") && len(cfg.InitState) > 0 {
			initState = cfg.InitState
		}
		if !cmd.Flags().Changed("reg") && cfg.Regularization > 0 {
			reg = cfg.Regularization
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	g, err := registry.GetGame(game, dt)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Game:           game,
		Horizon:        horizon,
		Dt:             dt,
		InitState:      initState,
		Regularization: reg,
	})
	if err := exp.Setup(g, registry.DefaultMetrics(g)); err != nil {
		return err
	}

	log.Info().Str("game", game).Int("horizon", horizon).Float64("dt", dt).Msg("solving")
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		var numErr lqgame.NumericalError
		if errors.As(err, &numErr) {
			log.Error().Int("step", numErr.Step).Int("player", numErr.Player).
				Msg("subproblem ill-posed, try a larger --reg")
		}
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(game, horizon, dt, result)
	if err != nil {
		return err
	}
	log.Info().Str("run", runID).Dur("elapsed", elapsed).Msg("solved")

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("players: %d\n", len(result.Controls))
	fmt.Printf("steps: %d\n", len(result.States))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGAME\tTIME\tHORIZON\tDT\tPLAYERS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\n",
			run.ID,
			run.Game,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			run.Dt,
			run.NumPlayers,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("game: %s\n", meta.Game)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	maxPlots := 8
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(stateCaption(meta.Game, varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func stateCaption(game string, varIdx int) string {
	names := map[string][]string{
		"regulation": {"position", "velocity"},
		"merge":      {"leader position", "leader velocity", "follower position", "follower velocity"},
		"pursuit": {
			"pursuer x", "pursuer y", "pursuer vx", "pursuer vy",
			"evader x", "evader y", "evader vx", "evader vy",
		},
	}
	if labels, ok := names[game]; ok && varIdx < len(labels) {
		return labels[varIdx]
	}
	return fmt.Sprintf("x%d vs time", varIdx)
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func benchGame(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	g, err := registry.GetGame(args[0], dt)
	if err != nil {
		return err
	}

	dims := g.System.Dims()
	solver := lqgame.NewOpenLoopSolver(dims, horizon)
	lin := g.System.Linearization(horizon)
	quad := cost.QuadraticizeHorizon(dims, g.Costs, horizon, nil, nil)
	x0 := mat.NewVecDense(dims.XDim, g.X0)

	start := time.Now()
	for i := 0; i < benchIters; i++ {
		if _, err := solver.Solve(lin, quad, x0); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("%d solves in %v (%.1f solves/sec)\n",
		benchIters, elapsed, float64(benchIters)/elapsed.Seconds())
	return nil
}
