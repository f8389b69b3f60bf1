package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"echolens/internal/catalog"
	"echolens/internal/config"
	"echolens/internal/fetchers"
	"echolens/internal/hunt"
	"echolens/internal/llm"
	"echolens/internal/logger"
	"echolens/internal/mocks"
	"echolens/internal/narrative"
	"echolens/internal/reports"
	"echolens/internal/server"
	"echolens/internal/storage"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "echolens",
		Short:         "The Echo Lens exoplanet hunting console",
		Version:       config.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the console over HTTP",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "systems",
			Short: "List the star systems in the catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSystems(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:               "hunt <system-id>",
			Short:             "Hunt for echoes around one star system",
			Args:              cobra.ExactArgs(1),
			ValidArgsFunction: completeSystemIDs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHunt(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "facts",
			Short: "Print the fun-fact pool, including the configured feed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFacts(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "upload <file.csv>",
			Short: "Classify every row of a CSV file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runUpload(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
	)
	return root
}

// loadConfig reads the environment and applies the log settings
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runServe(parent context.Context) error {
	ctx, stop := signalContext(parent)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting The Echo Lens", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"classifier":  cfg.ClassifierURL,
		"mockup":      cfg.MockupMode,
	})

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	return srv.Start(ctx)
}

func runSystems(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPERIOD (days)\tRADIUS (Earth)\tTEQ (K)")
	for _, e := range cat.Systems() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\n",
			e.ID, e.Record.Name, e.Record.Period, e.Record.PlanetRadius, e.Record.EquilibriumTemp)
	}
	return tw.Flush()
}

func completeSystemIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var ids []string
	for _, id := range cat.IDs() {
		if strings.HasPrefix(id, toComplete) {
			ids = append(ids, id)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

const factFeedLimit = 20

func runFacts(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	facts := catalog.DefaultFacts()
	if cfg.FactsFeedURL != "" {
		fetcher := fetchers.NewDataFetcher(fetchers.Options{Timeout: cfg.RequestTimeout})
		extra, err := fetcher.FetchFacts(ctx, cfg.FactsFeedURL, factFeedLimit)
		if err != nil {
			logger.Warn("Fact feed unavailable, using built-in facts", map[string]interface{}{"error": err.Error()})
		} else {
			facts.Extend(extra...)
		}
	}

	for _, fact := range facts.All() {
		fmt.Fprintf(out, "- %s\n", fact)
	}
	return nil
}

// newCLIFetcher builds the classifier client, starting the stand-in
// classifier on a loopback port in mockup mode.
func newCLIFetcher(cfg *config.Config) (*fetchers.DataFetcher, func(), error) {
	predictURL, csvURL := cfg.PredictURL(), cfg.CSVURL()
	stop := func() {}

	if cfg.MockupMode {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start mock classifier: %w", err)
		}
		mockSrv := &http.Server{Handler: mocks.NewClassifier(time.Now().UnixNano()), ReadHeaderTimeout: 5 * time.Second}
		go mockSrv.Serve(ln)
		stop = func() { mockSrv.Close() }

		base := "http://" + ln.Addr().String()
		predictURL, csvURL = base+cfg.PredictPath, base+cfg.CSVPath
	}

	return fetchers.NewDataFetcher(fetchers.Options{
		PredictURL: predictURL,
		CSVURL:     csvURL,
		Timeout:    cfg.RequestTimeout,
		RetryCount: cfg.RetryCount,
	}), stop, nil
}

func runHunt(parent context.Context, out io.Writer, id string) error {
	ctx, stop := signalContext(parent)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}
	fetcher, stopMock, err := newCLIFetcher(cfg)
	if err != nil {
		return err
	}
	defer stopMock()

	hcfg := hunt.Config{
		Catalog:    cat,
		Classifier: fetcher,
		Sequencer:  narrative.NewSequencer(cfg.NarrativeInterval),
	}
	var archive *reports.ReportService
	if cfg.ArchiveEnabled {
		client, err := storage.NewStorageClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		archive = reports.NewReportService(client, llm.NewNarrator(cfg.OpenAIAPIKey, cfg.OpenAIModel), config.GetVersion())
		hcfg.Recorder = archive
	}

	console := hunt.NewConsole(hcfg)
	defer console.Close()

	updates, unsubscribe := console.Subscribe()
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		last := ""
		for s := range updates {
			if s.Phase == hunt.PhaseLoading && s.Placeholder != last && s.Placeholder != hunt.PlaceholderIdle {
				fmt.Fprintf(out, "  %s\n", s.Placeholder)
				last = s.Placeholder
			}
		}
	}()

	fmt.Fprintf(out, "[%s] %s\n", hunt.StatusTransmitting, id)
	state, huntErr := console.Hunt(ctx, id)
	unsubscribe()
	<-printed

	if huntErr != nil {
		if errors.Is(huntErr, catalog.ErrUnknownSystem) {
			return huntErr
		}
		fmt.Fprintf(out, "[%s] %s\n", state.MissionStatus, state.Placeholder)
		return huntErr
	}

	fmt.Fprintf(out, "[%s] %s\n", state.MissionStatus, state.Placeholder)
	if p := state.Profile; p != nil {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Name\t%s\n", p.Name)
		fmt.Fprintf(tw, "Prediction\t%s\n", p.Prediction)
		fmt.Fprintf(tw, "Distance\t%s\n", p.Distance)
		fmt.Fprintf(tw, "Orbital period\t%s\n", p.Period)
		fmt.Fprintf(tw, "Size\t%s\n", p.Size)
		fmt.Fprintf(tw, "Habitability\t%s\n", p.HabitabilityWidth)
		fmt.Fprintf(tw, "Confidence\t%s\n", confidenceMeter(p.ConfidenceDots))
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if archive != nil {
		archive.Wait()
		if list, err := archive.List(ctx, 1); err == nil && len(list) > 0 {
			fmt.Fprintf(out, "Archived to %s\n", filepath.ToSlash(list[0].Folder))
		}
	}
	return nil
}

func confidenceMeter(dots []bool) string {
	meter := make([]rune, len(dots))
	for i, on := range dots {
		if on {
			meter[i] = '●'
		} else {
			meter[i] = '○'
		}
	}
	return string(meter)
}

func runUpload(parent context.Context, out io.Writer, path string) error {
	ctx, stop := signalContext(parent)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	fetcher, stopMock, err := newCLIFetcher(cfg)
	if err != nil {
		return err
	}
	defer stopMock()

	result, err := fetcher.UploadCSV(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	text, err := result.Indented()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}
