package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/config"
	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
	"github.com/aura-blueprint/aura/internal/bootstrap"
	"github.com/aura-blueprint/aura/internal/client"
	"github.com/aura-blueprint/aura/internal/history"
	"github.com/aura-blueprint/aura/internal/logging"
	"github.com/aura-blueprint/aura/internal/presentation"
	"github.com/aura-blueprint/aura/internal/session"
)

// remote is the analysis endpoint as seen by the CLI.
type remote interface {
	Analyze(ctx context.Context, idea string) (*domain.Blueprint, error)
	Ask(ctx context.Context, req service.ChatRequest) (string, error)
}

// app holds what every command needs. Tests fill it directly; otherwise
// setup builds it from the environment.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger  *zap.Logger
	store   history.Store
	api     remote
	closer  io.Closer
	timeout time.Duration
	pacing  presentation.Pacing

	verbose bool
	plain   bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "aura",
		Short: "Turn a project idea into a structured blueprint",
		Long: `aura sends a free-text project idea to the analysis service and presents
the resulting blueprint: overview, users, tech stack, architecture, workflow,
risks and learning resources. The five most recent blueprints are kept locally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "print raw Markdown instead of styled terminal output")

	root.AddCommand(
		newGenerateCmd(a),
		newHistoryCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newAskCmd(a),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	if a.store != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := "warn"
	if a.verbose {
		level = cfg.App.LogLevel
	}
	if a.logger, err = logging.New(level, cfg.App.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, closer, err := bootstrap.OpenHistory(ctx, cfg, a.logger)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if err := store.Load(ctx); err != nil {
		// Corrupt or unreachable history starts empty.
		a.logger.Warn("history not loaded", zap.String("kind", string(domain.KindOf(err))), zap.Error(err))
	}
	a.store, a.closer = store, closer

	a.api = client.New(client.Config{
		BaseURL: cfg.Client.APIURL,
		APIKey:  cfg.Client.APIKey,
		Timeout: cfg.Client.GenerationTimeout,
		Logger:  a.logger,
	})
	a.timeout = cfg.Client.GenerationTimeout
	a.pacing = presentation.DefaultPacing
	return nil
}

// teardown is safe to call more than once.
func (a *app) teardown() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

// notifier prints session notifications as single lines on stderr.
func (a *app) notifier() session.Notifier {
	return session.NotifierFunc(func(n session.Notification) {
		fmt.Fprintf(a.errOut, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
	})
}

// lookup finds a history item by full id or unique id prefix.
func (a *app) lookup(id string) (history.Item, error) {
	if item, ok := a.store.Get(id); ok {
		return item, nil
	}
	var found []history.Item
	for _, item := range a.store.List() {
		if strings.HasPrefix(item.ID, id) {
			found = append(found, item)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return history.Item{}, fmt.Errorf("no recent blueprint with id %q", id)
	default:
		return history.Item{}, fmt.Errorf("id prefix %q matches %d blueprints", id, len(found))
	}
}

// present opens a recent blueprint through the session machine.
func (a *app) present(item history.Item) (*domain.Blueprint, error) {
	m := session.NewMachine(a.api, a.store, session.WithLogger(a.log()))
	if err := m.SelectRecent(item); err != nil {
		return nil, err
	}
	return m.Snapshot().Blueprint, nil
}

func (a *app) printMarkdown(md string) {
	if a.plain {
		fmt.Fprint(a.out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(a.out, md)
		return
	}
	styled, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.out, md)
		return
	}
	fmt.Fprint(a.out, styled)
}

func (a *app) renderSection(bp *domain.Blueprint, name string) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		a.printMarkdown(presentation.RenderAll(bp))
		return
	}
	nav := presentation.NewNavigator()
	a.printMarkdown(presentation.Render(bp, nav.Select(presentation.Section(name))))
}
