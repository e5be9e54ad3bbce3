package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/aura-blueprint/aura/internal/blueprint/analysis"
	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/presentation"
	"github.com/aura-blueprint/aura/internal/session"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		file    string
		section string
	)
	cmd := &cobra.Command{
		Use:   "generate [idea...]",
		Short: "Generate a blueprint from a project idea",
		Long: `Sends the idea to the analysis service, shows the detected project type and
prints the chosen section of the blueprint. The idea comes from the arguments,
from --file, or from standard input.`,
		Example: `  aura generate "A marketplace for local farmers"
  aura generate --file idea.txt --section techstack
  echo "Smart plant pot" | aura generate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			idea, err := readIdea(a.in, file, args)
			if err != nil {
				return err
			}
			return a.generate(cmd.Context(), idea, section)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the idea from a file")
	cmd.Flags().StringVarP(&section, "section", "s", string(presentation.SectionOverview), "section to print, or \"all\"")
	return cmd
}

func readIdea(in io.Reader, file string, args []string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read idea: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(io.LimitReader(in, 64<<10))
		if err != nil {
			return "", fmt.Errorf("read idea: %w", err)
		}
		return string(data), nil
	}
}

func (a *app) generate(ctx context.Context, idea, section string) error {
	// The machine repeats this check; failing here avoids a session at all.
	if _, err := analysis.ValidateIdea(idea); err != nil {
		return errors.New(domain.UserMessage(err))
	}

	m := session.NewMachine(a.api, a.store,
		session.WithTimeout(a.timeout),
		session.WithNotifier(a.notifier()),
		session.WithLogger(a.log()),
	)

	stopScan := a.scan(ctx)
	bp, err := m.Submit(ctx, idea)
	stopScan()
	if err != nil {
		return reportedError{err: err}
	}

	fmt.Fprintf(a.errOut, "Detected: %s\n", bp.ProjectType.Info().Name)
	if err := sleep(ctx, a.pacing.DetectionSettle); err != nil {
		return err
	}
	if err := m.Complete(); err != nil {
		return err
	}

	a.renderSection(m.Snapshot().Blueprint, section)
	fmt.Fprintf(a.errOut, "Saved as %s. Use `aura show %s --section <name>` for other sections.\n", bp.ID, shortID(bp.ID))
	return nil
}

// scan cycles through the project types on stderr until the returned stop
// function is called.
func (a *app) scan(ctx context.Context) (stop func()) {
	if a.pacing.ScanStep <= 0 {
		return func() {}
	}
	types := domain.ProjectTypes()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(a.pacing.ScanStep)
		defer t.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(a.errOut, "\rAnalyzing: %-18s", types[i%len(types)].Name)
			select {
			case <-done:
				fmt.Fprint(a.errOut, "\r"+strings.Repeat(" ", 30)+"\r")
				return
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
