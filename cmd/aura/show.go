package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
	"github.com/aura-blueprint/aura/internal/llm"
	"github.com/aura-blueprint/aura/internal/presentation"
	"github.com/aura-blueprint/aura/internal/presentation/export"
)

func newShowCmd(a *app) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one section of a recent blueprint",
		Long: `Prints a section of a recent blueprint. Sections: overview, users, techstack,
architecture, workflow, risks, resources, or "all". Unknown names show the overview.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.show(args[0], section)
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", string(presentation.SectionOverview), "section to print, or \"all\"")
	return cmd
}

func (a *app) show(id, section string) error {
	item, err := a.lookup(id)
	if err != nil {
		return err
	}
	bp, err := a.present(item)
	if err != nil {
		return err
	}
	a.renderSection(bp, section)
	return nil
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a recent blueprint as a document",
		Example: `  aura export 1a2b3c4d
  aura export 1a2b3c4d --format markdown -o plan.md
  aura export 1a2b3c4d --format json -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			item, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			bp, err := a.present(item)
			if err != nil {
				return err
			}
			return a.export(bp, f, output)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatPDF), "pdf, markdown, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, \"-\" for stdout (default <title>-blueprint.<ext>)")
	return cmd
}

func (a *app) export(bp *domain.Blueprint, format export.Format, output string) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, bp, format); err != nil {
		a.log().Sugar().Errorw("export failed", "kind", domain.KindOf(err), "format", format, "error", err)
		return errors.New(domain.UserMessage(err))
	}

	if output == "-" {
		_, err := a.out.Write(buf.Bytes())
		return err
	}
	if output == "" {
		output = export.FileName(bp, format)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		a.log().Sugar().Errorw("export failed", "kind", domain.KindExportFailure, "path", output, "error", err)
		return errors.New(domain.DefaultMessage(domain.KindExportFailure))
	}
	fmt.Fprintf(a.errOut, "Exported %s\n", output)
	return nil
}

func newAskCmd(a *app) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "ask <id> [question...]",
		Short: "Ask the AI about one section of a recent blueprint",
		Long: `Asks a question grounded in one blueprint section. Without a question on the
command line, questions are read line by line from standard input and the
conversation is kept until end of input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			bp, err := a.present(item)
			if err != nil {
				return err
			}
			sec := presentation.NewNavigator().Select(presentation.Section(section))
			if len(args) > 1 {
				_, err := a.ask(cmd.Context(), bp, sec, strings.Join(args[1:], " "), nil)
				return err
			}
			return a.converse(cmd.Context(), bp, sec)
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", string(presentation.SectionOverview), "section the question is about")
	return cmd
}

func (a *app) ask(ctx context.Context, bp *domain.Blueprint, sec presentation.Section, question string, turns []llm.Message) (string, error) {
	answer, err := a.api.Ask(ctx, service.ChatRequest{
		Question:       question,
		SectionName:    sec.Title(),
		SectionContext: presentation.SectionContext(bp, sec),
		History:        turns,
	})
	if err != nil {
		return "", errors.New(domain.UserMessage(err))
	}
	a.printMarkdown(answer + "\n")
	return answer, nil
}

func (a *app) converse(ctx context.Context, bp *domain.Blueprint, sec presentation.Section) error {
	var turns []llm.Message
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		q := strings.TrimSpace(sc.Text())
		if q == "" {
			continue
		}
		answer, err := a.ask(ctx, bp, sec, q, turns)
		if err != nil {
			// One failed question does not end the conversation.
			fmt.Fprintf(a.errOut, "[warn] %s\n", err)
			continue
		}
		turns = append(turns,
			llm.Message{Role: llm.RoleUser, Content: q},
			llm.Message{Role: llm.RoleAssistant, Content: answer},
		)
		if len(turns) > service.MaxChatHistory {
			turns = turns[len(turns)-service.MaxChatHistory:]
		}
	}
	return sc.Err()
}
