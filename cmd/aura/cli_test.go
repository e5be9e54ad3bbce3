package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
	"github.com/aura-blueprint/aura/internal/history"
)

type fakeRemote struct {
	bp   *domain.Blueprint
	err  error
	asks []service.ChatRequest
}

func (f *fakeRemote) Analyze(context.Context, string) (*domain.Blueprint, error) {
	if f.err != nil {
		return nil, f.err
	}
	bp := *f.bp
	return &bp, nil
}

func (f *fakeRemote) Ask(_ context.Context, req service.ChatRequest) (string, error) {
	f.asks = append(f.asks, req)
	return "answer " + req.Question, nil
}

func sampleBlueprint() *domain.Blueprint {
	bp := &domain.Blueprint{
		Title:       "Farm Market",
		ProjectType: domain.ProjectWebsite,
		Overview:    domain.Overview{Problem: "Farmers lack reach.", Solution: "A local marketplace."},
		TechStack:   []domain.TechItem{{Name: "Go", Category: "Backend", Reason: "simple deploys"}},
		Risks:       []domain.Risk{{Type: "Business Risks", Severity: domain.SeverityLow, Description: "Seasonal demand"}},
	}
	bp.Normalize()
	return bp
}

type harness struct {
	app    *app
	remote *fakeRemote
	store  *history.History
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		remote: &fakeRemote{bp: sampleBlueprint()},
		store:  history.New(history.NewMemoryBackend()),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	h.app = &app{
		in:     strings.NewReader(""),
		out:    h.out,
		errOut: h.errOut,
		logger: zap.NewNop(),
		store:  h.store,
		api:    h.remote,
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	root := newRootCmd(h.app)
	// Styled output depends on the terminal; tests compare raw Markdown.
	root.SetArgs(append([]string{"--plain"}, args...))
	return root.ExecuteContext(context.Background())
}

func (h *harness) saved(t *testing.T) history.Item {
	t.Helper()
	items := h.store.List()
	require.Len(t, items, 1)
	return items[0]
}

func TestGenerate(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "generate", "A", "marketplace", "for", "farmers"))
	assert.Contains(t, h.out.String(), "## Project Overview")
	assert.Contains(t, h.out.String(), "A local marketplace.")
	assert.Contains(t, h.errOut.String(), "Detected: Website")

	item := h.saved(t)
	assert.Equal(t, "Farm Market", item.Title)
	assert.NotEmpty(t, item.ID)
}

func TestGenerate_FromStdinWithSection(t *testing.T) {
	h := newHarness(t)
	h.app.in = strings.NewReader("  A marketplace for farmers\n")

	require.NoError(t, h.run(t, "generate", "--section", "techstack"))
	assert.Contains(t, h.out.String(), "## Tech Stack")
	assert.Contains(t, h.out.String(), "| Go | Backend | simple deploys |")
}

func TestGenerate_FromFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "idea.txt")
	require.NoError(t, os.WriteFile(path, []byte("A marketplace for farmers"), 0o600))

	require.NoError(t, h.run(t, "generate", "--file", path))
	h.saved(t)
}

func TestGenerate_InvalidIdea(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "generate", "   ")
	require.Error(t, err)
	assert.Equal(t, "Idea is required", err.Error())
	assert.Empty(t, h.store.List())
}

func TestGenerate_Failure(t *testing.T) {
	h := newHarness(t)
	h.remote.err = domain.NewError(domain.KindQuotaExhausted, nil)

	err := h.run(t, "generate", "A marketplace")
	require.Error(t, err)
	assert.Equal(t, domain.DefaultMessage(domain.KindQuotaExhausted), err.Error())
	var reported reportedError
	assert.True(t, errors.As(err, &reported))
	assert.True(t, domain.IsKind(err, domain.KindQuotaExhausted))
	assert.Equal(t, 1, strings.Count(h.errOut.String(), "Generation failed"))
	assert.Contains(t, h.errOut.String(), "[error]")
	assert.Empty(t, h.store.List())
}

type recordingCloser struct{ closed int }

func (c *recordingCloser) Close() error {
	c.closed++
	return nil
}

func TestExecute_ReportsFailureOnce(t *testing.T) {
	h := newHarness(t)
	h.remote.err = domain.NewError(domain.KindQuotaExhausted, nil)

	code := execute(context.Background(), h.app, []string{"--plain", "generate", "A marketplace"})
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, strings.Count(h.errOut.String(), domain.DefaultMessage(domain.KindQuotaExhausted)))
	assert.NotContains(t, h.errOut.String(), "Error:")
}

func TestExecute_PrintsUnreportedErrors(t *testing.T) {
	h := newHarness(t)

	code := execute(context.Background(), h.app, []string{"--plain", "generate", "   "})
	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "Error: Idea is required")
}

func TestExecute_ClosesHistoryOnError(t *testing.T) {
	h := newHarness(t)
	closer := &recordingCloser{}
	h.app.closer = closer

	code := execute(context.Background(), h.app, []string{"--plain", "show", "missing"})
	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "no recent blueprint")
	assert.Equal(t, 1, closer.closed)

	h.app.teardown()
	assert.Equal(t, 1, closer.closed)
}

func TestExecute_ClosesHistoryOnSuccess(t *testing.T) {
	h := newHarness(t)
	closer := &recordingCloser{}
	h.app.closer = closer

	assert.Equal(t, 0, execute(context.Background(), h.app, []string{"--plain", "history", "list"}))
	assert.Equal(t, 1, closer.closed)
}

func TestHistoryCommands(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "history", "list"))
	assert.Contains(t, h.out.String(), "No recent blueprints.")

	require.NoError(t, h.run(t, "generate", "A marketplace"))
	item := h.saved(t)

	require.NoError(t, h.run(t, "history", "list"))
	assert.Contains(t, h.out.String(), shortID(item.ID))
	assert.Contains(t, h.out.String(), "Farm Market")

	require.NoError(t, h.run(t, "history", "show", shortID(item.ID)))
	assert.Contains(t, h.out.String(), "# Farm Market")
	assert.Contains(t, h.out.String(), "## Learning Resources")

	require.NoError(t, h.run(t, "history", "remove", "does-not-exist"))
	assert.Len(t, h.store.List(), 1)

	require.NoError(t, h.run(t, "history", "rm", shortID(item.ID)))
	assert.Empty(t, h.store.List())

	require.NoError(t, h.run(t, "generate", "A marketplace"))
	require.NoError(t, h.run(t, "history", "clear"))
	assert.Empty(t, h.store.List())
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "generate", "A marketplace"))
	item := h.saved(t)

	require.NoError(t, h.run(t, "show", item.ID, "--section", "risks"))
	assert.Contains(t, h.out.String(), "## Risks & Constraints")
	assert.Contains(t, h.out.String(), "### Business Risks")

	require.NoError(t, h.run(t, "show", item.ID, "--section", "nope"))
	assert.Contains(t, h.out.String(), "## Project Overview")

	assert.Error(t, h.run(t, "show", "missing"))
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "generate", "A marketplace"))
	item := h.saved(t)

	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, h.run(t, "export", item.ID, "--format", "markdown", "-o", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Farm Market\n"))

	require.NoError(t, h.run(t, "export", item.ID, "--format", "json", "-o", "-"))
	var bp domain.Blueprint
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &bp))
	assert.Equal(t, item.ID, bp.ID)

	pdfPath := filepath.Join(t.TempDir(), "plan.pdf")
	require.NoError(t, h.run(t, "export", item.ID, "-o", pdfPath))
	data, err = os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Error(t, h.run(t, "export", item.ID, "--format", "docx"))
}

func TestAsk(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "generate", "A marketplace"))
	item := h.saved(t)

	require.NoError(t, h.run(t, "ask", item.ID, "--section", "techstack", "Why", "Go?"))
	assert.Contains(t, h.out.String(), "answer Why Go?")
	require.Len(t, h.remote.asks, 1)
	assert.Equal(t, "Tech Stack", h.remote.asks[0].SectionName)
	assert.Contains(t, h.remote.asks[0].SectionContext, "Go (Backend): simple deploys")
	assert.Empty(t, h.remote.asks[0].History)
}

func TestAsk_Conversation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "generate", "A marketplace"))
	item := h.saved(t)

	h.app.in = strings.NewReader("first question\n\nsecond question\n")
	require.NoError(t, h.run(t, "ask", item.ID))

	require.Len(t, h.remote.asks, 2)
	second := h.remote.asks[1]
	assert.Equal(t, "Project Overview", second.SectionName)
	require.Len(t, second.History, 2)
	assert.Equal(t, "first question", second.History[0].Content)
	assert.Equal(t, "answer first question", second.History[1].Content)
}
