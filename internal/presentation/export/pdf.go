package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/presentation"
)

const (
	margin     = 20.0
	lineHeight = 5.0
	cellPad    = 2.0
	fontFamily = "Helvetica"
)

// documentDate is stamped into every PDF so identical blueprints produce
// identical bytes.
var documentDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type rgb struct{ r, g, b int }

var (
	colorBand    = rgb{15, 23, 42}
	colorAccent  = rgb{59, 130, 246}
	colorText    = rgb{0, 0, 0}
	colorWhite   = rgb{255, 255, 255}
	colorMuted   = rgb{150, 150, 150}
	colorGrid    = rgb{203, 213, 225}
	severityInks = map[domain.Severity]rgb{
		domain.SeverityHigh:   {239, 68, 68},
		domain.SeverityMedium: {245, 158, 11},
		domain.SeverityLow:    {34, 197, 94},
	}
)

type pdfDoc struct {
	pdf          *fpdf.Fpdf
	tr           func(string) string
	pageW, pageH float64
	contentW     float64
}

func writePDF(w io.Writer, bp *domain.Blueprint) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("{nb}")

	d := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	d.pageW, d.pageH = pdf.GetPageSize()
	d.contentW = d.pageW - 2*margin

	pdf.SetTitle(bp.Title, true)
	pdf.SetCreator("Aura", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", 8)
		d.ink(colorMuted)
		pdf.CellFormat(0, 10, d.tr(fmt.Sprintf("Generated by Aura • Page %d of {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	d.header(bp)
	d.overview(bp)
	d.users(bp)
	d.techStack(bp)
	d.architecture(bp)
	d.workflow(bp)
	d.risks(bp)
	d.resources(bp)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func (d *pdfDoc) ink(c rgb)  { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *pdfDoc) fill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }

// ensure starts a new page unless h millimetres remain above the bottom margin.
func (d *pdfDoc) ensure(h float64) {
	if d.pdf.GetY()+h > d.pageH-margin {
		d.pdf.AddPage()
	}
}

func (d *pdfDoc) header(bp *domain.Blueprint) {
	d.fill(colorBand)
	d.pdf.Rect(0, 0, d.pageW, 45, "F")

	d.ink(colorWhite)
	d.pdf.SetFont(fontFamily, "B", 24)
	d.pdf.SetXY(margin, 12)
	d.pdf.CellFormat(d.contentW, 12, d.firstLine(bp.Title, d.contentW), "", 2, "L", false, 0, "")

	d.pdf.SetFont(fontFamily, "", 12)
	d.pdf.SetXY(margin, 32)
	d.pdf.CellFormat(d.contentW, 8, d.tr("Project Type: "+bp.ProjectType.Label()), "", 2, "L", false, 0, "")

	d.ink(colorText)
	d.pdf.SetXY(margin, 55)
}

func (d *pdfDoc) firstLine(s string, w float64) string {
	lines := d.pdf.SplitLines([]byte(d.tr(s)), w)
	if len(lines) == 0 {
		return ""
	}
	if len(lines) == 1 {
		return string(lines[0])
	}
	return strings.TrimRight(string(lines[0]), " ") + "..."
}

func (d *pdfDoc) sectionTitle(title string) {
	d.ensure(25)
	y := d.pdf.GetY()
	d.fill(colorAccent)
	d.pdf.Rect(margin, y, d.contentW, 10, "F")
	d.ink(colorWhite)
	d.pdf.SetFont(fontFamily, "B", 14)
	d.pdf.SetXY(margin+5, y)
	d.pdf.CellFormat(d.contentW-5, 10, d.tr(title), "", 2, "L", false, 0, "")
	d.ink(colorText)
	d.pdf.SetXY(margin, y+16)
}

func (d *pdfDoc) subSection(title string) {
	d.ensure(20)
	d.pdf.SetFont(fontFamily, "B", 11)
	d.ink(colorAccent)
	d.pdf.SetX(margin)
	d.pdf.CellFormat(d.contentW, 7, d.tr(title), "", 2, "L", false, 0, "")
	d.ink(colorText)
}

func (d *pdfDoc) text(s string) {
	if s == "" {
		return
	}
	d.pdf.SetFont(fontFamily, "", 10)
	d.pdf.SetX(margin)
	d.pdf.MultiCell(d.contentW, lineHeight, d.tr(s), "", "L", false)
	d.pdf.Ln(2)
}

func (d *pdfDoc) bullets(items []string) {
	d.pdf.SetFont(fontFamily, "", 10)
	for _, it := range items {
		d.ensure(8)
		d.pdf.SetX(margin + 5)
		d.pdf.CellFormat(6, lineHeight, d.tr("•"), "", 0, "L", false, 0, "")
		d.pdf.MultiCell(d.contentW-11, lineHeight, d.tr(it), "", "L", false)
		d.pdf.Ln(1)
	}
	d.pdf.Ln(2)
}

func (d *pdfDoc) subList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	d.subSection(title)
	d.bullets(items)
}

// cellStyle overrides the font style and ink of one body cell.
type cellStyle struct {
	bold bool
	ink  *rgb
}

type table struct {
	head   []string
	widths []float64 // fractions of the content width
	rows   [][]string
	style  func(row, col int) cellStyle
}

func (d *pdfDoc) table(t table) {
	if len(t.rows) == 0 {
		return
	}
	widths := make([]float64, len(t.widths))
	for i, f := range t.widths {
		widths[i] = f * d.contentW
	}

	d.ensure(30)
	d.tableRow(widths, t.head, func(int) cellStyle { return cellStyle{bold: true, ink: &colorWhite} }, true)
	for r, row := range t.rows {
		style := func(c int) cellStyle {
			if t.style == nil {
				return cellStyle{bold: c == 0}
			}
			return t.style(r, c)
		}
		if d.pdf.GetY()+d.rowHeight(widths, row, style) > d.pageH-margin {
			d.pdf.AddPage()
			d.tableRow(widths, t.head, func(int) cellStyle { return cellStyle{bold: true, ink: &colorWhite} }, true)
		}
		d.tableRow(widths, row, style, false)
	}
	d.pdf.Ln(8)
}

func (d *pdfDoc) setCellFont(s cellStyle) {
	style := ""
	if s.bold {
		style = "B"
	}
	d.pdf.SetFont(fontFamily, style, 9)
}

func (d *pdfDoc) rowHeight(widths []float64, cells []string, style func(int) cellStyle) float64 {
	lines := 1
	for i, c := range cells {
		d.setCellFont(style(i))
		if n := len(d.pdf.SplitLines([]byte(d.tr(c)), widths[i]-2*cellPad)); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineHeight + 2*cellPad
}

func (d *pdfDoc) tableRow(widths []float64, cells []string, style func(int) cellStyle, head bool) {
	h := d.rowHeight(widths, cells, style)
	y := d.pdf.GetY()
	x := margin

	// Rows are pre-measured; automatic breaks would split a cell.
	d.pdf.SetAutoPageBreak(false, margin)
	defer d.pdf.SetAutoPageBreak(true, margin)

	d.pdf.SetDrawColor(colorGrid.r, colorGrid.g, colorGrid.b)
	for i, c := range cells {
		if head {
			d.fill(colorAccent)
			d.pdf.Rect(x, y, widths[i], h, "FD")
		} else {
			d.pdf.Rect(x, y, widths[i], h, "D")
		}
		s := style(i)
		d.setCellFont(s)
		if s.ink != nil {
			d.ink(*s.ink)
		} else {
			d.ink(colorText)
		}
		d.pdf.SetXY(x+cellPad, y+cellPad)
		d.pdf.MultiCell(widths[i]-2*cellPad, lineHeight, d.tr(c), "", "L", false)
		x += widths[i]
	}
	d.ink(colorText)
	d.pdf.SetXY(margin, y+h)
}

func (d *pdfDoc) overview(bp *domain.Blueprint) {
	d.sectionTitle(presentation.SectionOverview.Title())
	if bp.Overview.Problem != "" {
		d.subSection("Problem")
		d.text(bp.Overview.Problem)
	}
	if bp.Overview.Solution != "" {
		d.subSection("Solution")
		d.text(bp.Overview.Solution)
	}
	d.subList("Key Features", bp.Overview.Features)
	d.subList("Assumptions", bp.Overview.Assumptions)
}

func (d *pdfDoc) users(bp *domain.Blueprint) {
	d.sectionTitle(presentation.SectionUsers.Title())
	d.subList("Primary Users", bp.TargetUsers.Primary)
	d.subList("Secondary Users", bp.TargetUsers.Secondary)
	d.subList("User Personas", bp.TargetUsers.Personas)
}

func (d *pdfDoc) techStack(bp *domain.Blueprint) {
	d.sectionTitle(presentation.SectionTechStack.Title())
	rows := make([][]string, 0, len(bp.TechStack))
	for _, t := range bp.TechStack {
		rows = append(rows, []string{t.Name, t.Category, t.Reason})
	}
	d.table(table{
		head:   []string{"Technology", "Category", "Reason"},
		widths: []float64{0.25, 0.2, 0.55},
		rows:   rows,
	})
}

func (d *pdfDoc) architecture(bp *domain.Blueprint) {
	d.sectionTitle(presentation.SectionArchitecture.Title())
	d.subList("Components", bp.Architecture.Components)
	d.subList("Relationships", bp.Architecture.Relationships)
}

func (d *pdfDoc) workflow(bp *domain.Blueprint) {
	d.sectionTitle(presentation.SectionWorkflow.Title())

	rows := make([][]string, 0, len(bp.Phases))
	for _, p := range bp.Phases {
		tasks := ""
		if len(p.Tasks) > 0 {
			tasks = "• " + strings.Join(p.Tasks, "\n• ")
		}
		rows = append(rows, []string{p.Name, p.Duration, tasks})
	}
	if len(rows) > 0 {
		d.subSection("Development Phases")
		d.table(table{
			head:   []string{"Phase", "Duration", "Tasks"},
			widths: []float64{0.28, 0.17, 0.55},
			rows:   rows,
		})
	}

	phases := bp.WorkflowPhases()
	if len(phases) == 0 {
		d.text(presentation.NoWorkflowMessage)
		return
	}
	for i, p := range phases {
		title := fmt.Sprintf("%d. %s", i+1, p.Name)
		if p.Duration != "" {
			title += " (" + p.Duration + ")"
		}
		d.subSection(title)
		d.text(p.Description)
		if len(p.Tools) > 0 {
			d.text("Tools: " + strings.Join(p.Tools, ", "))
		}
		if p.TeamSize != "" {
			d.text("Team: " + p.TeamSize)
		}
		if len(p.Dependencies) > 0 {
			d.text("Depends on: " + strings.Join(p.Dependencies, ", "))
		}
		tasks := make([]string, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			line := "[" + strings.ToUpper(string(t.Priority)) + "] " + t.Name
			if t.EstimatedHours != nil {
				line += " (" + strconv.FormatFloat(*t.EstimatedHours, 'f', -1, 64) + "h)"
			}
			if t.Description != "" {
				line += ": " + t.Description
			}
			tasks = append(tasks, line)
		}
		d.bullets(tasks)
		d.subList("Deliverables", p.Deliverables)
		d.subList("Milestones", p.Milestones)
	}
}

func (d *pdfDoc) risks(bp *domain.Blueprint) {
	d.sectionTitle(presentation.SectionRisks.Title())
	for _, g := range presentation.GroupRisks(bp.Risks) {
		d.subSection(g.Category)
		rows := make([][]string, 0, len(g.Risks))
		severities := make([]domain.Severity, 0, len(g.Risks))
		for _, r := range g.Risks {
			rows = append(rows, []string{strings.ToUpper(string(r.Severity)), r.Description, r.Mitigation})
			severities = append(severities, r.Severity)
		}
		d.table(table{
			head:   []string{"Severity", "Description", "Mitigation"},
			widths: []float64{0.16, 0.42, 0.42},
			rows:   rows,
			style: func(row, col int) cellStyle {
				if col != 0 {
					return cellStyle{}
				}
				if c, ok := severityInks[severities[row]]; ok {
					return cellStyle{bold: true, ink: &c}
				}
				return cellStyle{bold: true}
			},
		})
	}
}

func (d *pdfDoc) resources(bp *domain.Blueprint) {
	if len(bp.Resources) == 0 {
		return
	}
	d.sectionTitle(presentation.SectionResources.Title())
	for _, g := range presentation.GroupResources(bp.Resources) {
		d.subSection(g.Category)
		rows := make([][]string, 0, len(g.Resources))
		for _, r := range g.Resources {
			rows = append(rows, []string{r.Title, r.URL})
		}
		d.table(table{
			head:   []string{"Title", "URL"},
			widths: []float64{0.4, 0.6},
			rows:   rows,
			style: func(_, col int) cellStyle {
				if col == 1 {
					return cellStyle{ink: &colorAccent}
				}
				return cellStyle{bold: true}
			},
		})
	}
}
