// Package payslip renders payroll records as A4 PDF documents.
package payslip

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appconfig "github.com/emsworks/employment-service/internal/config"
	"github.com/emsworks/employment-service/internal/domain"
)

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 121}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// Renderer builds payslip PDFs.
type Renderer struct {
	company  string
	currency string
	printer  *message.Printer
	now      func() time.Time
}

// NewRenderer returns a renderer branded with the company settings.
func NewRenderer(cfg appconfig.CompanyConfig) *Renderer {
	return &Renderer{
		company:  cfg.Name,
		currency: cfg.Currency,
		printer:  message.NewPrinter(language.English),
		now:      time.Now,
	}
}

// Render produces the payslip for p. dept may be nil.
func (r *Renderer) Render(p *domain.Payroll, emp *domain.Employee, dept *domain.Department) ([]byte, error) {
	if p == nil || emp == nil {
		return nil, fmt.Errorf("payslip: payroll and employee are required")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payslip "+p.Period(), true).
		WithAuthor(r.company, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(r.headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(emp, dept))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("Earnings"))
	m.AddRows(r.amountRow("Basic salary", p.BasicSalary, false))
	m.AddRows(r.amountRow("Allowances", p.Allowances, false))
	m.AddRows(r.amountRow("Bonus", p.Bonus, false))

	m.AddRows(sectionRow("Deductions"))
	m.AddRows(r.amountRow("Deductions", p.Deductions, false))
	m.AddRows(r.amountRow("Tax", p.Tax, false))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.amountRow("Net salary", p.NetSalary, true))
	m.AddRows(r.footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("payslip: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *Renderer) headerRow(p *domain.Payroll) core.Row {
	month := time.Month(p.Month).String()
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.company, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Salary statement", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PAYSLIP", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s %d", month, p.Year), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Status: "+string(p.Status), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func employeeRow(emp *domain.Employee, dept *domain.Department) core.Row {
	department := "-"
	if dept != nil {
		department = dept.Name
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New(emp.FullName(), props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			text.New("Employee code: "+emp.Code, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Department: "+department, props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
			text.New("Designation: "+nonEmpty(emp.Designation, "-"), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func (r *Renderer) amountRow(label string, amount decimal.Decimal, total bool) core.Row {
	style, size := fontstyle.Normal, 9.0
	if total {
		style, size = fontstyle.Bold, 11
	}
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Style: style, Size: size, Top: 1, Left: 2})),
		col.New(4).Add(text.New(r.FormatAmount(amount), props.Text{Style: style, Size: size, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (r *Renderer) footerRow(p *domain.Payroll) core.Row {
	note := "Generated " + r.now().UTC().Format(domain.DateLayout)
	if p.PaidAt != nil {
		note = "Paid " + p.PaidAt.UTC().Format(domain.DateLayout) + ". " + note
	}
	footer := col.New(12).Add(text.New(note, props.Text{Size: 7, Top: 6, Color: colorGray}))
	if p.Notes != "" {
		footer.Add(text.New(p.Notes, props.Text{Size: 7, Top: 10, Color: colorGray}))
	}
	return row.New(14).Add(footer)
}

// FormatAmount renders amount with thousands separators, two decimals and the currency code.
func (r *Renderer) FormatAmount(amount decimal.Decimal) string {
	formatted := r.printer.Sprintf("%v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
	if r.currency == "" {
		return formatted
	}
	return r.currency + " " + formatted
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
