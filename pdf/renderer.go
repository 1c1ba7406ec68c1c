package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"waterbill-server/entities"
)

// Renderer writes water bills to transient PDF files. Callers own the
// returned path and are expected to remove it when done streaming.
type Renderer struct {
	tempDir string
	logger  zerolog.Logger
}

func NewRenderer(logger zerolog.Logger) *Renderer {
	return &Renderer{
		tempDir: filepath.Join(os.TempDir(), "waterbill"),
		logger:  logger,
	}
}

// section is one titled block of bill lines. Building the document as data
// first keeps the layout rules testable without decoding PDF output.
type section struct {
	Title string
	Lines []string
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func toMoney(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// billSections lays out every block of the bill. The payment block appears
// only when the bill carries a paid date.
func billSections(bill *entities.WaterBill, house *entities.House, gp *entities.GramPanchayat) []section {
	sections := []section{}

	gpLines := []string{
		"Name: " + orNA(gp.Name),
		"District: " + orNA(gp.District),
		"Address: " + orNA(gp.Address),
	}
	if gp.DueDays > 0 {
		gpLines = append(gpLines, fmt.Sprintf("Default Due Days: %d", gp.DueDays))
	}
	sections = append(sections, section{Title: "Gram Panchayat", Lines: gpLines})

	houseLines := []string{
		"Owner: " + orNA(house.OwnerName),
		"Address: " + orNA(house.Address),
		"Property No: " + orNA(house.PropertyNumber),
		"Meter No: " + orNA(house.WaterMeterNumber),
		"Usage Type: " + orNA(house.UsageType),
		"Mobile: " + orNA(house.MobileNumber),
	}
	if bill.NoMeter {
		houseLines = append(houseLines, "Meter Status: No Meter")
	} else if bill.DamagedMeter {
		houseLines = append(houseLines, "Meter Status: Damaged Meter")
	}
	sections = append(sections, section{Title: "House Details", Lines: houseLines})

	sections = append(sections, section{
		Title: "Meter Reading",
		Lines: []string{
			fmt.Sprintf("Previous Reading: %g KL", bill.PreviousReading),
			fmt.Sprintf("Current Reading: %g KL", bill.CurrentReading),
			fmt.Sprintf("Total Usage: %g KL", bill.TotalUsage),
		},
	})

	interestLabel := "Interest"
	if bill.InterestRate > 0 {
		interestLabel = fmt.Sprintf("Interest (%g%%/yr)", bill.InterestRate)
	}
	dueDate := "N/A"
	if bill.DueDate != nil {
		dueDate = formatDate(*bill.DueDate)
	}
	status := "N/A"
	if bill.Status != "" {
		status = strings.ToUpper(bill.Status)
	}
	sections = append(sections, section{
		Title: "Bill Details",
		Lines: []string{
			"Current Demand: " + toMoney(bill.CurrentDemand),
			"Arrears: " + toMoney(bill.Arrears),
			interestLabel + ": " + toMoney(bill.Interest),
			"Penalty: " + toMoney(bill.PenaltyAmount),
			"Others: " + toMoney(bill.Others),
			"Total Amount: " + toMoney(bill.TotalAmount),
			"Paid Amount: " + toMoney(bill.PaidAmount),
			"Remaining: " + toMoney(bill.RemainingAmount),
			"Status: " + status,
			"Due Date: " + dueDate,
		},
	})

	if bill.PaidDate != nil {
		paymentMode := "N/A"
		if bill.PaymentMode != "" {
			paymentMode = strings.ToUpper(bill.PaymentMode)
		}
		sections = append(sections, section{
			Title: "Payment Details",
			Lines: []string{
				"Paid Date: " + formatDate(*bill.PaidDate),
				"Payment Mode: " + paymentMode,
				"Transaction ID: " + orNA(bill.TransactionID),
			},
		})
	}

	return sections
}

// RenderBill composes the bill document and writes it under the renderer's
// temp directory, named by bill number. It returns the file path.
func (r *Renderer) RenderBill(bill *entities.WaterBill, house *entities.House, gp *entities.GramPanchayat) (string, error) {
	if err := os.MkdirAll(r.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	billNumber := bill.BillNumber
	if billNumber == "" {
		billNumber = "unknown"
	}
	path := filepath.Join(r.tempDir, fmt.Sprintf("bill_%s.pdf", billNumber))

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "Water Bill", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, fmt.Sprintf("Bill No: %s   Date: %s", billNumber, formatDate(time.Now())), "", 1, "L", false, 0, "")
	month := orNA(bill.Month)
	if bill.Year > 0 {
		month = fmt.Sprintf("%s %d", orNA(bill.Month), bill.Year)
	}
	doc.CellFormat(0, 6, "Month: "+month, "", 1, "L", false, 0, "")

	for _, sec := range billSections(bill, house, gp) {
		doc.Ln(3)
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 7, sec.Title, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		for _, line := range sec.Lines {
			doc.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
	}

	// Footer
	doc.Ln(3)
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, "Please pay your bill on time to avoid late fees.", "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "Thank you for using our services.", "", 1, "L", false, 0, "")

	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write bill PDF: %w", err)
	}

	r.logger.Debug().Str("path", path).Msg("bill PDF rendered")
	return path, nil
}
