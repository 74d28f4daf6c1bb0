package performance

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
)

// renderReviewPDF writes a one-page summary of a finalized review: period,
// participants, per-category ratings and attached goals.
func renderReviewPDF(w io.Writer, review performance.Review, goals []performance.Goal) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Performance Review Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Reviewee: %s", handleOrID(review.RevieweeHandle, review.RevieweeID)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reviewer: %s", handleOrID(review.ReviewerHandle, review.ReviewerID)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		review.PeriodStart.Format("2006-01-02"), review.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", review.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Ratings")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	for _, category := range sortedCategories(review.Ratings) {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d / 5", category, review.Ratings[category]))
		pdf.Ln(6)
	}
	if review.OverallRating != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Overall: %.2f / 5", *review.OverallRating))
		pdf.Ln(8)
	}

	if review.Summary != nil && *review.Summary != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Summary")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, *review.Summary, "", "L", false)
		pdf.Ln(4)
	}

	if len(goals) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Goals")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for _, goal := range goals {
			pdf.Cell(0, 6, fmt.Sprintf("- %s (%d%%, %s)", goal.Title, goal.ProgressPercentage, goal.Status))
			pdf.Ln(6)
		}
	}

	return pdf.Output(w)
}

func handleOrID(handle *string, id string) string {
	if handle != nil && *handle != "" {
		return *handle
	}
	return id
}
