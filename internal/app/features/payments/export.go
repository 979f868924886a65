// internal/app/features/payments/export.go
package payments

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportSheet is the worksheet name of the payments workbook.
const ExportSheet = "Payments"

var exportHeader = []any{"Email", "Transaction ID", "Amount", "Date", "Classes"}

// ServeExport handles GET /payments/export, the whole payments collection
// as an .xlsx workbook.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "payments export")
	defer cancel()

	rows, skipped, err := h.Payments.ListTyped(ctx)
	if err != nil {
		h.ErrLog.Fail(w, r, "fetch payments for export", err)
		return
	}
	if len(skipped) > 0 {
		h.Log.Warn("payments left out of export: documents do not match the payment schema",
			zap.Int("count", len(skipped)),
			zap.Strings("payment_ids", skipped))
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		h.ErrLog.Fail(w, r, "build payments workbook", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			h.Log.Warn("close payments workbook", zap.Error(err))
		}
	}()

	filename := fmt.Sprintf("payments_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := f.Write(w); err != nil {
		h.Log.Error("payments workbook write failed", zap.Error(err))
		return
	}
	h.Log.Info("payments exported", zap.Int("rows", len(rows)))
}

func buildWorkbook(payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, row := range lo.Map(payments, func(p models.Payment, _ int) []any {
		return []any{
			sanitizeCell(p.Email),
			sanitizeCell(p.TransactionID),
			p.Amount,
			sanitizeCell(p.Date),
			sanitizeCell(classesCell(p)),
		}
	}) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// classesCell prefers the class name and falls back to the id list.
func classesCell(p models.Payment) string {
	if p.ClassName != "" {
		return p.ClassName
	}
	return strings.Join(p.ClassIDs, ", ")
}

// sanitizeCell strips markup and defuses values a spreadsheet would read
// as a formula.
func sanitizeCell(s string) string {
	s = htmlsanitize.PlainText(s)
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}
