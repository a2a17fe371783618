// Package excel vuelca extractos de cuenta corriente y reportes de stock a
// planilla xlsx. Los montos van como valores numéricos para que la planilla
// sea operable; los resúmenes usan formato es-AR.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frutasur/empaque-api/internal/application/reports"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

var esAR = message.NewPrinter(language.MustParse("es-AR"))

// StatementExporter implementa reports.StatementExporter sobre excelize.
type StatementExporter struct{}

// NewStatementExporter construye el exportador.
func NewStatementExporter() *StatementExporter { return &StatementExporter{} }

// Export arma la planilla del extracto: encabezado con la parte y el rango,
// una fila por asiento con saldo corrido y el cierre al pie.
func (e *StatementExporter) Export(st *reports.Statement) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Extracto"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Cuenta corriente")
	f.SetCellValue(sheet, "A2", st.Party.Name)
	f.SetCellValue(sheet, "B2", partyTypeLabel(st.Party.Type))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Del %s al %s",
		st.From.Format("02/01/2006"), st.To.Format("02/01/2006")))
	f.SetCellValue(sheet, "A4", esAR.Sprintf("Saldo de apertura: %.2f", st.OpeningBalance.InexactFloat64()))

	headers := []string{"Fecha", "Comprobante", "Detalle", "Debe", "Haber", "Saldo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}

	rowNo := 7
	for _, r := range st.Rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo), r.Entry.Date.Format("02/01/2006"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNo), docTypeLabel(r.Entry.DocType))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNo), r.Entry.Description)
		if r.Entry.Direction == entity.DirectionDebit {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNo), r.Entry.Amount.InexactFloat64())
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNo), r.Entry.Amount.InexactFloat64())
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNo), r.Balance.InexactFloat64())
		rowNo++
	}

	rowNo++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo),
		esAR.Sprintf("Saldo al cierre: %.2f", st.ClosingBalance.InexactFloat64()))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo+1),
		"Generado el "+st.GeneratedAt.Format("02/01/2006 15:04"))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir extracto: %w", err)
	}
	return buf.Bytes(), nil
}

// StockExporter implementa reports.StockExporter sobre excelize.
type StockExporter struct{}

// NewStockExporter construye el exportador.
func NewStockExporter() *StockExporter { return &StockExporter{} }

// Export arma la planilla de stock: una hoja para fruta y otra para envases.
func (e *StockExporter) Export(rep *reports.StockReport) ([]byte, error) {
	f := excelize.NewFile()
	fruta := "Fruta"
	f.SetSheetName("Sheet1", fruta)

	f.SetCellValue(fruta, "A1", "Producto")
	f.SetCellValue(fruta, "B1", "Variedad")
	f.SetCellValue(fruta, "C1", "Stock (kg)")
	for i, p := range rep.Products {
		rowNo := i + 2
		f.SetCellValue(fruta, fmt.Sprintf("A%d", rowNo), p.Name)
		f.SetCellValue(fruta, fmt.Sprintf("B%d", rowNo), p.Variety)
		f.SetCellValue(fruta, fmt.Sprintf("C%d", rowNo), p.StockKg.InexactFloat64())
	}

	envases := "Envases"
	if _, err := f.NewSheet(envases); err != nil {
		return nil, fmt.Errorf("excel: hoja de envases: %w", err)
	}
	f.SetCellValue(envases, "A1", "Tipo")
	f.SetCellValue(envases, "B1", "Vacíos")
	f.SetCellValue(envases, "C1", "Llenos")
	for i, line := range rep.Containers {
		rowNo := i + 2
		f.SetCellValue(envases, fmt.Sprintf("A%d", rowNo), line.Type.Name)
		f.SetCellValue(envases, fmt.Sprintf("B%d", rowNo), line.Stock.EmptyUnits)
		f.SetCellValue(envases, fmt.Sprintf("C%d", rowNo), line.Stock.FullUnits)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir stock: %w", err)
	}
	return buf.Bytes(), nil
}

func partyTypeLabel(t string) string {
	switch t {
	case entity.PartyTypeClient:
		return "Cliente"
	case entity.PartyTypeSupplier:
		return "Proveedor"
	}
	return t
}

func docTypeLabel(t string) string {
	switch t {
	case entity.DocTypeGoodsIntake:
		return "Ingreso de fruta"
	case entity.DocTypeGoodsOutflow:
		return "Salida de fruta"
	case entity.DocTypeCollection:
		return "Cobranza"
	case entity.DocTypePayment:
		return "Pago"
	case entity.DocTypeRetention:
		return "Retención"
	}
	return t
}
