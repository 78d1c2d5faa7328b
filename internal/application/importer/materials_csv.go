// Package importer carga masiva de materiales desde CSV.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/application/usecase"
	"github.com/lockstock/lockstock-api/internal/domain"
)

// columnas esperadas, en este orden
var expectedHeader = []string{"sku", "name", "description", "uom", "min_stock"}

// MaterialsCSVImporter procesa un CSV de materiales fila a fila. Cada fila
// válida crea un material; las inválidas se reportan con su número de fila
// sin abortar el resto del archivo.
type MaterialsCSVImporter struct {
	materials *usecase.MaterialUseCase
}

// NewMaterialsCSVImporter construye el importador.
func NewMaterialsCSVImporter(materials *usecase.MaterialUseCase) *MaterialsCSVImporter {
	return &MaterialsCSVImporter{materials: materials}
}

// Import lee el CSV completo y devuelve cuántos materiales se crearon y los
// errores por fila. Archivos que no son UTF-8 se reinterpretan como Latin-1
// antes de parsear.
func (imp *MaterialsCSVImporter) Import(ctx context.Context, actx *authz.Context, data []byte) (*dto.ImportMaterialsResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%w: codificación no reconocida", domain.ErrInvalidInput)
		}
		data = decoded
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo leer la cabecera", domain.ErrInvalidInput)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	result := &dto.ImportMaterialsResult{}
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		req, err := parseRow(record)
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		if _, err := imp.materials.Create(ctx, actx, req); err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Row: row, Message: rowMessage(err)})
			continue
		}
		result.Created++
	}
	return result, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("%w: cabecera esperada %q", domain.ErrInvalidInput, strings.Join(expectedHeader, ","))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != expectedHeader[i] {
			return fmt.Errorf("%w: columna %d debe ser %q", domain.ErrInvalidInput, i+1, expectedHeader[i])
		}
	}
	return nil
}

func parseRow(record []string) (dto.CreateMaterialRequest, error) {
	var req dto.CreateMaterialRequest
	if len(record) != len(expectedHeader) {
		return req, fmt.Errorf("se esperaban %d columnas, hay %d", len(expectedHeader), len(record))
	}
	req.SKU = strings.TrimSpace(record[0])
	req.Name = strings.TrimSpace(record[1])
	req.Description = strings.TrimSpace(record[2])
	req.UOM = strings.TrimSpace(record[3])

	if raw := strings.TrimSpace(record[4]); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return req, fmt.Errorf("min_stock %q no es un número", raw)
		}
		req.MinStock = min
	}
	return req, nil
}

// rowMessage despoja el prefijo del error sentinel para que el mensaje por
// fila sea legible en la respuesta.
func rowMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return "sku duplicado"
	default:
		return err.Error()
	}
}
