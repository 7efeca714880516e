package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ── Importación masiva ────────────────────────────────────────────────────────
// Local pre-validation of the stock spreadsheet before it is uploaded. The
// server applies SET semantics (file counts replace current stock), so a
// malformed file is cheaper to reject here than after the round-trip.

// FilaImportacion is one parsed spreadsheet row.
type FilaImportacion struct {
	Codigo   string
	Cantidad int
}

var ErrArchivoInvalido = errors.New("archivo de importación inválido")

// ValidarArchivoImportacion reads the whole file, checks it parses as an xlsx
// with a codigo/cantidad header and numeric counts, and returns a fresh
// reader over the same bytes for the upload.
func ValidarArchivoImportacion(file io.Reader) (io.Reader, []FilaImportacion, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: no se pudo leer el archivo", ErrArchivoInvalido)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: no es un .xlsx legible", ErrArchivoInvalido)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil, nil, fmt.Errorf("%w: no contiene filas de datos", ErrArchivoInvalido)
	}

	header := rows[0]
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "codigo") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "cantidad") {
		return nil, nil, fmt.Errorf("%w: se esperan columnas 'codigo' y 'cantidad'", ErrArchivoInvalido)
	}

	var (
		filas     []FilaImportacion
		problemas []string
	)
	for i, row := range rows[1:] {
		numFila := i + 2 // 1-based, skipping header
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		codigo := strings.TrimSpace(row[0])
		cantidad, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			problemas = append(problemas, fmt.Sprintf("fila %d: cantidad %q no es un número", numFila, row[1]))
			continue
		}
		if cantidad < 0 {
			problemas = append(problemas, fmt.Sprintf("fila %d: cantidad negativa", numFila))
			continue
		}
		filas = append(filas, FilaImportacion{Codigo: codigo, Cantidad: cantidad})
	}

	if len(problemas) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrArchivoInvalido, strings.Join(problemas, "; "))
	}
	if len(filas) == 0 {
		return nil, nil, fmt.Errorf("%w: no contiene filas de datos", ErrArchivoInvalido)
	}
	return bytes.NewReader(data), filas, nil
}
