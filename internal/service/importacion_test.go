package service

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// archivoXLSX builds an in-memory spreadsheet with the given rows on the
// active sheet.
func archivoXLSX(t *testing.T, rows [][]any) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func archivoImportacionValido(t *testing.T) io.Reader {
	t.Helper()
	return archivoXLSX(t, [][]any{
		{"codigo", "cantidad"},
		{"PROD-001", 25},
		{"PROD-002", 0},
	})
}

func TestValidarArchivoImportacion(t *testing.T) {
	contenido, filas, err := ValidarArchivoImportacion(archivoImportacionValido(t))
	require.NoError(t, err)
	require.Len(t, filas, 2)
	assert.Equal(t, FilaImportacion{Codigo: "PROD-001", Cantidad: 25}, filas[0])
	assert.Equal(t, FilaImportacion{Codigo: "PROD-002", Cantidad: 0}, filas[1])

	// El lector devuelto debe contener los bytes originales para la subida.
	data, err := io.ReadAll(contenido)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestValidarArchivoNoEsXLSX(t *testing.T) {
	_, _, err := ValidarArchivoImportacion(bytes.NewReader([]byte("codigo,cantidad\nA,1")))
	assert.ErrorIs(t, err, ErrArchivoInvalido)
	assert.ErrorContains(t, err, "no es un .xlsx")
}

func TestValidarArchivoEncabezadoIncorrecto(t *testing.T) {
	archivo := archivoXLSX(t, [][]any{
		{"sku", "unidades"},
		{"PROD-001", 25},
	})
	_, _, err := ValidarArchivoImportacion(archivo)
	assert.ErrorIs(t, err, ErrArchivoInvalido)
	assert.ErrorContains(t, err, "'codigo' y 'cantidad'")
}

func TestValidarArchivoEncabezadoTolerante(t *testing.T) {
	// Mayúsculas y espacios alrededor del encabezado no invalidan el archivo.
	archivo := archivoXLSX(t, [][]any{
		{" Codigo ", " CANTIDAD "},
		{"PROD-001", 25},
	})
	_, filas, err := ValidarArchivoImportacion(archivo)
	require.NoError(t, err)
	assert.Len(t, filas, 1)
}

func TestValidarArchivoCantidadInvalida(t *testing.T) {
	archivo := archivoXLSX(t, [][]any{
		{"codigo", "cantidad"},
		{"PROD-001", "muchos"},
		{"PROD-002", -3},
	})
	_, _, err := ValidarArchivoImportacion(archivo)
	assert.ErrorIs(t, err, ErrArchivoInvalido)
	assert.ErrorContains(t, err, "fila 2")
	assert.ErrorContains(t, err, "fila 3: cantidad negativa")
}

func TestValidarArchivoSinDatos(t *testing.T) {
	archivo := archivoXLSX(t, [][]any{
		{"codigo", "cantidad"},
	})
	_, _, err := ValidarArchivoImportacion(archivo)
	assert.ErrorIs(t, err, ErrArchivoInvalido)
}

func TestValidarArchivoIgnoraFilasVacias(t *testing.T) {
	archivo := archivoXLSX(t, [][]any{
		{"codigo", "cantidad"},
		{"PROD-001", 10},
		{"", ""},
		{"PROD-003", 4},
	})
	_, filas, err := ValidarArchivoImportacion(archivo)
	require.NoError(t, err)
	assert.Len(t, filas, 2)
}
