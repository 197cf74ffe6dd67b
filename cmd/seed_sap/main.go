// seed_sap genera un script SQL para poblar la tabla sap a partir del export
// CSV del ERP (separado por ';', codificado en ISO-8859-1).
//
// Columnas esperadas: NUMERO;CLIENTE;CODIGO;ItemName;CANTIDAD;rs;empresa
//
// Uso: go run ./cmd/seed_sap [ruta/export.csv]
// Por defecto busca export.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_sap.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "export.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export viene en ISO-8859-1 (tildes y eñes en nombres de producto).
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), "NUMERO") {
		records = records[1:] // saltar cabecera
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_sap.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Líneas de pedido del export SAP\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + "\n\n")

	var rows, skipped int
	for _, rec := range records {
		if len(rec) < 5 {
			skipped++
			continue
		}
		numero, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			skipped++
			continue
		}
		cliente := strings.TrimSpace(rec[1])
		codigo := strings.TrimSpace(rec[2])
		itemName := strings.TrimSpace(rec[3])
		cantidad := strings.TrimSpace(rec[4])
		if codigo == "" {
			skipped++
			continue
		}
		if _, err := strconv.ParseFloat(cantidad, 64); err != nil {
			cantidad = "0" // cantidad ilegible: mejor 0 que abortar el seed
		}
		rs, empresa := "", ""
		if len(rec) > 5 {
			rs = strings.TrimSpace(rec[5])
		}
		if len(rec) > 6 {
			empresa = strings.TrimSpace(rec[6])
		}
		fmt.Fprintf(out,
			"INSERT INTO sap (numero, cliente, codigo, \"ItemName\", cantidad, picking, rs, empresa)\nVALUES (%d, '%s', '%s', '%s', %s, 'N', '%s', '%s');\n",
			numero, escapeSQL(cliente), escapeSQL(codigo), escapeSQL(itemName), cantidad, escapeSQL(rs), escapeSQL(empresa),
		)
		rows++
	}

	fmt.Printf("Generado %s: %d líneas, %d descartadas\n", outPath, rows, skipped)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
