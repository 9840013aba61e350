package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnSizes(t *testing.T) {
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, columnSizes(6))
	assert.Equal(t, []int{2, 2, 2, 2, 2, 1, 1}, columnSizes(7))
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnSizes(5))
	for _, n := range []int{1, 4, 5, 6, 7} {
		sum := 0
		for _, s := range columnSizes(n) {
			sum += s
		}
		assert.Equal(t, gridSize, sum, "n=%d", n)
	}
}

func TestGenerate_ProducePDF(t *testing.T) {
	g := NewTablePDFGenerator("SMI HIMPA")

	out, err := g.Generate(context.Background(), Document{
		Title:       "Préstamos",
		Subtitle:    "2 registros",
		GeneratedAt: "1 Mei 2024 pukul 16.00.00",
		Headers:     []string{"Artículo", "Usuario", "Estado"},
		Rows:        [][]string{{"Proyector", "budi", "Pendiente"}, {"Kamera", "", "Activo"}},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SinColumnasFalla(t *testing.T) {
	_, err := NewTablePDFGenerator("x").Generate(context.Background(), Document{Title: "vacía"})

	assert.Error(t, err)
}
