package table

import "strings"

// Variant forma de presentar una celda.
type Variant string

const (
	VariantText  Variant = "text"
	VariantBadge Variant = "badge"
	VariantList  Variant = "list"
)

// Tone matiz visual de una celda (colores de badge, texto atenuado, alerta).
type Tone string

const (
	ToneNone        Tone = ""
	ToneMuted       Tone = "muted"
	ToneDanger      Tone = "danger"
	ToneSuccess     Tone = "success"
	ToneOutline     Tone = "outline"
	ToneSecondary   Tone = "secondary"
	ToneDestructive Tone = "destructive"
	ToneDefault     Tone = "default"
)

// Cell contenido renderizable de una celda. Items solo se usa con VariantList.
type Cell struct {
	Text    string  `json:"text"`
	Variant Variant `json:"variant"`
	Tone    Tone    `json:"tone,omitempty"`
	Items   []Cell  `json:"items,omitempty"`
}

func Text(s string) Cell { return Cell{Text: s, Variant: VariantText} }

func Muted(s string) Cell { return Cell{Text: s, Variant: VariantText, Tone: ToneMuted} }

func Toned(s string, tone Tone) Cell { return Cell{Text: s, Variant: VariantText, Tone: tone} }

func Badge(s string, tone Tone) Cell { return Cell{Text: s, Variant: VariantBadge, Tone: tone} }

// List agrupa varias celdas; Text queda con la unión para renderers planos.
func List(items ...Cell) Cell {
	texts := make([]string, 0, len(items))
	for _, it := range items {
		texts = append(texts, it.Text)
	}
	return Cell{Text: strings.Join(texts, ", "), Variant: VariantList, Items: items}
}

// Empty celda vacía (p. ej. condición desconocida).
func Empty() Cell { return Text("") }
