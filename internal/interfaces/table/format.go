package table

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale   = "id-ID"
	DefaultTimezone = "Asia/Makassar"
)

// Formatter formatea fechas y números para las celdas en una zona horaria fija.
type Formatter struct {
	Zone    *time.Location
	Locale  language.Tag
	printer *message.Printer
}

// NewFormatter construye el formatter. Una zona que no se puede cargar (sin tzdata) cae a
// UTC+8, que es Asia/Makassar sin horario de verano; un locale inválido cae a id-ID.
func NewFormatter(locale, zone string) Formatter {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.FixedZone("WITA", 8*60*60)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	return Formatter{Zone: loc, Locale: tag, printer: message.NewPrinter(tag)}
}

// DefaultFormatter id-ID en Asia/Makassar.
func DefaultFormatter() Formatter { return NewFormatter(DefaultLocale, DefaultTimezone) }

var months = map[string][12]string{
	"id": {"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
}

func (f Formatter) lang() string {
	base, _ := f.Locale.Base()
	if _, ok := months[base.String()]; ok {
		return base.String()
	}
	return "id"
}

// Date fecha larga: "1 Mei 2024", "1 de mayo de 2024", "May 1, 2024".
func (f Formatter) Date(t time.Time) string {
	t = f.in(t)
	lang := f.lang()
	month := months[lang][t.Month()-1]
	switch lang {
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	case "en":
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	default:
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
}

// DateTime fecha larga con hora: "1 Mei 2024 pukul 16.00.00".
func (f Formatter) DateTime(t time.Time) string {
	t = f.in(t)
	switch f.lang() {
	case "es", "en":
		return f.Date(t) + ", " + t.Format("15:04:05")
	default:
		return f.Date(t) + " pukul " + t.Format("15.04.05")
	}
}

// Number entero con separador de miles del locale.
func (f Formatter) Number(n int64) string {
	if f.printer == nil {
		return fmt.Sprint(n)
	}
	return f.printer.Sprintf("%d", n)
}

func (f Formatter) in(t time.Time) time.Time {
	if f.Zone == nil {
		return t
	}
	return t.In(f.Zone)
}
