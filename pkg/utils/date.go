package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// InstantLayout é o formato ISO-8601 (UTC, milissegundos) usado em CSV e chaves de deduplicação
	InstantLayout = "2006-01-02T15:04:05.000Z07:00"

	DefaultBucketMinutes = 30
	MinBucketMinutes     = 1
	MaxBucketMinutes     = 1440
)

// layouts aceitos para timestamps sem fuso explícito, interpretados no fuso informado
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// BucketStart zera segundos e frações e arredonda o minuto para baixo até o
// múltiplo de widthMinutes mais próximo (largura 30, minuto 47 -> minuto 30).
func BucketStart(ts time.Time, widthMinutes int) time.Time {
	if widthMinutes < MinBucketMinutes {
		widthMinutes = MinBucketMinutes
	}

	truncated := ts.Add(-time.Duration(ts.Second())*time.Second - time.Duration(ts.Nanosecond()))
	offset := ts.Minute() % widthMinutes

	return truncated.Add(-time.Duration(offset) * time.Minute)
}

// ParseBucketMinutes converte o parâmetro de largura do bucket.
// Valores não numéricos caem no padrão (30); os demais são truncados e limitados a [1, 1440].
func ParseBucketMinutes(raw string) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return DefaultBucketMinutes
	}

	floored := math.Floor(n)
	if floored < MinBucketMinutes {
		return MinBucketMinutes
	}
	if floored > MaxBucketMinutes {
		return MaxBucketMinutes
	}
	return int(floored)
}

// ClampBucketMinutes limita a largura do bucket a [1, 1440]
func ClampBucketMinutes(minutes int) int {
	if minutes < MinBucketMinutes {
		return MinBucketMinutes
	}
	if minutes > MaxBucketMinutes {
		return MaxBucketMinutes
	}
	return minutes
}

// ParseInstant interpreta um timestamp RFC 3339 ou, sem fuso, no fuso loc
func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)

	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if parsed, layoutErr := time.ParseInLocation(layout, value, loc); layoutErr == nil {
			return parsed, nil
		}
	}

	return time.Time{}, err
}

// ParseOptionalInstant retorna nil para valores vazios ou inválidos
func ParseOptionalInstant(raw string, loc *time.Location) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	t, err := ParseInstant(raw, loc)
	if err != nil {
		return nil
	}

	return &t
}

// FormatInstant formata o instante em UTC no layout InstantLayout
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// StartOfDay retorna 00:00 do dia de t no próprio fuso de t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
