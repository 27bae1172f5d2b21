package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/domain/port"
)

var severityNames = map[entity.Severity]string{
	entity.SeverityNoDamage: "повреждений нет",
	entity.SeverityMinor:    "лёгкие",
	entity.SeverityModerate: "средние",
	entity.SeveritySevere:   "серьёзные",
}

// Describer собирает текстовый отчёт без обращения к внешним сервисам.
type Describer struct{}

// NewDescriber создаёт описатель отчётов
func NewDescriber() *Describer {
	return &Describer{}
}

// Describe формирует отчёт: степень, доля площади, детали и стоимость.
func (d *Describer) Describe(ctx context.Context, a *entity.Assessment) (*entity.Description, error) {
	_ = ctx
	if a == nil || a.Summary == nil {
		return nil, errors.New("empty assessment")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚗 Автомобиль: %s (%s)\n", a.CarType, a.Cost.Category)
	fmt.Fprintf(&b, "📊 Степень повреждений: %s\n", severityName(entity.Severity(a.Severity)))
	fmt.Fprintf(&b, "📐 Доля площади: %.2f%%\n", a.Summary.DamageRatio*100)

	if len(a.Summary.DamagedParts) == 0 {
		b.WriteString("✅ Повреждённые детали не найдены.\n")
	} else {
		b.WriteString("🔧 Повреждённые детали:\n")
		for _, line := range partLines(a.Summary.DamagedParts) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	fmt.Fprintf(&b, "💰 Оценка ремонта: ₹%s", formatAmount(a.Cost.Total))

	return &entity.Description{Text: b.String()}, nil
}

func severityName(s entity.Severity) string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return string(s)
}

// partLines сортирует детали по убыванию количества, затем по имени.
func partLines(parts entity.DamagedParts) []string {
	names := make([]entity.Part, 0, len(parts))
	for p := range parts {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool {
		if parts[names[i]] != parts[names[j]] {
			return parts[names[i]] > parts[names[j]]
		}
		return names[i] < names[j]
	})

	lines := make([]string, 0, len(names))
	for _, p := range names {
		lines = append(lines, fmt.Sprintf("• %s × %d", p, parts[p]))
	}
	return lines
}

// formatAmount разделяет тысячи пробелом: 24800 -> "24 800".
func formatAmount(v int) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Проверка реализации интерфейса
var _ port.AssessmentDescriber = (*Describer)(nil)
