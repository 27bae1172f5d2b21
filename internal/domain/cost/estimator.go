package cost

import (
	"math"
	"strings"

	"car-damage-bot/internal/domain/damage"
	"car-damage-bot/internal/domain/entity"
)

const (
	defaultPartCost           = 3000
	defaultSeverityMultiplier = 1.0
	defaultCarMultiplier      = 1.0
)

// Estimator считает стоимость ремонта по неизменяемым справочникам.
type Estimator struct {
	tables Tables
}

// NewEstimator копирует справочники, поэтому дальнейшие изменения
// переданных карт не влияют на расчёт.
func NewEstimator(tables Tables) *Estimator {
	return &Estimator{tables: tables.clone()}
}

// Estimate возвращает итоговую стоимость, кратную 100.
func (e *Estimator) Estimate(carTypeName, severity string, parts entity.DamagedParts) int {
	return e.Breakdown(carTypeName, severity, parts).Total
}

// Breakdown возвращает расчёт со всеми промежуточными значениями.
func (e *Estimator) Breakdown(carTypeName, severity string, parts entity.DamagedParts) entity.CostBreakdown {
	category := damage.DetectCategory(carTypeName)

	baseSum := 0.0
	for part, count := range parts {
		baseSum += e.partCost(damage.NormalizePart(string(part))) * float64(count)
	}

	severityMult, ok := e.tables.SeverityMultiplier[strings.ToLower(severity)]
	if !ok {
		severityMult = defaultSeverityMultiplier
	}

	carMult, ok := e.tables.CarTypeMultiplier[category]
	if !ok {
		carMult = defaultCarMultiplier
	}

	raw := baseSum * severityMult * carMult

	return entity.CostBreakdown{
		Category:           category,
		BaseSum:            baseSum,
		SeverityMultiplier: severityMult,
		CarMultiplier:      carMult,
		Raw:                raw,
		Total:              RoundToHundreds(raw),
	}
}

func (e *Estimator) partCost(part entity.Part) float64 {
	if v, ok := e.tables.PartCost[part]; ok {
		return v
	}
	if v, ok := e.tables.PartCost[entity.PartOther]; ok {
		return v
	}
	return defaultPartCost
}

// RoundToHundreds округляет до ближайшей сотни, половины уходят к чётной сотне:
// 24750 -> 24800, 2250 -> 2200.
func RoundToHundreds(v float64) int {
	return int(math.RoundToEven(v/100) * 100)
}
