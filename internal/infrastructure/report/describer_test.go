package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"car-damage-bot/internal/domain/entity"
)

func TestDescriber_Describe(t *testing.T) {
	a := &entity.Assessment{
		CarType:  "Toyota Fortuner SUV",
		Severity: "moderate",
		Summary: &entity.DetectionSummary{
			Severity:    entity.SeverityModerate,
			DamageRatio: 0.0523,
			DamagedParts: entity.DamagedParts{
				entity.PartDoor:   1,
				entity.PartBumper: 2,
				entity.PartFender: 1,
			},
		},
		Cost: entity.CostBreakdown{Category: entity.CategorySUV, Total: 24800},
	}

	desc, err := NewDescriber().Describe(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, "🚗 Автомобиль: Toyota Fortuner SUV (suv)\n"+
		"📊 Степень повреждений: средние\n"+
		"📐 Доля площади: 5.23%\n"+
		"🔧 Повреждённые детали:\n"+
		"• bumper × 2\n"+
		"• door × 1\n"+
		"• fender × 1\n"+
		"💰 Оценка ремонта: ₹24 800", desc.Text)
}

func TestDescriber_NoDamage(t *testing.T) {
	a := &entity.Assessment{
		CarType:  "Maruti Wagon R",
		Severity: "no_damage",
		Summary:  &entity.DetectionSummary{Severity: entity.SeverityNoDamage, DamagedParts: entity.DamagedParts{}},
		Cost:     entity.CostBreakdown{Category: entity.CategoryHatchback},
	}

	desc, err := NewDescriber().Describe(context.Background(), a)
	require.NoError(t, err)
	require.Contains(t, desc.Text, "повреждений нет")
	require.Contains(t, desc.Text, "Повреждённые детали не найдены")
	require.Contains(t, desc.Text, "₹0")
}

func TestDescriber_Empty(t *testing.T) {
	_, err := NewDescriber().Describe(context.Background(), nil)
	require.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "0", formatAmount(0))
	require.Equal(t, "900", formatAmount(900))
	require.Equal(t, "2 200", formatAmount(2200))
	require.Equal(t, "61 600", formatAmount(61600))
	require.Equal(t, "1 234 500", formatAmount(1234500))
}
