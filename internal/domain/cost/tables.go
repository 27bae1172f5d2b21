package cost

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"car-damage-bot/internal/domain/entity"
)

// Tables справочники стоимости, загружаются один раз при старте.
type Tables struct {
	PartCost           map[entity.Part]float64        `yaml:"part_cost"`
	SeverityMultiplier map[string]float64             `yaml:"severity_multiplier"`
	CarTypeMultiplier  map[entity.CarCategory]float64 `yaml:"car_type_multiplier"`
}

// DefaultTables возвращает базовые цены (₹) и множители.
func DefaultTables() Tables {
	return Tables{
		PartCost: map[entity.Part]float64{
			entity.PartBumper:     4000,
			entity.PartDoor:       7000,
			entity.PartHood:       8000,
			entity.PartFender:     5000,
			entity.PartHeadlight:  2500,
			entity.PartTaillight:  2000,
			entity.PartWindshield: 9000,
			entity.PartMirror:     1500,
			entity.PartGrille:     3000,
			entity.PartOther:      3000,
		},
		SeverityMultiplier: map[string]float64{
			string(entity.SeverityNoDamage): 0.0,
			string(entity.SeverityMinor):    1.0,
			string(entity.SeverityModerate): 1.5,
			string(entity.SeveritySevere):   2.2,
		},
		CarTypeMultiplier: map[entity.CarCategory]float64{
			entity.CategoryHatchback: 1.0,
			entity.CategorySedan:     1.2,
			entity.CategorySUV:       1.5,
			entity.CategoryLuxury:    2.0,
			entity.CategoryUnknown:   1.0,
		},
	}
}

// LoadTables читает YAML-файл и накладывает его значения поверх DefaultTables.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read cost tables: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Tables{}, fmt.Errorf("parse cost tables %s: %w", path, err)
	}

	tables := DefaultTables()
	for part, v := range override.PartCost {
		tables.PartCost[part] = v
	}
	for severity, v := range override.SeverityMultiplier {
		tables.SeverityMultiplier[severity] = v
	}
	for category, v := range override.CarTypeMultiplier {
		tables.CarTypeMultiplier[category] = v
	}

	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("cost tables %s: %w", path, err)
	}
	return tables, nil
}

// Validate отклоняет неизвестные ключи и отрицательные значения.
func (t Tables) Validate() error {
	for part, v := range t.PartCost {
		if !slices.Contains(entity.Parts, part) {
			return fmt.Errorf("unknown part %q", part)
		}
		if v < 0 {
			return fmt.Errorf("negative cost for part %q", part)
		}
	}
	if _, ok := t.PartCost[entity.PartOther]; !ok {
		return fmt.Errorf("missing cost for part %q", entity.PartOther)
	}
	for severity, v := range t.SeverityMultiplier {
		if v < 0 {
			return fmt.Errorf("negative multiplier for severity %q", severity)
		}
	}
	for category, v := range t.CarTypeMultiplier {
		if !slices.Contains(entity.Categories, category) {
			return fmt.Errorf("unknown car category %q", category)
		}
		if v < 0 {
			return fmt.Errorf("negative multiplier for category %q", category)
		}
	}
	return nil
}

func (t Tables) clone() Tables {
	out := Tables{
		PartCost:           make(map[entity.Part]float64, len(t.PartCost)),
		SeverityMultiplier: make(map[string]float64, len(t.SeverityMultiplier)),
		CarTypeMultiplier:  make(map[entity.CarCategory]float64, len(t.CarTypeMultiplier)),
	}
	for k, v := range t.PartCost {
		out.PartCost[k] = v
	}
	for k, v := range t.SeverityMultiplier {
		out.SeverityMultiplier[strings.ToLower(k)] = v
	}
	for k, v := range t.CarTypeMultiplier {
		out.CarTypeMultiplier[k] = v
	}
	return out
}
