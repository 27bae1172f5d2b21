package damage

import (
	"strings"

	"car-damage-bot/internal/domain/entity"
)

// rule сопоставляет предикат над строкой в нижнем регистре с результатом.
// Правила проверяются по порядку, срабатывает первое.
type rule[T any] struct {
	match  func(s string) bool
	result T
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}

func firstMatch[T any](rules []rule[T], raw string, fallback T) T {
	s := strings.ToLower(raw)
	for _, r := range rules {
		if r.match(s) {
			return r.result
		}
	}
	return fallback
}

// partRules порядок значим: "tail light" не должен стать фарой.
var partRules = []rule[entity.Part]{
	{containsAny("bumper"), entity.PartBumper},
	{containsAny("door"), entity.PartDoor},
	{containsAny("hood", "bonnet"), entity.PartHood},
	{containsAny("fender"), entity.PartFender},
	{containsAll("head", "light"), entity.PartHeadlight},
	{containsAll("tail", "light"), entity.PartTaillight},
	{containsAny("windshield", "windscreen"), entity.PartWindshield},
	{containsAny("mirror"), entity.PartMirror},
	{containsAny("grille", "grill"), entity.PartGrille},
}

// NormalizePart приводит метку детектора к канонической детали.
// Неизвестные метки превращаются в entity.PartOther.
func NormalizePart(raw string) entity.Part {
	return firstMatch(partRules, raw, entity.PartOther)
}
