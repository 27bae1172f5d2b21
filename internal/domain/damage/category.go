package damage

import "car-damage-bot/internal/domain/entity"

var categoryRules = []rule[entity.CarCategory]{
	{containsAny("suv"), entity.CategorySUV},
	{containsAny("hatchback"), entity.CategoryHatchback},
	{containsAny("sedan"), entity.CategorySedan},
	{containsAny("coupe"), entity.CategorySedan},
	{containsAny("convertible"), entity.CategoryLuxury},
	{containsAny("wagon"), entity.CategoryHatchback},
	{containsAny("van", "minivan"), entity.CategoryHatchback},
	{containsAny("pickup", "crew cab"), entity.CategorySUV},
}

// DetectCategory определяет категорию автомобиля по названию модели.
func DetectCategory(raw string) entity.CarCategory {
	return firstMatch(categoryRules, raw, entity.CategoryUnknown)
}
