package damage

import "car-damage-bot/internal/domain/entity"

const (
	MinorRatioLimit    = 0.02
	ModerateRatioLimit = 0.08
)

// ClassifySeverity оценивает степень повреждения по доле площади.
// Без детекций результат всегда no_damage.
func ClassifySeverity(numDetections int, damageRatio float64) entity.Severity {
	switch {
	case numDetections == 0:
		return entity.SeverityNoDamage
	case damageRatio < MinorRatioLimit:
		return entity.SeverityMinor
	case damageRatio < ModerateRatioLimit:
		return entity.SeverityModerate
	default:
		return entity.SeveritySevere
	}
}
