package container

import (
	app "car-damage-bot/internal/application"
	"car-damage-bot/internal/domain/cost"
	"car-damage-bot/internal/domain/port"
)

type Container struct {
	UserService       *app.UserService
	AssessmentService *app.AssessmentService
	Describer         port.AssessmentDescriber
}

// Deps внешние зависимости, которые собираются в main.
type Deps struct {
	UserRepo       port.UserRepository
	Detector       port.DamageDetector
	Visualizer     port.Visualizer
	Describer      port.AssessmentDescriber
	Tables         cost.Tables
	OutputDir      string
	DefaultCarType string
}

func New(d Deps) *Container {
	userService := app.NewUserService(d.UserRepo)
	estimator := cost.NewEstimator(d.Tables)
	assessmentService := app.NewAssessmentService(d.Detector, d.Visualizer, estimator, d.OutputDir, d.DefaultCarType)

	return &Container{
		UserService:       userService,
		AssessmentService: assessmentService,
		Describer:         d.Describer,
	}
}
