package service

import "alcyxob/coaching-app/internal/domain"

// Predefined template categories.
const (
	CategoryBasicStrength = "basic_strength"
	CategoryHypertrophy   = "hypertrophy"
	CategoryEndurance     = "endurance"
)

func prescribe(name string, sets, reps int, rpe float64) domain.Exercise {
	e := domain.Exercise{Name: name, Sets: sets, Reps: reps}
	if rpe > 0 {
		e.RPE = &rpe
	}
	return e
}

func withNotes(e domain.Exercise, notes string) domain.Exercise {
	e.Notes = &notes
	return e
}

func day(name, date string, exercises ...domain.Exercise) domain.Session {
	return domain.Session{SessionName: name, Date: date, Exercises: exercises}
}

// predefinedTemplates is the system catalog seeded into an empty template store.
func predefinedTemplates() []*domain.Template {
	return []*domain.Template{
		{
			Name:               "Basic Strength",
			Description:        "Foundational strength template built on compound lifts",
			Type:               domain.TemplatePredefined,
			PredefinedCategory: CategoryBasicStrength,
			Sessions: []domain.Session{
				day("Day 1 - Upper Body", "Monday",
					prescribe("Bench Press", 4, 5, 8),
					prescribe("Barbell Row", 4, 5, 8),
					prescribe("Overhead Press", 3, 8, 7),
				),
				day("Day 2 - Lower Body", "Wednesday",
					prescribe("Squat", 4, 5, 8),
					prescribe("Deadlift", 3, 5, 8),
					prescribe("Leg Press", 3, 10, 7),
				),
			},
		},
		{
			Name:               "Hypertrophy",
			Description:        "Higher volume template aimed at muscle growth",
			Type:               domain.TemplatePredefined,
			PredefinedCategory: CategoryHypertrophy,
			Sessions: []domain.Session{
				day("Day 1 - Chest and Triceps", "Monday",
					prescribe("Bench Press", 4, 10, 7),
					prescribe("Incline Dumbbell Press", 3, 12, 7),
					prescribe("Parallel Bar Dips", 3, 12, 8),
					prescribe("Triceps Extension", 3, 15, 7),
				),
				day("Day 2 - Back and Biceps", "Tuesday",
					prescribe("Pull-ups", 4, 8, 8),
					prescribe("Dumbbell Row", 4, 12, 7),
					prescribe("Barbell Curl", 3, 12, 7),
				),
				day("Day 3 - Legs", "Thursday",
					prescribe("Squat", 4, 12, 7),
					prescribe("Romanian Deadlift", 3, 12, 7),
					prescribe("Leg Extension", 3, 15, 7),
				),
			},
		},
		{
			Name:               "Endurance",
			Description:        "Cardiovascular and muscular endurance template",
			Type:               domain.TemplatePredefined,
			PredefinedCategory: CategoryEndurance,
			Sessions: []domain.Session{
				day("Day 1 - Full Body Circuit", "Monday",
					prescribe("Burpees", 3, 15, 7),
					prescribe("Mountain Climbers", 3, 20, 7),
					prescribe("Jump Squats", 3, 15, 7),
				),
				day("Day 2 - Interval Cardio", "Wednesday",
					withNotes(prescribe("Treadmill Sprints", 8, 1, 0), "30 seconds work, 90 seconds rest"),
					withNotes(prescribe("Rowing Machine", 4, 1, 0), "2 minutes work, 1 minute rest"),
				),
				day("Day 3 - Muscular Endurance", "Friday",
					prescribe("Squats", 3, 25, 6),
					prescribe("Push-ups", 3, 20, 6),
					withNotes(prescribe("Plank", 3, 1, 0), "Hold for 60 seconds"),
				),
			},
		},
	}
}
