package windowing

import "github.com/magicslate/slate/internal/models"

// DefaultScenarios returns the standard comparison set for a title.
// Films get the four classic strategies; series skip theatrical and PVOD.
func DefaultScenarios(titleID string, contentType models.ContentType) []models.WindowingScenario {
	if contentType == models.ContentTypeFilm {
		return []models.WindowingScenario{
			{
				Name:    "Traditional Theatrical",
				TitleID: titleID,
				Windows: []models.Window{
					{Type: models.WindowTheatrical, StartOffsetDays: 0, DurationDays: 90},
					{Type: models.WindowPVOD, StartOffsetDays: 90, DurationDays: 45},
					{Type: models.WindowStreaming, StartOffsetDays: 90},
				},
			},
			{
				Name:    "Short Window",
				TitleID: titleID,
				Windows: []models.Window{
					{Type: models.WindowTheatrical, StartOffsetDays: 0, DurationDays: 45},
					{Type: models.WindowPVOD, StartOffsetDays: 45, DurationDays: 30},
					{Type: models.WindowStreaming, StartOffsetDays: 45},
				},
			},
			{
				Name:    "Day-and-Date Streaming",
				TitleID: titleID,
				Windows: []models.Window{
					{Type: models.WindowStreaming, StartOffsetDays: 0},
				},
			},
			{
				Name:    "With Licensing Deal",
				TitleID: titleID,
				Windows: []models.Window{
					{Type: models.WindowTheatrical, StartOffsetDays: 0, DurationDays: 90},
					{Type: models.WindowPVOD, StartOffsetDays: 90, DurationDays: 45},
					{Type: models.WindowStreaming, StartOffsetDays: 90},
					{Type: models.WindowLicensing, StartOffsetDays: 730, DurationDays: 365, LicenseFee: 50_000_000},
				},
			},
		}
	}

	return []models.WindowingScenario{
		{
			Name:    "Exclusive Streaming",
			TitleID: titleID,
			Windows: []models.Window{
				{Type: models.WindowStreaming, StartOffsetDays: 0},
			},
		},
		{
			Name:    "License After 1 Year",
			TitleID: titleID,
			Windows: []models.Window{
				{Type: models.WindowStreaming, StartOffsetDays: 0},
				{Type: models.WindowLicensing, StartOffsetDays: 365, DurationDays: 365, LicenseFee: 30_000_000},
			},
		},
	}
}
