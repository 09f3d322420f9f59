package render

import "weather-widget/models"

// DefaultIcon is shown for categories without a dedicated icon
const DefaultIcon = "fas fa-cloud"

var icons = map[models.Category]string{
	models.CategoryClear:        "fas fa-sun",
	models.CategoryClouds:       "fas fa-cloud",
	models.CategoryRain:         "fas fa-cloud-rain",
	models.CategoryDrizzle:      "fas fa-cloud-rain",
	models.CategoryThunderstorm: "fas fa-bolt",
	models.CategorySnow:         "fas fa-snowflake",
	models.CategoryMist:         "fas fa-smog",
	models.CategoryFog:          "fas fa-smog",
	models.CategoryHaze:         "fas fa-smog",
}

// IconFor maps a weather category to a Font Awesome icon class
func IconFor(category models.Category) string {
	if icon, ok := icons[category]; ok {
		return icon
	}
	return DefaultIcon
}
