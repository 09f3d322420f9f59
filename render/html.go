package render

import (
	"bytes"
	"html/template"
)

var cardTemplate = template.Must(template.New("card").Parse(`<div class="weather-card {{.Class}}">
    <h2>{{.Title}}</h2>
    <div class="current-weather">
        <i class="{{.Icon}} weather-icon"></i>
        <div class="temperature">{{.Temperature}}</div>
        <div class="weather-description">{{.Description}}</div>
    </div>
    <div class="weather-details">
        <div class="detail">
            <i class="fas fa-tint"></i>
            <p>{{.Humidity}}</p>
            <small>Humidity</small>
        </div>
        <div class="detail">
            <i class="fas fa-wind"></i>
            <p>{{.Wind}}</p>
            <small>Wind</small>
        </div>
        <div class="detail">
            <i class="fas fa-thermometer-half"></i>
            <p>{{.FeelsLike}}</p>
            <small>Feels Like</small>
        </div>
    </div>
    <div class="forecast">
    {{- range .Forecast}}
        <div class="forecast-day">
            <p>{{.Weekday}}</p>
            <i class="{{.Icon}}"></i>
            <p>{{.Temperature}}</p>
        </div>
    {{- end}}
    </div>
</div>
`))

// HTML renders the card markup; all fields are escaped
func HTML(card Card) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, card); err != nil {
		return "", err
	}
	return buf.String(), nil
}
