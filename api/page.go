package api

import "html/template"

type pageData struct {
	SessionID string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Weather</title>
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
    <style>
        body { font-family: sans-serif; background: #1e3c72; color: #fff; margin: 0; padding: 2rem; }
        .controls { display: flex; gap: .5rem; margin-bottom: 1.5rem; }
        #weather-container { display: flex; flex-wrap: wrap; gap: 1rem; }
        .weather-card { background: rgba(255,255,255,.15); border-radius: 12px; padding: 1rem; width: 280px; }
        .weather-details, .forecast { display: flex; justify-content: space-between; }
        .forecast-day i { font-size: 2rem; color: rgba(255,255,255,.8); }
        #loading { display: none; align-items: center; gap: .5rem; }
    </style>
</head>
<body>
    <div class="controls">
        <input id="city-input" type="text" placeholder="Enter city name">
        <button id="add-city-btn">Add City</button>
        <button id="current-location-btn"><i class="fas fa-location-arrow"></i> Current Location</button>
    </div>
    <div id="loading"><i class="fas fa-spinner fa-spin"></i> Loading...</div>
    <div id="weather-container"></div>
    <script>
        const sessionID = {{.SessionID}};
        const container = document.getElementById('weather-container');
        const loading = document.getElementById('loading');
        const cityInput = document.getElementById('city-input');
        const addCityBtn = document.getElementById('add-city-btn');
        const currentLocationBtn = document.getElementById('current-location-btn');

        async function post(path, body) {
            loading.style.display = 'flex';
            try {
                const response = await fetch('/api/sessions/' + sessionID + path, {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(body)
                });
                const data = await response.json();
                if (data.error) {
                    alert(data.error);
                } else if (data.notification) {
                    alert(data.notification);
                } else if (data.html) {
                    container.insertAdjacentHTML('beforeend', data.html);
                }
            } catch (error) {
                alert('Unable to reach the weather service');
            } finally {
                loading.style.display = 'none';
            }
        }

        addCityBtn.addEventListener('click', () => {
            const city = cityInput.value.trim();
            if (city) {
                post('/cities', { name: city });
                cityInput.value = '';
            }
        });

        cityInput.addEventListener('keypress', (e) => {
            if (e.key === 'Enter') {
                addCityBtn.click();
            }
        });

        currentLocationBtn.addEventListener('click', () => {
            if (!navigator.geolocation) {
                post('/location', { error: 'unsupported' });
                return;
            }
            navigator.geolocation.getCurrentPosition(
                (position) => post('/location', {
                    latitude: position.coords.latitude,
                    longitude: position.coords.longitude
                }),
                () => post('/location', { error: 'denied' })
            );
        });
    </script>
</body>
</html>
`))
