package presentation

import (
	"time"

	"weather-widget/internal/services/lookup"
)

const (
	LoadingText = "Chargement..."
	PromptText  = "Entrez une ville pour voir la météo"
)

type View struct {
	Kind    string
	Loading bool
	Error   string
	Prompt  string
	Current *CurrentView
	Rows    []ForecastRow
}

type CurrentView struct {
	Location    string
	IconURL     string
	Description string
	Temperature string
	Min         string
	Max         string
}

type ForecastRow struct {
	Time        string
	IconURL     string
	Description string
	Temperature string
}

// NewView maps a state to display fields. Forecast hours are formatted in loc.
func NewView(state lookup.State, loc *time.Location) View {
	v := View{Kind: state.Kind().String()}

	switch state.Kind() {
	case lookup.KindLoading:
		v.Loading = true
	case lookup.KindError:
		v.Error = state.Message()
	case lookup.KindReady:
		current, _ := state.Current()
		v.Current = &CurrentView{
			Location:    current.LocationName,
			IconURL:     IconURL(current.IconCode),
			Description: current.Description,
			Temperature: FormatTemperature(current.Temperature),
			Min:         FormatTemperature(current.MinTemperature),
			Max:         FormatTemperature(current.MaxTemperature),
		}
		for _, entry := range state.Forecast() {
			v.Rows = append(v.Rows, ForecastRow{
				Time:        FormatTime(entry.TimestampSeconds, loc),
				IconURL:     IconURL(entry.IconCode),
				Description: entry.Description,
				Temperature: FormatTemperature(entry.Temperature),
			})
		}
	default:
		v.Prompt = PromptText
	}

	return v
}
