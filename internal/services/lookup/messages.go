package lookup

import (
	"github.com/pkg/errors"

	"weather-widget/internal/models"
)

const (
	MessageGeolocationUnsupported = "La géolocalisation n'est pas supportée par votre navigateur"
	MessageGeolocationDenied      = "Impossible d'accéder à votre position"
	MessageLocatedWeatherFailed   = "Impossible de récupérer la météo de votre position"
	MessageCityNotFound           = "Ville non trouvée"
	MessageSearchFailed           = "Erreur lors de la recherche de la ville"
)

type origin string

const (
	originLocate origin = "locate"
	originSearch origin = "search"
)

// messageFor maps a failed cycle to the single message shown for its category.
func messageFor(o origin, err error) string {
	switch {
	case errors.Is(err, models.ErrGeolocationUnavailable):
		return MessageGeolocationUnsupported
	case errors.Is(err, models.ErrGeolocationDenied), errors.Is(err, models.ErrGeolocationFailed):
		return MessageGeolocationDenied
	case o == originLocate:
		return MessageLocatedWeatherFailed
	case errors.Is(err, models.ErrNotFound):
		return MessageCityNotFound
	default:
		return MessageSearchFailed
	}
}
