package pets

import (
	"errors"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/notifications"
	"pet-adoption-marketplace/internal/domain/users"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/httpjson"
	"pet-adoption-marketplace/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// RegisterInterestRoutes monta POST /pets/{petID}/interest.
// Compone pets + users + notifications; vive aquí para que notifications no dependa de pets.
func RegisterInterestRoutes(r chi.Router, svc *Service, usersSvc *users.Service, notifSvc *notifications.Service) {
	r.Post("/pets/{petID}/interest", expressInterestHandler(svc, usersSvc, notifSvc))
}

type interestResponse struct {
	ID        string             `json:"id"`
	Type      notifications.Type `json:"type"`
	Message   string             `json:"message"`
	PetID     string             `json:"petId"`
	ToUserID  string             `json:"toUserId"`
	CreatedAt time.Time          `json:"createdAt"`
}

// expressInterestHandler godoc
// @Summary Expresar interés en adoptar
// @Description Crea una notificación interest para el dueño. 409 si es tu propia mascota o ya hay un interés sin leer.
// @Tags pets
// @Produce json
// @Param petID path string true "Pet ID"
// @Success 201 {object} interestResponse
// @Failure 401 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Failure 409 {object} httpjson.ErrorBody
// @Router /pets/{petID}/interest [post]
func expressInterestHandler(svc *Service, usersSvc *users.Service, notifSvc *notifications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.RequireUserID(r.Context())
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		from := notifications.UserRef{ID: userID}
		// El nombre solo adorna el mensaje: un usuario sin perfil igual puede expresar interés.
		if c, ok := middleware.GetClaims(r.Context()); ok && c.Name != "" {
			from.Name = c.Name
		} else if u, err := usersSvc.GetByID(r.Context(), userID); err == nil {
			from.Name = u.Name
		} else if !errors.Is(err, apperr.ErrNotFound) {
			httpjson.ServiceError(w, r, err)
			return
		}

		n, err := notifSvc.ExpressInterest(r.Context(),
			notifications.PetRef{ID: p.ID, Name: p.Name, OwnerID: p.OwnerID},
			from,
		)
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		metrics.NotificationCreated(string(n.Type))

		httpjson.Write(w, http.StatusCreated, interestResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			PetID:     n.PetID,
			ToUserID:  n.ToUserID,
			CreatedAt: n.CreatedAt,
		})
	}
}
