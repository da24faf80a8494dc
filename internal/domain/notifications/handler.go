package notifications

import (
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/httpjson"
	"pet-adoption-marketplace/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /notifications. writeLimit (opcional) se aplica a POST /notifications.
//
// Ojo: {id} es el userId en los GET y el id de notificación en PUT/POST.
// chi no permite dos wildcards con distinto nombre en el mismo segmento.
func RegisterRoutes(r chi.Router, svc *Service, writeLimit func(http.Handler) http.Handler) {
	r.Route("/notifications", func(nr chi.Router) {
		if writeLimit != nil {
			nr.With(writeLimit).Post("/", createNotificationHandler(svc))
		} else {
			nr.Post("/", createNotificationHandler(svc))
		}

		nr.Put("/mark-all/{id}", markAllReadHandler(svc))

		nr.Get("/{id}", listNotificationsHandler(svc))
		nr.Get("/{id}/unread-count", unreadCountHandler(svc))
		nr.Put("/{id}", markReadHandler(svc))
		nr.Post("/{id}/respond", respondHandler(svc))
	})
}

type createNotificationRequest struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	PetID      string `json:"petId"`
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
}

type respondRequest struct {
	Decision string `json:"decision"` // accept | reject
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Message    string    `json:"message"`
	PetID      string    `json:"petId,omitempty"`
	FromUserID string    `json:"fromUserId,omitempty"`
	ToUserID   string    `json:"toUserId"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

type unreadCountResponse struct {
	UserID string `json:"userId"`
	Unread int    `json:"unread"`
}

// createNotificationHandler godoc
// @Summary Crear notificación
// @Description type es opcional (default interest).
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body createNotificationRequest true "Notificación"
// @Success 201 {object} httpjson.Ack
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 409 {object} httpjson.ErrorBody "interest duplicado sin leer"
// @Router /notifications [post]
func createNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createNotificationRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		n, err := svc.Create(r.Context(), CreateInput{
			Type:       req.Type,
			Message:    req.Message,
			PetID:      req.PetID,
			FromUserID: req.FromUserID,
			ToUserID:   req.ToUserID,
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		metrics.NotificationCreated(string(n.Type))

		httpjson.Write(w, http.StatusCreated, httpjson.Ack{Message: "Notification sent", ID: n.ID})
	}
}

// listNotificationsHandler godoc
// @Summary Notificaciones de un usuario (más recientes primero)
// @Tags notifications
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} notificationResponse
// @Router /notifications/{id} [get]
func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListForUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNotificationResponse(n))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func unreadCountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")
		n, err := svc.UnreadCount(r.Context(), userID)
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, unreadCountResponse{UserID: userID, Unread: n})
	}
}

// markReadHandler godoc
// @Summary Marcar una notificación como leída (idempotente)
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} httpjson.Ack
// @Failure 404 {object} httpjson.ErrorBody
// @Router /notifications/{id} [put]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		changed, err := svc.MarkRead(r.Context(), id)
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		if changed {
			metrics.NotificationsRead(1)
		}
		httpjson.Write(w, http.StatusOK, httpjson.Ack{Message: "Marked as read", ID: id})
	}
}

// markAllReadHandler godoc
// @Summary Marcar todas las notificaciones de un usuario como leídas
// @Tags notifications
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} httpjson.Ack
// @Router /notifications/mark-all/{id} [put]
func markAllReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.MarkAllRead(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		metrics.NotificationsRead(n)
		httpjson.Write(w, http.StatusOK, httpjson.Ack{Message: "All notifications marked as read", Count: &n})
	}
}

// respondHandler godoc
// @Summary Responder un interest (accept/reject)
// @Description Crea confirmation/rejection para el interesado y marca el original como leído, atómicamente.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param payload body respondRequest true "Decisión"
// @Success 201 {object} notificationResponse
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 409 {object} httpjson.ErrorBody "ya respondido"
// @Router /notifications/{id}/respond [post]
func respondHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responderID, err := middleware.RequireUserID(r.Context())
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		var req respondRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		reply, err := svc.Respond(r.Context(), chi.URLParam(r, "id"), responderID, Decision(req.Decision))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		metrics.NotificationCreated(string(reply.Type))
		metrics.NotificationsRead(1)

		httpjson.Write(w, http.StatusCreated, toNotificationResponse(reply))
	}
}

func toNotificationResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID,
		Type:       n.Type,
		Message:    n.Message,
		PetID:      n.PetID,
		FromUserID: n.FromUserID,
		ToUserID:   n.ToUserID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}
