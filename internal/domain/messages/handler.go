package messages

import (
	"context"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/httpjson"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El front corre en otro origen en dev.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes monta /messages. hub puede ser nil (sin push; solo polling).
func RegisterRoutes(r chi.Router, svc *Service, hub *Hub, writeLimit func(http.Handler) http.Handler) {
	r.Route("/messages", func(mr chi.Router) {
		if writeLimit != nil {
			mr.With(writeLimit).Post("/", sendMessageHandler(svc))
		} else {
			mr.Post("/", sendMessageHandler(svc))
		}

		// "threads" es estático y gana sobre {userA}.
		mr.Get("/threads/{userID}", listThreadsHandler(svc))
		mr.Get("/{userA}/{userB}", conversationHandler(svc))
		if hub != nil {
			mr.Get("/{userA}/{userB}/ws", conversationWSHandler(svc, hub))
		}
	})
}

type sendMessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type threadResponse struct {
	CounterpartID string    `json:"counterpartId"`
	Name          string    `json:"name"`
	ProfileImage  string    `json:"profileImage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// snapshotFrame es lo que viaja por el websocket: la conversación completa.
type snapshotFrame struct {
	Type     string            `json:"type"` // "snapshot"
	Messages []messageResponse `json:"messages"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje
// @Description Si el request está autenticado, senderId debe coincidir con el usuario.
// @Tags messages
// @Accept json
// @Produce json
// @Param payload body sendMessageRequest true "Mensaje"
// @Success 201 {object} httpjson.Ack
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 429 {object} httpjson.ErrorBody
// @Router /messages [post]
func sendMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		if uid := middleware.UserID(r.Context()); uid != "" && req.SenderID != "" && uid != req.SenderID {
			httpjson.WriteError(w, http.StatusForbidden, "senderId does not match authenticated user")
			return
		}

		m, err := svc.Send(r.Context(), SendInput{
			SenderID:   req.SenderID,
			ReceiverID: req.ReceiverID,
			Content:    req.Content,
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		metrics.MessageSent()

		httpjson.Write(w, http.StatusCreated, httpjson.Ack{Message: "Message sent", ID: m.ID})
	}
}

// conversationHandler godoc
// @Summary Conversación entre dos usuarios (ascendente por fecha)
// @Tags messages
// @Produce json
// @Param userA path string true "User A"
// @Param userB path string true "User B"
// @Success 200 {array} messageResponse
// @Router /messages/{userA}/{userB} [get]
func conversationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Conversation(r.Context(), chi.URLParam(r, "userA"), chi.URLParam(r, "userB"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toMessageResponses(items))
	}
}

// listThreadsHandler godoc
// @Summary Contrapartes con las que el usuario intercambió mensajes
// @Tags messages
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} threadResponse
// @Router /messages/threads/{userID} [get]
func listThreadsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threads, err := svc.Threads(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		out := make([]threadResponse, 0, len(threads))
		for _, t := range threads {
			out = append(out, threadResponse{
				CounterpartID: t.CounterpartID,
				Name:          t.Name,
				ProfileImage:  t.ProfileImage,
				LastMessageAt: t.LastMessageAt,
			})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// conversationWSHandler empuja un snapshot al conectar y otro después de cada mensaje nuevo del par.
func conversationWSHandler(svc *Service, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userA := chi.URLParam(r, "userA")
		userB := chi.URLParam(r, "userB")
		log := logger.FromContext(r.Context()).With(map[string]any{
			"conversation": ConversationKey(userA, userB),
		})

		// Validamos antes del upgrade para poder responder JSON.
		if _, err := svc.Conversation(r.Context(), userA, userB); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade ya respondió con el error HTTP.
			log.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
			return
		}
		defer conn.Close()

		updates, unsubscribe := hub.Subscribe(userA, userB)
		defer unsubscribe()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Lector: solo para pongs y para detectar cierre del cliente.
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		push := func() error {
			items, err := svc.Conversation(ctx, userA, userB)
			if err != nil {
				return err
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			return conn.WriteJSON(snapshotFrame{Type: "snapshot", Messages: toMessageResponses(items)})
		}

		if err := push(); err != nil {
			log.Warn("websocket initial snapshot failed", map[string]any{"error": err.Error()})
			return
		}

		ping := time.NewTicker(wsPingPeriod)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-updates:
				if !ok {
					return
				}
				if err := push(); err != nil {
					log.Debug("websocket push failed", map[string]any{"error": err.Error()})
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

func toMessageResponses(items []Message) []messageResponse {
	out := make([]messageResponse, 0, len(items))
	for _, m := range items {
		out = append(out, messageResponse{
			ID:         m.ID,
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			Content:    m.Content,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out
}
