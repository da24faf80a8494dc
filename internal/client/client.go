// Package client es el cliente HTTP del API del marketplace (lo usan petctl y chat).
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/platform/httpclient"
)

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Thread struct {
	CounterpartID string    `json:"counterpartId"`
	Name          string    `json:"name"`
	ProfileImage  string    `json:"profileImage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	PetID      string    `json:"petId,omitempty"`
	FromUserID string    `json:"fromUserId,omitempty"`
	ToUserID   string    `json:"toUserId"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Ack struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Identidad: Token (Bearer) tiene prioridad sobre DebugUserID.
	Token       string
	DebugUserID string
}

type Client struct {
	http    *httpclient.Client
	baseURL string
	token   string
	userID  string
}

func New(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, errors.New("client: base url required")
	}
	return &Client{
		http:    hc,
		baseURL: hc.BaseURL,
		token:   strings.TrimSpace(cfg.Token),
		userID:  strings.TrimSpace(cfg.DebugUserID),
	}, nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	} else if c.userID != "" {
		h["X-Debug-User-ID"] = c.userID
	}
	return h
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	err := c.http.DoJSON(ctx, method, path, c.headers(), in, out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			return fmt.Errorf("%s %s: %w", method, path, he)
		}
		return err
	}
	return nil
}

func (c *Client) SendMessage(ctx context.Context, senderID, receiverID, content string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, http.MethodPost, "/messages", map[string]string{
		"senderId":   senderID,
		"receiverId": receiverID,
		"content":    content,
	}, &ack)
	return ack, err
}

func (c *Client) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	var out []Message
	err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(userA)+"/"+url.PathEscape(userB), nil, &out)
	return out, err
}

func (c *Client) Threads(ctx context.Context, userID string) ([]Thread, error) {
	var out []Thread
	err := c.do(ctx, http.MethodGet, "/messages/threads/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) Notifications(ctx context.Context, userID string) ([]Notification, error) {
	var out []Notification
	err := c.do(ctx, http.MethodGet, "/notifications/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) MarkRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(notificationID), nil, nil)
}

func (c *Client) MarkAllRead(ctx context.Context, userID string) (int, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPut, "/notifications/mark-all/"+url.PathEscape(userID), nil, &ack); err != nil {
		return 0, err
	}
	if ack.Count == nil {
		return 0, nil
	}
	return *ack.Count, nil
}

// ExpressInterest actúa como el usuario del cliente.
func (c *Client) ExpressInterest(ctx context.Context, petID string) (Notification, error) {
	var out Notification
	err := c.do(ctx, http.MethodPost, "/pets/"+url.PathEscape(petID)+"/interest", nil, &out)
	return out, err
}

func (c *Client) Respond(ctx context.Context, notificationID, decision string) (Notification, error) {
	var out Notification
	err := c.do(ctx, http.MethodPost, "/notifications/"+url.PathEscape(notificationID)+"/respond",
		map[string]string{"decision": decision}, &out)
	return out, err
}

// ConversationWSURL arma la URL ws(s):// del push de la conversación.
func (c *Client) ConversationWSURL(userA, userB string) string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/messages/" + url.PathEscape(userA) + "/" + url.PathEscape(userB) + "/ws"
}

// AuthHeader devuelve los headers de identidad para conexiones que no pasan por DoJSON (websocket).
func (c *Client) AuthHeader() http.Header {
	h := http.Header{}
	for k, v := range c.headers() {
		h.Set(k, v)
	}
	return h
}
