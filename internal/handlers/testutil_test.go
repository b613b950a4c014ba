package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/config"
	"github.com/snowskye/clinic-backend/internal/handlers"
	"github.com/snowskye/clinic-backend/internal/routes"
	"github.com/snowskye/clinic-backend/internal/services"
	"github.com/snowskye/clinic-backend/internal/storage"
)

const sessionCookie = "clinic.sid"

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Reply(context.Context, string) (string, error) {
	return s.reply, s.err
}

type sentMail struct {
	To            string
	AppointmentID string
	Token         string
}

type recordingMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failing bool
}

func (m *recordingMailer) Enabled() bool { return true }

func (m *recordingMailer) SendConfirmation(_ context.Context, to, _, appointmentID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{To: to, AppointmentID: appointmentID, Token: token})
	return nil
}

func (m *recordingMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type env struct {
	app          *fiber.App
	store        *storage.MemoryStore
	mailer       *recordingMailer
	responder    *stubResponder
	appointments *services.AppointmentService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	log := zap.NewNop()
	store := storage.NewMemoryStore()
	mailer := &recordingMailer{}
	responder := &stubResponder{reply: "Happy to help!"}
	alerter := services.NewStaffAlerter(config.TwilioConfig{}, log)
	leadSvc := services.NewLeadService(store)
	apptSvc := services.NewAppointmentService(store, mailer, alerter, log)

	sessions := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
	})

	app := fiber.New()
	routes.SetupRoutes(app, routes.Handlers{
		Auth:         handlers.NewAuthHandler(store, sessions, log),
		Chat:         handlers.NewChatHandler(leadSvc, apptSvc, responder, services.NewKeywordDetector(), log),
		Appointments: handlers.NewAppointmentHandler(store, apptSvc, log),
		Leads:        handlers.NewLeadHandler(store, log),
		Health:       handlers.NewHealthHandler("Test Clinic"),
	}, sessions)

	return &env{
		app:          app,
		store:        store,
		mailer:       mailer,
		responder:    responder,
		appointments: apptSvc,
	}
}

func (e *env) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// loginAs registers the account if needed and returns the session cookie.
func (e *env) loginAs(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	creds := map[string]string{"email": email, "password": password}
	resp := e.do(t, http.MethodPost, "/register", creds)
	resp.Body.Close()

	resp = e.do(t, http.MethodPost, "/login", creds)
	body := decodeMap(t, resp)
	require.Equal(t, true, body["success"], "login must succeed")

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}
