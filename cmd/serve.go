package cmd

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skillpath/skillpath/internal/advisor"
	"github.com/skillpath/skillpath/internal/auth"
	"github.com/skillpath/skillpath/internal/llm"
	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/roadmap"
	"github.com/skillpath/skillpath/internal/serveui"
	"github.com/skillpath/skillpath/internal/store"
	"github.com/skillpath/skillpath/internal/tutor"
)

var (
	serveHost        string
	servePort        int
	serveToken       string
	serveAllowNoAuth bool
	serveNoUI        bool
	serveCORSOrigins []string
	serveProvider    string
	serveModel       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and JSON API",
	Long: `Run an HTTP server with the skillpath web UI and a JSON API.

Endpoints:
  GET  /healthz
  POST /api/render
  POST /api/advisor
  GET  /api/roadmaps
  GET  /api/roadmaps/{title}
  POST /api/roadmaps/generate
  GET  /api/tutor/chats
  POST /api/tutor/chats
  GET  /api/tutor/chats/{id}
  DEL  /api/tutor/chats/{id}
  POST /api/tutor/chats/{id}/messages   (server-sent events)
  POST /api/auth/signup | login | logout
  GET  /api/auth/me

API requests need "Authorization: Bearer <token>" unless --allow-no-auth is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Bind host (default from config, 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Bind port (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "Bearer token for API auth (auto-generated if omitted)")
	serveCmd.Flags().BoolVar(&serveAllowNoAuth, "allow-no-auth", false, "Disable auth (only allowed on loopback host)")
	serveCmd.Flags().BoolVar(&serveNoUI, "no-ui", false, "Serve only the API")
	serveCmd.Flags().StringArrayVar(&serveCORSOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable, or '*' for all)")
	AddProviderFlag(serveCmd, &serveProvider)
	AddModelFlag(serveCmd, &serveModel)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	host := firstNonEmpty(serveHost, a.cfg.Serve.Host)
	port := servePort
	if port == 0 {
		port = a.cfg.Serve.Port
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid --port %d (must be 1-65535)", port)
	}

	requireAuth := !serveAllowNoAuth
	if !requireAuth && !isLoopbackHost(host) {
		return fmt.Errorf("--allow-no-auth is only allowed on loopback hosts (got %q)", host)
	}
	token := strings.TrimSpace(firstNonEmpty(serveToken, a.cfg.Serve.Token))
	if requireAuth && token == "" {
		generated, err := generateServeToken()
		if err != nil {
			return fmt.Errorf("generate auth token: %w", err)
		}
		token = generated
	}
	origins := serveCORSOrigins
	if len(origins) == 0 {
		origins = a.cfg.Serve.CORSOrigins
	}

	provider, err := a.provider(serveProvider)
	if err != nil {
		return err
	}

	s := newServeServer(serveServerConfig{
		host:        host,
		port:        port,
		requireAuth: requireAuth,
		token:       token,
		ui:          !serveNoUI,
		corsOrigins: append([]string(nil), origins...),
		provider:    provider.Name(),
	}, serveDeps{
		store:     a.store,
		accounts:  a.auth,
		advisor:   a.advisor(provider, serveModel),
		generator: a.generator(provider, serveModel),
		tutor:     a.tutor(provider, serveModel),
		logger:    logger.Named("serve"),
	})

	fmt.Fprintf(cmd.ErrOrStderr(), "skillpath serve listening on http://%s\n", net.JoinHostPort(host, strconv.Itoa(port)))
	fmt.Fprintf(cmd.ErrOrStderr(), "auth: %s\n", authSummary(requireAuth))
	if requireAuth {
		fmt.Fprintf(cmd.ErrOrStderr(), "token: %s\n", token)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "provider: %s\n", provider.Name())

	return s.Run(cmd.Context())
}

func authSummary(required bool) string {
	if required {
		return "bearer required"
	}
	return "disabled"
}

func isLoopbackHost(host string) bool {
	h := strings.TrimSpace(strings.ToLower(host))
	return h == "127.0.0.1" || h == "localhost" || h == "::1"
}

func generateServeToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type serveServerConfig struct {
	host        string
	port        int
	requireAuth bool
	token       string
	ui          bool
	corsOrigins []string
	provider    string
}

type serveDeps struct {
	store     store.Store
	accounts  *auth.Service
	advisor   *advisor.Advisor
	generator *roadmap.Generator
	tutor     *tutor.Tutor
	logger    *zap.Logger
}

type serveServer struct {
	cfg serveServerConfig
	serveDeps
	handler http.Handler
}

func newServeServer(cfg serveServerConfig, deps serveDeps) *serveServer {
	if deps.logger == nil {
		deps.logger = zap.NewNop()
	}
	s := &serveServer{cfg: cfg, serveDeps: deps}
	s.handler = s.routes()
	return s
}

func (s *serveServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/render", s.auth(s.handleRender))
	mux.HandleFunc("POST /api/advisor", s.auth(s.handleAdvisor))

	mux.HandleFunc("GET /api/roadmaps", s.auth(s.handleRoadmapList))
	mux.HandleFunc("GET /api/roadmaps/{title}", s.auth(s.handleRoadmapGet))
	mux.HandleFunc("POST /api/roadmaps/generate", s.auth(s.handleRoadmapGenerate))

	mux.HandleFunc("GET /api/tutor/chats", s.auth(s.handleChatList))
	mux.HandleFunc("POST /api/tutor/chats", s.auth(s.handleChatCreate))
	mux.HandleFunc("GET /api/tutor/chats/{id}", s.auth(s.handleChatGet))
	mux.HandleFunc("DELETE /api/tutor/chats/{id}", s.auth(s.handleChatDelete))
	mux.HandleFunc("POST /api/tutor/chats/{id}/messages", s.auth(s.handleChatMessage))

	mux.HandleFunc("POST /api/auth/signup", s.auth(s.handleSignup))
	mux.HandleFunc("POST /api/auth/login", s.auth(s.handleLogin))
	mux.HandleFunc("POST /api/auth/logout", s.auth(s.handleLogout))
	mux.HandleFunc("GET /api/auth/me", s.auth(s.handleMe))

	if s.cfg.ui {
		mux.HandleFunc("GET /{$}", s.handleUI)
		mux.HandleFunc("GET /ui", s.handleUI)
	}
	return s.cors(mux.ServeHTTP)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *serveServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.host, strconv.Itoa(s.cfg.port)),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *serveServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *serveServer) handleUI(w http.ResponseWriter, r *http.Request) {
	page, err := serveui.Page(serveui.Settings{
		AuthRequired: s.cfg.requireAuth,
		Provider:     s.cfg.provider,
	})
	if err != nil {
		s.logger.Error("render ui page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "ui unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *serveServer) auth(next http.HandlerFunc) http.HandlerFunc {
	if !s.cfg.requireAuth {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next(w, r)
			return
		}
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			writeError(w, http.StatusUnauthorized, "invalid authentication credentials")
			return
		}
		gotToken := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		if subtle.ConstantTimeCompare([]byte(gotToken), []byte(s.cfg.token)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid authentication credentials")
			return
		}
		next(w, r)
	}
}

func (s *serveServer) cors(next http.HandlerFunc) http.HandlerFunc {
	allowed := make(map[string]struct{}, len(s.cfg.corsOrigins))
	allowAll := false
	for _, origin := range s.cfg.corsOrigins {
		o := strings.TrimSpace(origin)
		if o == "" {
			continue
		}
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[o] = struct{}{}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

type renderRequest struct {
	Text         string `json:"text"`
	HeadingLevel int    `json:"headingLevel,omitempty"`
}

func (s *serveServer) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !readJSON(w, r, &req) {
		return
	}
	renderer := markup.New(markup.WithHeadingLevel(max(req.HeadingLevel, 1)))
	blocks := markup.Blocks(req.Text)
	kinds := make([]string, len(blocks))
	for i, b := range blocks {
		kinds[i] = markup.Classify(b).String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"html":   renderer.RenderHTML(req.Text),
		"blocks": kinds,
	})
}

func (s *serveServer) handleAdvisor(w http.ResponseWriter, r *http.Request) {
	var profile advisor.StudentProfile
	if !readJSON(w, r, &profile) {
		return
	}
	resp, err := s.advisor.Recommend(r.Context(), profile)
	if err != nil {
		s.writeServiceError(w, "advisor", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": resp.Recommendations,
		"html":            markup.RenderHTML(advisor.Report(profile, resp)),
	})
}

type roadmapSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Topics      int    `json:"topics"`
}

func (s *serveServer) handleRoadmapList(w http.ResponseWriter, r *http.Request) {
	premade := roadmap.Premade()
	out := make([]roadmapSummary, 0, len(premade))
	for _, rm := range premade {
		out = append(out, roadmapSummary{Title: rm.Title, Description: rm.Description, Topics: roadmap.Count(rm.Root)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"roadmaps": out})
}

func (s *serveServer) handleRoadmapGet(w http.ResponseWriter, r *http.Request) {
	rm, err := roadmap.Find(r.PathValue("title"))
	if err != nil {
		s.writeServiceError(w, "roadmap", err)
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

func (s *serveServer) handleRoadmapGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	rm, err := s.generator.Generate(r.Context(), req.Topic)
	if err != nil {
		s.writeServiceError(w, "roadmap", err)
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

type chatMessageJSON struct {
	Role      store.Role `json:"role"`
	Text      string     `json:"text"`
	HTML      string     `json:"html"`
	CreatedAt time.Time  `json:"createdAt"`
}

type chatJSON struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Messages  []chatMessageJSON `json:"messages"`
}

type chatSummaryJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MessageCount int       `json:"messageCount"`
}

// toChatJSON renders model messages to HTML; user text is sent as typed.
func (s *serveServer) toChatJSON(c *store.Chat) chatJSON {
	out := chatJSON{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
	out.Messages = make([]chatMessageJSON, 0, len(c.Messages))
	for _, m := range c.Messages {
		msg := chatMessageJSON{Role: m.Role, Text: m.Text, CreatedAt: m.CreatedAt}
		if m.Role == store.RoleModel {
			msg.HTML = s.tutor.Renderer().RenderHTML(m.Text)
		}
		out.Messages = append(out.Messages, msg)
	}
	return out
}

func (s *serveServer) currentUserID(ctx context.Context) (string, error) {
	u, err := s.accounts.Current(ctx)
	if errors.Is(err, auth.ErrNotSignedIn) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// chatForRequest loads the chat named in the path, hiding chats owned by
// another user.
func (s *serveServer) chatForRequest(r *http.Request) (*store.Chat, error) {
	c, err := s.tutor.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	userID, err := s.currentUserID(r.Context())
	if err != nil {
		return nil, err
	}
	if c.UserID != "" && c.UserID != userID {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (s *serveServer) handleChatList(w http.ResponseWriter, r *http.Request) {
	userID, err := s.currentUserID(r.Context())
	if err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	chats, err := s.tutor.List(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	out := make([]chatSummaryJSON, 0, len(chats))
	for _, c := range chats {
		out = append(out, chatSummaryJSON{ID: c.ID, Title: c.Title, UpdatedAt: c.UpdatedAt, MessageCount: c.MessageCount})
	}
	writeJSON(w, http.StatusOK, map[string]any{"chats": out})
}

func (s *serveServer) handleChatCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := s.currentUserID(r.Context())
	if err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	c := s.tutor.NewChat(userID)
	if err := s.store.SaveChat(r.Context(), c); err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	writeJSON(w, http.StatusCreated, s.toChatJSON(c))
}

func (s *serveServer) handleChatGet(w http.ResponseWriter, r *http.Request) {
	c, err := s.chatForRequest(r)
	if err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	writeJSON(w, http.StatusOK, s.toChatJSON(c))
}

func (s *serveServer) handleChatDelete(w http.ResponseWriter, r *http.Request) {
	c, err := s.chatForRequest(r)
	if err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	if err := s.store.DeleteChat(r.Context(), c.ID); err != nil {
		s.writeServiceError(w, "chats", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type chatUpdateEvent struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// handleChatMessage streams the tutor reply as server-sent events:
// "update" for every chunk with the full reply so far, then "done" with
// the saved chat or "error". Failures before the first chunk are plain
// JSON errors.
func (s *serveServer) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	c, err := s.chatForRequest(r)
	if err != nil {
		s.writeServiceError(w, "tutor", err)
		return
	}

	flusher, _ := w.(http.Flusher)
	started := false
	start := func() {
		if started {
			return
		}
		started = true
		setSSEHeaders(w)
		w.WriteHeader(http.StatusOK)
	}

	_, err = s.tutor.Send(r.Context(), c, req.Text, func(u tutor.Update) {
		start()
		if werr := writeSSEEvent(w, "update", chatUpdateEvent{Text: u.Text, HTML: u.Fragment.HTML()}); werr != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil && !started {
		s.writeServiceError(w, "tutor", err)
		return
	}

	start()
	if err != nil {
		s.logger.Warn("tutor stream failed", zap.String("chat", c.ID), zap.Error(err))
		_ = writeSSEEvent(w, "error", map[string]string{"message": "Sorry, I encountered an error. Please try again."})
	} else {
		_ = writeSSEEvent(w, "done", s.toChatJSON(c))
	}
	if flusher != nil {
		flusher.Flush()
	}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserJSON(u *store.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *serveServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	u, err := s.accounts.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, "auth", err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserJSON(u))
}

func (s *serveServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	u, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, "auth", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

func (s *serveServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Logout(r.Context()); err != nil {
		s.writeServiceError(w, "auth", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *serveServer) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.accounts.Current(r.Context())
	if err != nil {
		s.writeServiceError(w, "auth", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

// statusFor maps service errors to HTTP status codes. Model failures are
// 502 and anything else unknown, such as a store error, is 500.
func statusFor(err error) int {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, advisor.ErrInvalidProfile),
		errors.Is(err, roadmap.ErrEmptyTopic),
		errors.Is(err, tutor.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound), errors.Is(err, roadmap.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrEmailTaken), errors.Is(err, tutor.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, context.Canceled):
		return 499
	case isModelError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isModelError(err error) bool {
	var pe *llm.ProviderError
	return errors.As(err, &pe) || errors.Is(err, llm.ErrInvalidResponse)
}

func (s *serveServer) writeServiceError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", zap.Error(err))
	} else {
		s.logger.Debug(op+" rejected", zap.Int("status", status), zap.Error(err))
	}
	writeError(w, status, err.Error())
}

// readJSON decodes the request body into dst, writing a 400 or 415 and
// returning false on failure.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := requireJSONContentType(r); err != nil {
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
		return false
	}
	if err := decodeJSONBody(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

func writeSSEEvent(w io.Writer, event string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", b)
	return err
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"message": message},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 10<<20))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func requireJSONContentType(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if strings.TrimSpace(contentType) == "" {
		return fmt.Errorf("Content-Type must be application/json")
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("invalid Content-Type header")
	}
	if mediaType != "application/json" {
		return fmt.Errorf("Content-Type must be application/json")
	}
	return nil
}
