package main

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/ezBadminton/grouprank/core"
	"github.com/ezBadminton/grouprank/groupfile"
	"github.com/ezBadminton/grouprank/internal/config"
)

const writeWait = 10 * time.Second

type server struct {
	cfg      *config.Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func newServer(cfg *config.Config, logger *slog.Logger) *server {
	s := &server{
		cfg:    cfg,
		logger: logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.cfg.AllowedOrigins, "*") {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, origin)
}

func (s *server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.handleHealth)
	router.Route("/predict", func(r chi.Router) {
		r.Post("/", s.handlePredict)
		r.Get("/ws", s.handlePredictStream)
	})

	return router
}

type predictRequest struct {
	Group  groupfile.Document `json:"group"`
	Target string             `json:"target"`
	Rank   int                `json:"rank"`
}

// Creates the group of the request and checks that
// its prediction may be run
func (s *server) prepare(req *predictRequest) (*core.Group, error) {
	group, err := req.Group.Group()
	if err != nil {
		return nil, err
	}
	if err := s.cfg.CheckRemaining(len(group.Remaining())); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *server) predict(
	ctx context.Context,
	group *core.Group,
	req *predictRequest,
	progress func(percent int),
) (*core.Prediction, error) {
	settings := core.NewPredictSettings()
	settings.Logger = s.logger
	settings.Progress = progress

	start := time.Now()
	prediction, err := group.PredictRank(ctx, req.Target, req.Rank, settings)
	if err != nil {
		return nil, err
	}
	s.logger.Info(
		"prediction done",
		slog.String("target", req.Target),
		slog.Int("rank", req.Rank),
		slog.Int("leaves", prediction.Counts.Leaves),
		slog.Duration("duration", time.Since(start)),
	)
	return prediction, nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := readJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	group, err := s.prepare(&req)
	if err != nil {
		s.predictionErrorResponse(w, r, err)
		return
	}
	standings, err := group.Standings()
	if err != nil {
		s.predictionErrorResponse(w, r, err)
		return
	}

	prediction, err := s.predict(r.Context(), group, &req, nil)
	if err != nil {
		s.predictionErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"standings":  standings,
		"prediction": prediction,
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

// One message of a prediction stream. Exactly one field is set.
type streamMessage struct {
	Progress *int             `json:"progress,omitempty"`
	Result   *core.Prediction `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func writeMessage(conn *websocket.Conn, message streamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(message)
}

// Reads one prediction request from the connection and answers
// with the progress of the prediction followed by its result.
func (s *server) handlePredictStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already responded
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxBodyBytes)
	var req predictRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.closeStream(conn, streamMessage{Error: "invalid prediction request: " + err.Error()})
		return
	}

	group, err := s.prepare(&req)
	if err != nil {
		s.closeStream(conn, streamMessage{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The prediction stops when the client goes away
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	// Progress values strictly increase up to 100 so the
	// buffer holds all of them
	progress := make(chan int, 101)
	var prediction *core.Prediction

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(progress)
		var err error
		prediction, err = s.predict(ctx, group, &req, func(percent int) {
			progress <- percent
		})
		return err
	})
	g.Go(func() error {
		for percent := range progress {
			if err := writeMessage(conn, streamMessage{Progress: &percent}); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("prediction stream failed", slog.Any("error", err))
		s.closeStream(conn, streamMessage{Error: err.Error()})
		return
	}
	s.closeStream(conn, streamMessage{Result: prediction})
}

// Sends the last message of a stream and closes it
func (s *server) closeStream(conn *websocket.Conn, message streamMessage) {
	if err := writeMessage(conn, message); err != nil {
		s.logger.Debug("writing last stream message", slog.Any("error", err))
		return
	}
	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(writeWait))
}
