// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily ladder.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start today's ladder (creates or reuses the session)
//   - POST /daily/move        → move in today's ladder
//   - POST /daily/hint        → hint for today's ladder (counts against the score)
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Each user (or anonymous cookie) can finish the daily ladder once per date:
// enforced by UNIQUE(user_id, date) in SQL and by the in-memory session.
// The pair is deterministic per date and salt, see internal/daily.

package httpserver

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/daily"
	"github.com/robalobadob/wordladder/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
	salt  string

	mu         sync.Mutex
	sessions   map[string]*game.Game      // active sessions keyed by ownerID|date
	challenges map[string]daily.Challenge // pair per date key
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router, st *daily.Store) {
	dd := &dailyServer{
		srv:        s,
		store:      st,
		salt:       s.cfg.DailySalt,
		sessions:   make(map[string]*game.Game),
		challenges: make(map[string]daily.Challenge),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/move", dd.handleMove)
		r.Post("/hint", dd.handleHint)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's challenge, computing it once per date.
func (d *dailyServer) today() (daily.Challenge, error) {
	now := d.srv.now()
	key := daily.DateKey(now)

	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.challenges[key]; ok {
		return c, nil
	}
	c, err := daily.For(d.srv.engine.Graph(), now, d.salt)
	if err != nil {
		return daily.Challenge{}, err
	}
	// only today's entries are ever needed again
	for k := range d.challenges {
		delete(d.challenges, k)
	}
	for k, g := range d.sessions {
		if !g.StartedAt.IsZero() && daily.DateKey(g.StartedAt) != key {
			delete(d.sessions, k)
		}
	}
	d.challenges[key] = c
	log.Info().Str("date", key).Str("start", c.Start).Str("target", c.Target).Msg("daily ladder")
	return c, nil
}

// playerID is the user ID when signed in, else the anonymous cookie.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

type dailyNewReq struct {
	Strategy string `json:"strategy"`
}

type dailyNewRes struct {
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Game   *game.View `json:"game,omitempty"`
}

// handleNew creates or reuses today's session.
// A player with a stored result for today gets Played=true and no game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	var req dailyNewReq
	if err := d.srv.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := d.srv.strategyOr(req.Strategy)
	if err != nil {
		fail(w, err)
		return
	}
	uid := d.playerID(w, r)
	c, err := d.today()
	if err != nil {
		fail(w, err)
		return
	}

	played, err := d.store.AlreadyPlayed(r.Context(), uid, c.Date)
	if err != nil {
		fail(w, err)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: c.Date, Played: true})
		return
	}

	key := uid + "|" + c.Date
	d.mu.Lock()
	g, ok := d.sessions[key]
	if !ok {
		g, err = d.srv.engine.Start(c.Start, c.Target, daily.Difficulty, st)
		if err != nil {
			d.mu.Unlock()
			fail(w, err)
			return
		}
		d.sessions[key] = g
	}
	d.mu.Unlock()

	v := d.srv.engine.View(g)
	writeJSON(w, http.StatusOK, dailyNewRes{Date: c.Date, Played: false, Game: &v})
}

// -----------------------------------------------------------------------------
// /daily/move, /daily/hint

// session finds the caller's daily game for today and checks gameID against it.
func (d *dailyServer) session(w http.ResponseWriter, r *http.Request, gameID string) (*game.Game, string, daily.Challenge, bool) {
	uid := d.playerID(w, r)
	c, err := d.today()
	if err != nil {
		fail(w, err)
		return nil, "", c, false
	}
	d.mu.Lock()
	g, ok := d.sessions[uid+"|"+c.Date]
	d.mu.Unlock()
	if !ok || g.ID != gameID {
		writeError(w, http.StatusConflict, "no session")
		return nil, "", c, false
	}
	return g, uid, c, true
}

type dailyMoveRes struct {
	Game     game.View `json:"game"`
	Recorded bool      `json:"recorded"`
}

// handleMove applies a move; on win the result is persisted once.
func (d *dailyServer) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := d.srv.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, uid, c, ok := d.session(w, r, req.GameID)
	if !ok {
		return
	}
	state, err := d.srv.engine.Move(g, req.Word)
	if err != nil {
		fail(w, err)
		return
	}

	v := d.srv.engine.View(g)
	res := dailyMoveRes{Game: v}
	if state == game.StateWon {
		elapsed := d.srv.now().Sub(g.StartedAt).Milliseconds()
		res.Recorded, err = d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      c.Date,
			Start:     v.Start,
			Target:    v.Target,
			Moves:     v.Moves,
			Hints:     v.HintsUsed,
			Score:     v.Score,
			ElapsedMs: elapsed,
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (d *dailyServer) handleHint(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if err := d.srv.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, _, _, ok := d.session(w, r, req.GameID)
	if !ok {
		return
	}
	d.srv.writeHint(w, g, nil)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
