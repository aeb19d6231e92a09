// internal/httpserver/routes_game.go
//
// Game and solver routes.
//   - POST /game/new       → start a game (random reachable pair, or explicit start/target)
//   - GET  /game/{id}      → current view
//   - DELETE /game/{id}    → abandon the game (drops the session)
//   - POST /game/move      → move to a neighbor of the current word
//   - POST /game/hint      → next word from the game's strategy, with search statistics
//   - POST /game/strategy  → switch the hint strategy
//   - POST /solve          → full path + statistics for one strategy
//   - POST /compare        → every requested strategy side by side
//   - GET  /words/{word}/neighbors → adjacency lookup
//
// Game rows are written to SQL on start and on win (best effort; failures are
// logged, never surfaced to the player).

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/search"
	"github.com/robalobadob/wordladder/internal/users"
	"github.com/robalobadob/wordladder/internal/words"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Get("/game/{id}", s.handleGetGame)
	r.Delete("/game/{id}", s.handleDeleteGame)
	r.Post("/game/move", s.handleMove)
	r.Post("/game/hint", s.handleHint)
	r.Post("/game/strategy", s.handleSetStrategy)
}

func (s *Server) mountSolver(r chi.Router) {
	r.Post("/solve", s.handleSolve)
	r.Post("/compare", s.handleCompare)
	r.Get("/words/{word}/neighbors", s.handleNeighbors)
}

// strategyOr parses name, falling back to the configured default when empty.
func (s *Server) strategyOr(name string) (search.Strategy, error) {
	if name == "" {
		return s.cfg.Strategy(), nil
	}
	return search.ParseStrategy(name)
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Difficulty string `json:"difficulty"`
	Strategy   string `json:"strategy"`
	Start      string `json:"start" validate:"required_with=Target"`
	Target     string `json:"target" validate:"required_with=Start"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Difficulty == "" && req.Start != "" {
		d = game.DifficultyOf(req.Start)
	}
	st, err := s.strategyOr(req.Strategy)
	if err != nil {
		fail(w, err)
		return
	}

	var g *game.Game
	if req.Start != "" {
		g, err = s.engine.Start(req.Start, req.Target, d, st)
	} else {
		g, err = s.engine.NewGame(d, st)
	}
	if err != nil {
		fail(w, err)
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		fail(w, err)
		return
	}

	v := s.engine.View(g)
	if err := s.users.RecordGame(r.Context(), s.owner(w, r), users.GameRecord{
		ID:           v.ID,
		Start:        v.Start,
		Target:       v.Target,
		Difficulty:   string(v.Difficulty),
		Strategy:     string(v.Strategy),
		OptimalMoves: v.OptimalMoves,
		StartedAt:    g.StartedAt,
	}); err != nil {
		log.Warn().Err(err).Str("gameId", v.ID).Msg("record game")
	}
	log.Debug().Str("gameId", v.ID).Str("start", v.Start).Str("target", v.Target).
		Int("optimal", v.OptimalMoves).Msg("game started")
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.View(g))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.games.Get(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	if err := s.games.Delete(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	log.Debug().Str("gameId", id).Msg("game abandoned")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type moveReq struct {
	GameID string `json:"gameId" validate:"required"`
	Word   string `json:"word" validate:"required"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		fail(w, err)
		return
	}
	state, err := s.engine.Move(g, req.Word)
	if err != nil {
		fail(w, err)
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		fail(w, err)
		return
	}

	v := s.engine.View(g)
	if state == game.StateWon {
		s.finish(w, r, v)
	}
	writeJSON(w, http.StatusOK, v)
}

// finish persists a won game and bumps the owner's stats.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, v game.View) {
	err := s.users.FinishGame(r.Context(), s.owner(w, r), users.GameRecord{
		ID:       v.ID,
		Strategy: string(v.Strategy),
		Moves:    v.Moves,
		Hints:    v.HintsUsed,
		Score:    v.Score,
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", v.ID).Msg("finish game")
	}
}

type gameReq struct {
	GameID string `json:"gameId" validate:"required"`
}

type hintRes struct {
	Hint  string        `json:"hint"`
	Stats *search.Stats `json:"stats"`
	Game  game.View     `json:"game"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		fail(w, err)
		return
	}
	s.writeHint(w, g, func() error { return s.games.Save(r.Context(), g) })
}

// writeHint runs a hint for g and calls save before responding.
// A missing hint still returns its statistics.
func (s *Server) writeHint(w http.ResponseWriter, g *game.Game, save func() error) {
	next, stats, err := s.engine.Hint(g)
	if err != nil && statusFor(err) != http.StatusUnprocessableEntity {
		fail(w, err)
		return
	}
	if save != nil {
		if err := save(); err != nil {
			fail(w, err)
			return
		}
	}
	res := hintRes{Hint: next, Stats: stats, Game: s.engine.View(g)}
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": err.Error(),
			"stats": stats,
			"game":  res.Game,
		})
		return
	}
	log.Debug().Str("gameId", g.ID).Str("hint", next).Int("explored", stats.NodesExplored).Msg("hint")
	writeJSON(w, http.StatusOK, res)
}

type strategyReq struct {
	GameID   string `json:"gameId" validate:"required"`
	Strategy string `json:"strategy" validate:"required"`
}

func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		fail(w, err)
		return
	}
	st, err := search.ParseStrategy(req.Strategy)
	if err != nil {
		fail(w, err)
		return
	}
	if err := s.engine.SetStrategy(g, st); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.View(g))
}

// ----------------------------- SOLVER --------------------------------------

type solveReq struct {
	Start    string `json:"start" validate:"required"`
	Target   string `json:"target" validate:"required"`
	Strategy string `json:"strategy"`
}

type solveRes struct {
	Strategy search.Strategy `json:"strategy"`
	Path     []string        `json:"path"`
	Moves    int             `json:"moves"`
	Found    bool            `json:"found"`
	Stats    *search.Stats   `json:"stats"`
}

func toSolveRes(r search.Result) solveRes {
	return solveRes{
		Strategy: r.Strategy,
		Path:     r.Path,
		Moves:    r.Moves(),
		Found:    len(r.Path) > 0,
		Stats:    r.Stats,
	}
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.strategyOr(req.Strategy)
	if err != nil {
		fail(w, err)
		return
	}
	start, target := words.Normalize(req.Start), words.Normalize(req.Target)
	t0 := time.Now()
	path, stats, err := search.Search(st, s.engine.Graph(), start, target)
	if err != nil {
		fail(w, err)
		return
	}
	log.Debug().Str("strategy", string(st)).Str("start", start).Str("target", target).
		Int("explored", stats.NodesExplored).Dur("took", time.Since(t0)).Msg("solve")
	writeJSON(w, http.StatusOK, toSolveRes(search.Result{Strategy: st, Path: path, Stats: stats}))
}

type compareReq struct {
	Start      string   `json:"start" validate:"required"`
	Target     string   `json:"target" validate:"required"`
	Strategies []string `json:"strategies" validate:"max=4"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	strategies := make([]search.Strategy, 0, len(req.Strategies))
	for _, name := range req.Strategies {
		st, err := search.ParseStrategy(name)
		if err != nil {
			fail(w, err)
			return
		}
		strategies = append(strategies, st)
	}

	results, err := search.Compare(r.Context(), s.engine.Graph(),
		words.Normalize(req.Start), words.Normalize(req.Target), strategies...)
	if err != nil {
		fail(w, err)
		return
	}
	out := make([]solveRes, len(results))
	for i, res := range results {
		out[i] = toSolveRes(res)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	word := words.Normalize(chi.URLParam(r, "word"))
	g := s.engine.Graph()
	if !g.Has(word) {
		writeError(w, http.StatusNotFound, "word not in word list")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"word": word, "neighbors": g.Neighbors(word)})
}
