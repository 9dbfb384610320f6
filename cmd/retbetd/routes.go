package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AndreaRuggieri/retbet/internal/config"
	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/AndreaRuggieri/retbet/internal/httputil"
	"github.com/AndreaRuggieri/retbet/internal/middleware"
	"github.com/AndreaRuggieri/retbet/internal/service"
	"github.com/AndreaRuggieri/retbet/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

const birthDateLayout = "2006-01-02"

func newRouter(cfg *config.Config, database *sqlx.DB) http.Handler {
	refStore := store.NewReferenceStore(database)
	playerStore := store.NewPlayerStore(database)
	matchStore := store.NewMatchStore(database)

	refService := service.NewReferenceService(database, refStore)
	playerService := service.NewPlayerService(database, playerStore, refService)
	matchService := service.NewMatchService(database, matchStore, refStore)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/countries/resolve", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Name string `json:"name"`
				Code string `json:"code"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			country, err := refService.ResolveCountry(r.Context(), req.Name, req.Code)
			if err != nil {
				writeServiceError(w, "Failed to resolve country", err)
				return
			}
			// A nil country is a valid absence, not an error.
			httputil.JSON(w, http.StatusOK, country)
		})

		r.Get("/countries", func(w http.ResponseWriter, r *http.Request) {
			countries, err := refService.ListCountries(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list countries", err)
				return
			}
			httputil.JSON(w, http.StatusOK, countries)
		})

		r.Post("/teams", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Name     string  `json:"name"`
				CrestURL *string `json:"crest_url"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			team, err := refService.EnsureTeam(r.Context(), req.Name, req.CrestURL)
			if err != nil {
				writeServiceError(w, "Failed to create team", err)
				return
			}
			httputil.JSON(w, http.StatusOK, team)
		})

		r.Get("/teams", func(w http.ResponseWriter, r *http.Request) {
			teams, err := refService.ListTeams(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list teams", err)
				return
			}
			httputil.JSON(w, http.StatusOK, teams)
		})

		r.Post("/competitions", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Name        string `json:"name"`
				Division    int    `json:"division"`
				CountryID   int64  `json:"country_id"`
				CountryName string `json:"country_name"`
				CountryCode string `json:"country_code"`
				SeasonName  string `json:"season_name"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			countryID := req.CountryID
			if req.CountryName != "" && req.CountryCode != "" {
				country, err := refService.ResolveCountry(r.Context(), req.CountryName, req.CountryCode)
				if err != nil {
					writeServiceError(w, "Failed to resolve country", err)
					return
				}
				if country != nil {
					countryID = country.ID
				}
			}

			comp, err := refService.EnsureCompetition(r.Context(), req.Name, countryID, req.Division)
			if err != nil {
				writeServiceError(w, "Failed to create competition", err)
				return
			}

			var season *football.Season
			if req.SeasonName != "" {
				season, err = refService.EnsureSeason(r.Context(), comp.ID, req.SeasonName)
				if err != nil {
					writeServiceError(w, "Failed to create season", err)
					return
				}
			}

			httputil.JSON(w, http.StatusOK, map[string]any{
				"competition": comp,
				"season":      season,
			})
		})

		r.Get("/competitions", func(w http.ResponseWriter, r *http.Request) {
			comps, err := refService.ListCompetitions(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list competitions", err)
				return
			}
			httputil.JSON(w, http.StatusOK, comps)
		})

		r.Get("/competitions/{id}/seasons", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			seasons, err := refService.ListSeasons(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list seasons", err)
				return
			}
			httputil.JSON(w, http.StatusOK, seasons)
		})

		r.Post("/team-seasons", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				TeamID   int64 `json:"team_id"`
				SeasonID int64 `json:"season_id"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			ts, err := refService.EnsureTeamSeason(r.Context(), req.TeamID, req.SeasonID)
			if err != nil {
				writeServiceError(w, "Failed to link team to season", err)
				return
			}
			httputil.JSON(w, http.StatusOK, ts)
		})

		r.Post("/players", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				FirstName           string          `json:"first_name"`
				LastName            string          `json:"last_name"`
				FullName            string          `json:"full_name"`
				BirthDate           string          `json:"birth_date"`
				CountryID           int64           `json:"country_id"`
				CountryName         string          `json:"country_name"`
				CountryCode         string          `json:"country_code"`
				MacroRole           string          `json:"macro_role"`
				MicroRoles          []string        `json:"micro_roles"`
				JerseyNumber        int             `json:"jersey_number"`
				CurrentTeamSeasonID *int64          `json:"current_team_season_id"`
				Extras              football.Extras `json:"extras"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			var birthDate *time.Time
			if req.BirthDate != "" {
				parsed, err := time.Parse(birthDateLayout, req.BirthDate)
				if err != nil {
					httputil.BadRequest(w, "Invalid birth_date, expected YYYY-MM-DD", err)
					return
				}
				birthDate = &parsed
			}

			player, err := playerService.Upsert(r.Context(), service.PlayerInput{
				FirstName:           req.FirstName,
				LastName:            req.LastName,
				FullName:            req.FullName,
				BirthDate:           birthDate,
				CountryID:           req.CountryID,
				CountryName:         req.CountryName,
				CountryCode:         req.CountryCode,
				MacroRole:           req.MacroRole,
				MicroRoles:          req.MicroRoles,
				JerseyNumber:        req.JerseyNumber,
				CurrentTeamSeasonID: req.CurrentTeamSeasonID,
				Extras:              req.Extras,
			})
			if err != nil {
				writeServiceError(w, "Failed to save player", err)
				return
			}
			httputil.JSON(w, http.StatusOK, player)
		})

		r.Get("/players", func(w http.ResponseWriter, r *http.Request) {
			var filter store.PlayerFilter
			if v := r.URL.Query().Get("team_season_id"); v != "" {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					httputil.BadRequest(w, "Invalid team_season_id", err)
					return
				}
				filter.TeamSeasonID = &id
			}
			filter.Search = r.URL.Query().Get("search")

			players, err := playerService.List(r.Context(), filter)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list players", err)
				return
			}
			httputil.JSON(w, http.StatusOK, players)
		})

		r.Delete("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := playerService.Delete(r.Context(), id); err != nil {
				writeServiceError(w, "Failed to delete player", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/matches", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				SeasonID   int64           `json:"season_id"`
				Matchday   int             `json:"matchday"`
				Kickoff    time.Time       `json:"kickoff"`
				HomeTeamID int64           `json:"home_team_id"`
				AwayTeamID int64           `json:"away_team_id"`
				Referee    string          `json:"referee"`
				Extras     football.Extras `json:"extras"`
				Goals      []struct {
					PlayerTeamID   int64  `json:"player_team_id"`
					ScorerPlayerID *int64 `json:"scorer_player_id"`
					AssistPlayerID *int64 `json:"assist_player_id"`
					Minute         int    `json:"minute"`
					Period         string `json:"period"`
					GoalType       string `json:"goal_type"`
				} `json:"goals"`
				Cards []struct {
					TeamID   int64  `json:"team_id"`
					PlayerID *int64 `json:"player_id"`
					Minute   int    `json:"minute"`
					Period   string `json:"period"`
					CardType string `json:"card_type"`
				} `json:"cards"`
			}
			if err := httputil.Decode(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			in := service.MatchInput{
				SeasonID:   req.SeasonID,
				Matchday:   req.Matchday,
				Kickoff:    req.Kickoff,
				HomeTeamID: req.HomeTeamID,
				AwayTeamID: req.AwayTeamID,
				Referee:    req.Referee,
				Extras:     req.Extras,
			}
			for _, g := range req.Goals {
				in.Goals = append(in.Goals, service.GoalInput{
					PlayerTeamID:   g.PlayerTeamID,
					ScorerPlayerID: g.ScorerPlayerID,
					AssistPlayerID: g.AssistPlayerID,
					Minute:         g.Minute,
					Period:         g.Period,
					Type:           g.GoalType,
				})
			}
			for _, c := range req.Cards {
				in.Cards = append(in.Cards, service.CardInput{
					TeamID:   c.TeamID,
					PlayerID: c.PlayerID,
					Minute:   c.Minute,
					Period:   c.Period,
					Type:     c.CardType,
				})
			}

			match, err := matchService.Save(r.Context(), in)
			if err != nil {
				writeServiceError(w, "Failed to save match", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, match)
		})

		r.Get("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			detail, err := matchService.Get(r.Context(), id)
			if err != nil {
				writeServiceError(w, "Failed to get match", err)
				return
			}
			httputil.JSON(w, http.StatusOK, detail)
		})

		r.Delete("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := matchService.Delete(r.Context(), id); err != nil {
				writeServiceError(w, "Failed to delete match", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/seasons/{id}/matches", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			matches, err := matchService.ListBySeason(r.Context(), id)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list matches", err)
				return
			}
			httputil.JSON(w, http.StatusOK, matches)
		})
	})

	return r
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.BadRequest(w, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		httputil.NotFound(w, msg, err)
	case errors.Is(err, service.ErrConflict):
		httputil.Conflict(w, err.Error(), err)
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrCountryRequired),
		errors.Is(err, service.ErrDivisionInvalid),
		errors.Is(err, service.ErrPlayerIdentityRequired),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrTeamSelection),
		errors.Is(err, service.ErrMatchdayInvalid),
		errors.Is(err, service.ErrInvalidEvent),
		errors.Is(err, service.ErrUnknownEventTeam):
		httputil.UnprocessableEntity(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}
