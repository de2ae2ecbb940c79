package routes

import (
	"encoding/json"
	"net/http"

	"medcheck/medcheck/config"
	"medcheck/medcheck/controllers"
	"medcheck/medcheck/errs"
	"medcheck/medcheck/middlewares"
	"medcheck/medcheck/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

func SymptomRoutes(ctrl *controllers.SymptomController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		// POST /symptoms/ : run one symptom query
		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.CheckRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			email := r.Context().Value(middlewares.UserEmailKey).(string)
			response, err := ctrl.Check(r.Context(), email, req.Symptoms)
			if err != nil {
				return nil, errs.HTTPStatus(err), err
			}
			return types.CheckResponse{Response: response}, http.StatusOK, nil
		}))

		// GET /symptoms/history : past queries, newest first
		gr.Get("/history", handleJSON(func(r *http.Request) (any, int, error) {
			email := r.Context().Value(middlewares.UserEmailKey).(string)
			history, err := ctrl.History(r.Context(), email)
			if err != nil {
				return nil, errs.HTTPStatus(err), err
			}
			return history, http.StatusOK, nil
		}))
	})

	// Streaming variant. The first frame carries the token and the request;
	// response chunks follow as text frames.
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input struct {
			Token   string             `json:"token"`
			Request types.CheckRequest `json:"request"`
		}
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		token, err := jwt.Parse(input.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid claims"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid claims")
			return
		}
		email, ok := claims["sub"].(string)
		if !ok || email == "" {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid subject"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid subject")
			return
		}

		ch, errCh := ctrl.CheckStream(ctx, email, input.Request.Symptoms)
		go func() {
			if err := <-errCh; err != nil {
				conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
				conn.Close(websocket.StatusInternalError, "stream error")
			}
		}()

		for chunk := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}
