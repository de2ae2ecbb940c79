package routes

import (
	"encoding/json"
	"net/http"

	"medcheck/medcheck/controllers"
	"medcheck/medcheck/errs"
	"medcheck/medcheck/utils/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if err := ctrl.Signup(r.Context(), req); err != nil {
			return nil, errs.HTTPStatus(err), err
		}
		return map[string]string{"message": "account created, please login"}, http.StatusCreated, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		resp, err := ctrl.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			return nil, errs.HTTPStatus(err), err
		}
		return resp, http.StatusOK, nil
	}))

	// Sessions are stateless tokens; logout is the client discarding its
	// token. The endpoint exists so the UI shell has the full action set.
	r.Post("/logout", handleJSON(func(r *http.Request) (any, int, error) {
		return map[string]string{"message": "logged out"}, http.StatusOK, nil
	}))

	return r
}
