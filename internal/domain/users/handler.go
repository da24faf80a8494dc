package users

import (
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signupHandler(svc))
		ar.Post("/login", loginHandler(svc))
	})

	r.Get("/users/{userID}", getUserHandler(svc))
	r.Patch("/users/{userID}", updateUserHandler(svc))
}

type signupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ProfileImage string `json:"profileImage"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	ProfileImage *string `json:"profileImage"`
}

// userResponse nunca incluye la password.
type userResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// signupHandler godoc
// @Summary Registrar usuario
// @Tags users
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Datos de registro"
// @Success 201 {object} userResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 409 {object} httpjson.ErrorBody "email ya registrado"
// @Router /auth/signup [post]
func signupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		u, err := svc.Signup(r.Context(), SignupInput{
			Name:         req.Name,
			Email:        req.Email,
			Password:     req.Password,
			ProfileImage: req.ProfileImage,
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary Login (comparación simple)
// @Tags users
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} userResponse
// @Failure 401 {object} httpjson.ErrorBody
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		httpjson.Write(w, http.StatusOK, toUserResponse(u))
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := middleware.RequireUserID(r.Context())
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		var req updateUserRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "userID"), actorID, UpdateProfileInput{
			Name:         req.Name,
			ProfileImage: req.ProfileImage,
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		httpjson.Write(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}
