package wishlist

import (
	"net/http"

	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/users/{userID}/wishlist", listWishlistHandler(svc))
	r.Put("/users/{userID}/wishlist/{petID}", addToWishlistHandler(svc))
	r.Delete("/users/{userID}/wishlist/{petID}", removeFromWishlistHandler(svc))
	r.Post("/users/{userID}/wishlist/{petID}/toggle", toggleWishlistHandler(svc))
}

type wishlistPetResponse struct {
	ID       string `json:"id"`
	OwnerID  string `json:"ownerId"`
	Name     string `json:"name"`
	Age      string `json:"age"`
	Breed    string `json:"breed"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Image    string `json:"image"`
}

type toggleResponse struct {
	PetID      string `json:"petId"`
	InWishlist bool   `json:"inWishlist"`
}

// listWishlistHandler godoc
// @Summary Wishlist del usuario (solo el propio usuario)
// @Tags wishlist
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} wishlistPetResponse
// @Failure 403 {object} httpjson.ErrorBody
// @Router /users/{userID}/wishlist [get]
func listWishlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), chi.URLParam(r, "userID"), middleware.UserID(r.Context()))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		out := make([]wishlistPetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, wishlistPetResponse{
				ID:       p.ID,
				OwnerID:  p.OwnerID,
				Name:     p.Name,
				Age:      p.Age,
				Breed:    p.Breed,
				Type:     string(p.Type),
				Location: p.Location,
				Image:    p.Image,
			})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func addToWishlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if err := svc.Add(r.Context(), chi.URLParam(r, "userID"), middleware.UserID(r.Context()), petID); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, httpjson.Ack{Message: "Added to wishlist", ID: petID})
	}
}

func removeFromWishlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if err := svc.Remove(r.Context(), chi.URLParam(r, "userID"), middleware.UserID(r.Context()), petID); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, httpjson.Ack{Message: "Removed from wishlist", ID: petID})
	}
}

func toggleWishlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		in, err := svc.Toggle(r.Context(), chi.URLParam(r, "userID"), middleware.UserID(r.Context()), petID)
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toggleResponse{PetID: petID, InWishlist: in})
	}
}
