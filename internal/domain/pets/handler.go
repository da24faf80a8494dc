package pets

import (
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes usa rutas planas (sin r.Route) porque /pets/{petID}/interest
// y /users/{userID}/pets los montan otros registros sobre el mismo router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", listPetsHandler(svc))
	r.Post("/pets", createPetHandler(svc))

	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Put("/pets/{petID}", updatePetHandler(svc))
	r.Patch("/pets/{petID}", updatePetHandler(svc))
	r.Delete("/pets/{petID}", deletePetHandler(svc))

	r.Get("/users/{userID}/pets", listOwnerPetsHandler(svc))
}

type createPetRequest struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Breed       string `json:"breed"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image"`
}

type updatePetRequest struct {
	// Punteros: nil = no tocar.
	Name        *string `json:"name"`
	Age         *string `json:"age"`
	Breed       *string `json:"breed"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Image       *string `json:"image"`
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Age         string    `json:"age"`
	Breed       string    `json:"breed"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// listPetsHandler godoc
// @Summary Catálogo de mascotas
// @Tags pets
// @Produce json
// @Param q query string false "Busca en nombre, raza o ubicación"
// @Param type query string false "dog, cat, bird, rabbit, other"
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), Filter{
			Query: q.Get("q"),
			Type:  Type(q.Get("type")),
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponses(items))
	}
}

// createPetHandler godoc
// @Summary Publicar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 401 {object} httpjson.ErrorBody
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := middleware.RequireUserID(r.Context())
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		var req createPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), ownerID, CreateInput{
			Name:        req.Name,
			Age:         req.Age,
			Breed:       req.Breed,
			Type:        req.Type,
			Description: req.Description,
			Location:    req.Location,
			Image:       req.Image,
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (solo dueño)
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "Pet ID"
// @Param payload body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Failure 403 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := middleware.RequireUserID(r.Context())
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		var req updatePetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), actorID, UpdateInput{
			Name:        req.Name,
			Age:         req.Age,
			Breed:       req.Breed,
			Type:        req.Type,
			Description: req.Description,
			Location:    req.Location,
			Image:       req.Image,
		})
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := middleware.RequireUserID(r.Context())
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}

		petID := chi.URLParam(r, "petID")
		if err := svc.Delete(r.Context(), petID, actorID); err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, httpjson.Ack{Message: "Pet deleted", ID: petID})
	}
}

func listOwnerPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpjson.ServiceError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponses(items))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Age:         p.Age,
		Breed:       p.Breed,
		Type:        p.Type,
		Description: p.Description,
		Location:    p.Location,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}
