package product

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
	"github.com/MrJamesThe3rd/quotedesk/internal/importer"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

// maxUploadSize bounds spreadsheet uploads.
const maxUploadSize = 10 << 20

type Handler struct {
	svc       *product.Service
	importSvc *importer.Service
}

func NewHandler(svc *product.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/import", h.importSheet)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type productRequest struct {
	Name  *string       `json:"name,omitempty"`
	Price *money.Amount `json:"price,omitempty"`
}

type productResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Price     respond.Money `json:"price"`
	CreatedAt time.Time     `json:"created_at"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Products []productResponse `json:"products"`
}

func toResponse(p *product.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     respond.NewMoney(p.Price),
		CreatedAt: p.CreatedAt,
	}
}

func toResponseList(products []*product.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := product.CreateParams{}
	if req.Name != nil {
		params.Name = *req.Name
	}

	if req.Price != nil {
		params.Price = *req.Price
	}

	p, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(products))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), id, product.UpdateParams{Name: req.Name, Price: req.Price})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	products, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrNoHeader) {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(products),
		Products: toResponseList(products),
	})
}
