package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bluetec-catalog/internal/application"
	"bluetec-catalog/internal/domain"
	"bluetec-catalog/internal/infrastructure/http/openapi"

	"go.uber.org/zap"
)

const maxWarmItems = 32

var _ openapi.ServerInterface = (*Server)(nil)

type Server struct {
	catalog   *application.CatalogService
	tuning    domain.LoadTuning
	preloader application.ImagePreloader
	ping      func(ctx context.Context) error
	log       *zap.Logger
}

func NewServer(catalog *application.CatalogService, tuning domain.LoadTuning, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{catalog: catalog, tuning: tuning, log: log}
}

// SetReadyCheck installs the probe used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

// SetPreloader lets /catalog warm the images of the first visible products.
func (s *Server) SetPreloader(p application.ImagePreloader) { s.preloader = p }

func (s *Server) GetProducts(w http.ResponseWriter, r *http.Request, params openapi.GetProductsParams) {
	priority := domain.PriorityNormal
	if params.Priority != nil {
		priority = domain.ParsePriority(string(*params.Priority))
	}
	entry, err := s.catalog.GetProducts(r.Context(), params.Category, deref(params.Subcategory), priority, deref(params.Limit))
	if err != nil {
		s.fetchError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductPage(entry))
}

func (s *Server) GetCatalogPage(w http.ResponseWriter, r *http.Request, params openapi.GetCatalogPageParams) {
	device := deviceFromRequest(r, s.tuning)
	w.Header().Set("Accept-CH", "Sec-CH-Viewport-Width, Device-Memory")
	w.Header().Add("Vary", "Sec-CH-Viewport-Width, Viewport-Width, Device-Memory")

	loader := application.NewProgressiveLoader(s.catalog, device, params.Category, deref(params.Subcategory), application.ProgressiveOptions{
		Limit:     deref(params.Limit),
		Preloader: s.preloader,
		Logger:    s.log,
	})
	defer loader.Close()

	if err := loader.Load(r.Context()); err != nil {
		s.fetchError(w, r, err)
		return
	}
	// A failed completion keeps the partial page and reports the error in the body.
	if params.Complete != nil && *params.Complete {
		_ = loader.LoadComplete(r.Context())
	}
	writeJSON(w, http.StatusOK, toCatalogPage(loader.Snapshot()))
}

func (s *Server) WarmCache(w http.ResponseWriter, r *http.Request) {
	var body openapi.WarmCacheJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(body.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items are required")
		return
	}
	if len(body.Items) > maxWarmItems {
		writeError(w, http.StatusBadRequest, "too many items")
		return
	}
	items := make([]domain.BatchItem, 0, len(body.Items))
	for _, it := range body.Items {
		if it.Category == "" {
			writeError(w, http.StatusBadRequest, "category is required")
			return
		}
		items = append(items, domain.BatchItem{
			Category:    it.Category,
			Subcategory: deref(it.Subcategory),
			Limit:       deref(it.Limit),
		})
	}

	outcomes := s.catalog.BatchLoadPriority(r.Context(), items)
	resp := openapi.WarmResponse{Results: make([]openapi.WarmOutcome, 0, len(outcomes))}
	for i, o := range outcomes {
		out := openapi.WarmOutcome{
			Category:    o.Item.Category,
			Subcategory: body.Items[i].Subcategory,
			Limit:       body.Items[i].Limit,
		}
		if o.Status == domain.BatchFulfilled {
			resp.Fulfilled++
			out.Status = openapi.Fulfilled
			n := len(o.Entry.Data)
			out.Count = &n
		} else {
			resp.Rejected++
			out.Status = openapi.Rejected
			if o.Err != nil {
				msg := o.Err.Error()
				out.Error = &msg
			}
		}
		resp.Results = append(resp.Results, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) ClearCache(w http.ResponseWriter, r *http.Request) {
	s.catalog.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	st := s.catalog.GetStats(r.Context())
	writeJSON(w, http.StatusOK, openapi.CacheStats{
		EntryCount:     st.EntryCount,
		PendingCount:   st.PendingCount,
		HasDurableCopy: st.HasDurableCopy,
	})
}

func (s *Server) fetchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyCategory):
		writeError(w, http.StatusBadRequest, "category is required")
	case errors.Is(err, domain.ErrTransientFetch):
		s.log.Warn("http.upstream_failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusBadGateway, "product listing unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "request cancelled")
	default:
		s.log.Error("http.internal_error", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// deviceFromRequest reads the viewport width and device memory client hints.
// Missing hints leave the profile unconstrained.
func deviceFromRequest(r *http.Request, tuning domain.LoadTuning) domain.DeviceProfile {
	width, _ := strconv.Atoi(firstHeader(r, "Sec-CH-Viewport-Width", "Viewport-Width"))
	mem, _ := strconv.ParseFloat(firstHeader(r, "Sec-CH-Device-Memory", "Device-Memory"), 64)
	if width < 0 {
		width = 0
	}
	if mem < 0 {
		mem = 0
	}
	return domain.NewDeviceProfile(width, mem, tuning)
}

func firstHeader(r *http.Request, names ...string) string {
	for _, n := range names {
		if v := r.Header.Get(n); v != "" {
			return v
		}
	}
	return ""
}

func toProductPage(e domain.CacheEntry) openapi.ProductPage {
	return openapi.ProductPage{Success: e.Success, Data: toSummaries(e.Data), Filters: toFilters(e.Filters)}
}

func toCatalogPage(snap application.ProgressiveSnapshot) openapi.CatalogPage {
	page := openapi.CatalogPage{
		Data:        toSummaries(snap.Entry.Data),
		Filters:     toFilters(snap.Entry.Filters),
		IsComplete:  snap.IsComplete,
		Loading:     snap.Loading,
		LoadingMore: snap.LoadingMore,
		State:       openapi.CatalogPageState(snap.State),
	}
	if snap.Err != nil {
		msg := snap.Err.Error()
		page.Error = &msg
	}
	return page
}

func toSummaries(ps []domain.ProductSummary) []openapi.ProductSummary {
	out := make([]openapi.ProductSummary, 0, len(ps))
	for _, p := range ps {
		out = append(out, openapi.ProductSummary{
			Id:           p.ID,
			Name:         p.Name,
			SellingPrice: p.SellingPrice,
			Price:        p.Price,
			Images:       p.Images,
			Subcategory:  p.Subcategory,
			Slug:         p.Slug,
		})
	}
	return out
}

func toFilters(raw json.RawMessage) *map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil
	}
	return &m
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, openapi.Error{Code: status, Message: msg})
}
