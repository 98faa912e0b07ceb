package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/couchcryptid/curve-number-etl/internal/domain"
)

type curveNumberResponse struct {
	Band        string             `json:"band"`
	LandCover   string             `json:"land_cover"`
	SoilGroup   string             `json:"soil_group"`
	CurveNumber domain.CurveNumber `json:"curve_number"`
	Assigned    bool               `json:"assigned"`
}

type bandResponse struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	ARC       string `json:"arc"`
	Drainage  string `json:"drainage"`
	Visible   *bool  `json:"visible,omitempty"`
}

type runoffResponse struct {
	RainfallMM  float64            `json:"rainfall_mm"`
	CurveNumber domain.CurveNumber `json:"curve_number"`
	RunoffMM    float64            `json:"runoff_mm"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleCurveNumber evaluates the per-pixel rule for one land cover and raw
// soil code. Dual soil codes are remapped for the requested drainage first,
// exactly as the band generator does.
func (s *Server) handleCurveNumber(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lc, err := codeParam(q, "land_cover")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	soil, err := codeParam(q, "soil_group")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c, err := domain.ParseCondition(q.Get("condition"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	arc, err := domain.ParseARC(q.Get("arc"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	d, err := domain.ParseDrainage(q.Get("drainage"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	group := domain.SoilGroup(domain.RemapSoil(soil, d))
	cn, ok, err := domain.AdjustedCN(domain.LandCover(lc), group, c, arc, d)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrLookup) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Warn("curve number lookup failed", "error", err,
			"land_cover", lc, "soil_group", soil, "condition", c, "arc", arc, "drainage", d)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, curveNumberResponse{
		Band:        domain.BandName(c, arc, d),
		LandCover:   domain.LandCover(lc).String(),
		SoilGroup:   group.String(),
		CurveNumber: cn,
		Assigned:    ok,
	})
}

// catalogue describes every band of a product without pixel data.
var catalogue = func() *domain.Product {
	combos := domain.Combinations()
	p := &domain.Product{Bands: make([]domain.Band, len(combos))}
	for i, c := range combos {
		p.Bands[i] = domain.Band{Name: c.Name(), Condition: c.Condition, ARC: c.ARC, Drainage: c.Drainage}
	}
	return p
}()

// handleBands lists the product's bands in order. An optional drainage
// parameter marks which layers a viewer shows for that selection.
func (s *Server) handleBands(w http.ResponseWriter, r *http.Request) {
	var visible map[string]bool
	if v := r.URL.Query().Get("drainage"); v != "" {
		d, err := domain.ParseDrainage(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		visible = domain.VisibleBands(catalogue, d)
	}

	out := make([]bandResponse, len(catalogue.Bands))
	for i, b := range catalogue.Bands {
		out[i] = bandResponse{
			Name:      b.Name,
			Title:     domain.LayerTitle(b.Condition, b.ARC, b.Drainage),
			Condition: b.Condition.String(),
			ARC:       b.ARC.String(),
			Drainage:  b.Drainage.String(),
		}
		if visible != nil {
			v := visible[b.Name]
			out[i].Visible = &v
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRunoff returns the direct runoff depth for a rainfall depth and a
// curve number.
func (s *Server) handleRunoff(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rain, err := strconv.ParseFloat(q.Get("rainfall_mm"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid rainfall_mm %q", q.Get("rainfall_mm"))})
		return
	}
	cn, err := codeParam(q, "curve_number")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	depth, ok := domain.RunoffDepth(rain, domain.CurveNumber(cn))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("rainfall_mm must be non-negative and curve_number at most %d", domain.MaxCurveNumber),
		})
		return
	}
	writeJSON(w, http.StatusOK, runoffResponse{RainfallMM: rain, CurveNumber: domain.CurveNumber(cn), RunoffMM: depth})
}

func codeParam(q url.Values, key string) (uint8, error) {
	v := q.Get(key)
	if v == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return uint8(n), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
