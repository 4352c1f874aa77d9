package handlers

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/application/export"
	"github.com/turtacn/molforge/internal/application/generator"
	"github.com/turtacn/molforge/internal/application/runs"
	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/domain/library"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molforge/pkg/errors"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

// emptyRunMessage is returned when a run accepted no molecules.  An empty
// run is informational, never an error.
const emptyRunMessage = "no valid drug-like molecules were generated; try a larger count or different library"

// maxImageDimension bounds the requested depiction size.
const maxImageDimension = 2048

// MoleculeHandler serves generation runs and their derived artifacts.
type MoleculeHandler struct {
	toolkit chem.Toolkit
	service *generator.Service
	store   *runs.Store
	lib     *library.Library
	genCfg  config.GenerationConfig
	render  config.RenderConfig
	logger  logging.Logger
	metrics *promm.GenerationMetrics
}

// NewMoleculeHandler wires the handler with its collaborators.  service is
// the shared time-seeded generator; seeded requests get a dedicated instance
// so they never perturb the shared random stream.
func NewMoleculeHandler(
	toolkit chem.Toolkit,
	service *generator.Service,
	store *runs.Store,
	lib *library.Library,
	genCfg config.GenerationConfig,
	renderCfg config.RenderConfig,
	logger logging.Logger,
	metrics *promm.GenerationMetrics,
) *MoleculeHandler {
	return &MoleculeHandler{
		toolkit: toolkit,
		service: service,
		store:   store,
		lib:     lib,
		genCfg:  genCfg,
		render:  renderCfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Generate handles POST /api/v1/molecules/generate.
func (h *MoleculeHandler) Generate(c *gin.Context) {
	var req mtypes.GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "malformed request body"))
			return
		}
	}

	count := req.Count
	if count == 0 {
		count = h.genCfg.DefaultCount
	}
	if count < 1 || count > h.genCfg.MaxCount {
		respondError(c, errors.New(errors.ErrCodeCountOutOfRange,
			fmt.Sprintf("count %d is outside [1, %d]", count, h.genCfg.MaxCount)))
		return
	}

	lib := h.lib
	if len(req.Fragments) > 0 || len(req.Linkers) > 0 {
		var err error
		lib, err = library.WithOverrides(req.Fragments, req.Linkers)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	service := h.service
	if req.Seed != nil {
		service = generator.NewService(h.toolkit,
			generator.WithSeed(*req.Seed),
			generator.WithLogger(h.logger),
			generator.WithMetrics(h.metrics),
		)
	}

	result, err := service.Generate(c.Request.Context(), lib.Fragments(), lib.Linkers(), count)
	if err != nil {
		respondError(c, err)
		return
	}

	run := h.store.Save(count, result.Molecules)

	resp := mtypes.GenerateResponse{
		RunID:     run.ID,
		Requested: count,
		Generated: run.Generated(),
		Molecules: run.Molecules,
	}
	if run.Generated() == 0 {
		resp.Message = emptyRunMessage
	}
	c.JSON(http.StatusOK, resp)
}

// GetRun handles GET /api/v1/runs/:runID.
func (h *MoleculeHandler) GetRun(c *gin.Context) {
	run, err := h.store.Get(c.Param("runID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// DownloadCSV handles GET /api/v1/runs/:runID/csv.
func (h *MoleculeHandler) DownloadCSV(c *gin.Context) {
	run, err := h.store.Get(c.Param("runID"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := export.CSVBytes(run.Molecules)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "generated_molecules.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// MoleculeImage handles GET /api/v1/runs/:runID/molecules/:molID/image.
func (h *MoleculeHandler) MoleculeImage(c *gin.Context) {
	rec, err := h.store.Molecule(c.Param("runID"), c.Param("molID"))
	if err != nil {
		respondError(c, err)
		return
	}

	mol, err := h.toolkit.Parse(rec.SMILES)
	if err != nil {
		// An accepted record always re-parses; anything else is a server bug.
		respondError(c, errors.Wrap(err, errors.ErrCodeInternal, "stored SMILES no longer parses"))
		return
	}

	width := queryInt(c, "width", h.render.Width, 16, maxImageDimension)
	height := queryInt(c, "height", h.render.Height, 16, maxImageDimension)

	img, err := h.toolkit.Render2D(mol, width, height)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeRenderFailed, "PNG encoding failed"))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
