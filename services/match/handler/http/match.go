package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/match"
)

// MatchHandler handles HTTP requests for candidate search and driver profiles
type MatchHandler struct {
	matchUC match.MatchUC
}

// NewMatchHandler creates a new match HTTP handler
func NewMatchHandler(matchUC match.MatchUC) *MatchHandler {
	return &MatchHandler{
		matchUC: matchUC,
	}
}

// FindCandidates previews the ranked drivers for a pickup point
func (h *MatchHandler) FindCandidates(c echo.Context) error {
	if txn := nrpkg.FromEchoContext(c); txn != nil {
		txn.SetName("GET /api/match/candidates")
	}

	query, err := parseCandidateQuery(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	candidates, err := h.matchUC.FindCandidates(c.Request().Context(), query)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Candidate search failed", logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Candidates found", candidates)
}

func parseCandidateQuery(c echo.Context) (models.CandidateQuery, error) {
	var query models.CandidateQuery
	var err error

	if query.Pickup.Latitude, err = strconv.ParseFloat(c.QueryParam("lat"), 64); err != nil {
		return query, errInvalidParam("lat")
	}
	if query.Pickup.Longitude, err = strconv.ParseFloat(c.QueryParam("lng"), 64); err != nil {
		return query, errInvalidParam("lng")
	}
	if raw := c.QueryParam("radius_km"); raw != "" {
		if query.RadiusKm, err = strconv.ParseFloat(raw, 64); err != nil {
			return query, errInvalidParam("radius_km")
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if query.Limit, err = strconv.Atoi(raw); err != nil {
			return query, errInvalidParam("limit")
		}
	}
	query.ServiceType = models.ServiceType(c.QueryParam("service_type"))
	return query, nil
}

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid query parameter: %s", name)
}

// GetDriverProfile returns a driver's rating, tier and offer history
func (h *MatchHandler) GetDriverProfile(c echo.Context) error {
	profile, err := h.matchUC.GetDriverProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Driver profile retrieved", profile)
}

type profileRequest struct {
	Rating      float64            `json:"rating"`
	ServiceType models.ServiceType `json:"service_type"`
}

// UpsertDriverProfile sets a driver's rating and service tier
func (h *MatchHandler) UpsertDriverProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	profile := &models.DriverProfile{
		DriverID:    c.Param("id"),
		Rating:      req.Rating,
		ServiceType: req.ServiceType,
	}
	if err := h.matchUC.UpsertDriverProfile(c.Request().Context(), profile); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Driver profile updated", profile)
}
