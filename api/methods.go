package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scitags/rtquery/rtnl"
	"github.com/scitags/rtquery/types"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, &rootResponse{
		ApiRoutes: s.server.Routes(),
	}, JSON_PRETTY_INDENT)
}

func (s *Server) handleInterfaces(c echo.Context) error {
	set, err := s.querier.Interfaces()
	if err != nil {
		return s.queryError(c, err)
	}
	return c.JSONPretty(http.StatusOK, set, JSON_PRETTY_INDENT)
}

func (s *Server) handleAddresses(c echo.Context) error {
	family, err := familyParam(c)
	if err != nil {
		return c.JSONPretty(http.StatusBadRequest, &errorResponse{err.Error()}, JSON_PRETTY_INDENT)
	}

	set, err := s.querier.Addresses(family)
	if err != nil {
		return s.queryError(c, err)
	}
	return c.JSONPretty(http.StatusOK, set, JSON_PRETTY_INDENT)
}

func (s *Server) handleRoutes(c echo.Context) error {
	family, err := familyParam(c)
	if err != nil {
		return c.JSONPretty(http.StatusBadRequest, &errorResponse{err.Error()}, JSON_PRETTY_INDENT)
	}

	set, err := s.querier.Routes(family)
	if err != nil {
		return s.queryError(c, err)
	}
	return c.JSONPretty(http.StatusOK, set, JSON_PRETTY_INDENT)
}

// familyParam reads the mandatory family query parameter.
func familyParam(c echo.Context) (types.Family, error) {
	raw := c.QueryParam("family")
	if raw == "" {
		return 0, fmt.Errorf("missing the family query parameter")
	}

	family, ok := types.ParseFamily(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrUnknownFamily, raw)
	}
	return family, nil
}

// queryError maps dump failures onto 503 as they may go away on a retry.
// Anything else is on us.
func (s *Server) queryError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var de *rtnl.DumpError
	if errors.As(err, &de) {
		status = http.StatusServiceUnavailable
	}

	logger.Warn("query failed", "path", c.Path(), "status", status, "err", err)

	return c.JSONPretty(status, &errorResponse{err.Error()}, JSON_PRETTY_INDENT)
}
