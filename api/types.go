package api

import (
	"github.com/labstack/echo/v4"
	"github.com/scitags/rtquery/types"
)

const (
	JSON_PRETTY_INDENT string = "    "
)

// Querier is the subset of *rtnl.Client the API serves from.
type Querier interface {
	Interfaces() (*types.Set[types.InterfaceRecord], error)
	Addresses(family types.Family) (*types.Set[types.AddressRecord], error)
	Routes(family types.Family) (*types.Set[types.RouteRecord], error)
}

type rootResponse struct {
	ApiRoutes []*echo.Route `json:"apiRoutes"`
}

type errorResponse struct {
	Error string `json:"error"`
}
