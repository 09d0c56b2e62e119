package asa

import (
	"context"

	"github.com/lexfrei/go-asa/api/rest"
)

// The operations below are not backed by the device client yet. They return
// nil without contacting the device.

// GetNetworkGroupObjects is not implemented and returns nil.
func (a *ASA) GetNetworkGroupObjects(context.Context) ([]*rest.Response, error) {
	return nil, nil
}

// GetProtocolServices is not implemented and returns nil.
func (a *ASA) GetProtocolServices(context.Context) ([]*rest.Response, error) {
	return nil, nil
}

// GetICMPServices is not implemented and returns nil.
func (a *ASA) GetICMPServices(context.Context) ([]*rest.Response, error) {
	return nil, nil
}

// GetPolicy is not implemented and returns nil.
func (a *ASA) GetPolicy(context.Context, string) ([]*rest.Response, error) {
	return nil, nil
}

// GetStaticRoutes is not implemented and returns nil.
func (a *ASA) GetStaticRoutes(context.Context) ([]*rest.Response, error) {
	return nil, nil
}

// GetObjectNAT is not implemented and returns nil.
func (a *ASA) GetObjectNAT(context.Context) ([]*rest.Response, error) {
	return nil, nil
}

// GetTwiceNAT is not implemented and returns nil.
func (a *ASA) GetTwiceNAT(context.Context) ([]*rest.Response, error) {
	return nil, nil
}
