package rest

import (
	"context"
	"net/url"
)

const (
	networkObjectsPath       = "objects/networkobjects"
	networkObjectGroupsPath  = "objects/networkobjectgroups"
	serviceObjectsPath       = "objects/networkservices"
	networkServiceGroupsPath = "objects/networkservicegroups"
)

// objectPath joins a collection and an escaped object name.
func objectPath(collection, name string) string {
	return collection + "/" + url.PathEscape(name)
}

// CreateObject creates an object in the objects/{objectType} collection.
func (c *APIClient) CreateObject(ctx context.Context, objectType string, body any) (*Response, error) {
	return c.Post(ctx, objectPath("objects", objectType), body)
}

// Network objects ("object network")

// CreateNetworkObject creates a network object.
func (c *APIClient) CreateNetworkObject(ctx context.Context, body any) (*Response, error) {
	return c.Post(ctx, networkObjectsPath, body)
}

// DeleteNetworkObject deletes the named network object.
func (c *APIClient) DeleteNetworkObject(ctx context.Context, name string) (*Response, error) {
	return c.Delete(ctx, objectPath(networkObjectsPath, name))
}

// GetNetworkObject retrieves the named network object.
func (c *APIClient) GetNetworkObject(ctx context.Context, name string) (*Response, error) {
	return c.getOne(ctx, objectPath(networkObjectsPath, name))
}

// GetNetworkObjects retrieves every page of network objects.
func (c *APIClient) GetNetworkObjects(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, networkObjectsPath)
}

// UpdateNetworkObject replaces the named network object.
func (c *APIClient) UpdateNetworkObject(ctx context.Context, name string, body any) (*Response, error) {
	return c.Put(ctx, objectPath(networkObjectsPath, name), body)
}

// Network object groups ("object-group network")

// AddMemberNetworkObjectGroup adds members to the named group. A single slice
// argument is expanded into the member list.
func (c *APIClient) AddMemberNetworkObjectGroup(ctx context.Context, group string, members ...any) (*Response, error) {
	return c.patchMembers(ctx, group, MemberAdd, members)
}

// CreateNetworkObjectGroup creates a network object group.
func (c *APIClient) CreateNetworkObjectGroup(ctx context.Context, body any) (*Response, error) {
	return c.Post(ctx, networkObjectGroupsPath, body)
}

// DeleteNetworkObjectGroup deletes the named group.
func (c *APIClient) DeleteNetworkObjectGroup(ctx context.Context, group string) (*Response, error) {
	return c.Delete(ctx, objectPath(networkObjectGroupsPath, group))
}

// GetNetworkObjectGroup retrieves the named group.
func (c *APIClient) GetNetworkObjectGroup(ctx context.Context, group string) (*Response, error) {
	return c.getOne(ctx, objectPath(networkObjectGroupsPath, group))
}

// GetNetworkObjectGroups retrieves every page of network object groups.
func (c *APIClient) GetNetworkObjectGroups(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, networkObjectGroupsPath)
}

// RemoveMemberNetworkObjectGroup removes members from the named group.
func (c *APIClient) RemoveMemberNetworkObjectGroup(ctx context.Context, group string, members ...any) (*Response, error) {
	return c.patchMembers(ctx, group, MemberRemove, members)
}

// UpdateNetworkObjectGroup patches the named group.
func (c *APIClient) UpdateNetworkObjectGroup(ctx context.Context, group string, body any) (*Response, error) {
	return c.Patch(ctx, objectPath(networkObjectGroupsPath, group), body)
}

func (c *APIClient) patchMembers(ctx context.Context, group string, op MemberOp, members []any) (*Response, error) {
	patch, err := NewMemberPatch(op, members)
	if err != nil {
		return nil, err
	}

	return c.Patch(ctx, objectPath(networkObjectGroupsPath, group), patch)
}

// Service objects ("object service")

// CreateServiceObject creates a service object.
func (c *APIClient) CreateServiceObject(ctx context.Context, body any) (*Response, error) {
	return c.Post(ctx, serviceObjectsPath, body)
}

// DeleteServiceObject deletes the named service object.
func (c *APIClient) DeleteServiceObject(ctx context.Context, name string) (*Response, error) {
	return c.Delete(ctx, objectPath(serviceObjectsPath, name))
}

// GetServiceObject retrieves the named service object.
func (c *APIClient) GetServiceObject(ctx context.Context, name string) (*Response, error) {
	return c.getOne(ctx, objectPath(serviceObjectsPath, name))
}

// GetServiceObjects retrieves every page of service objects.
func (c *APIClient) GetServiceObjects(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, serviceObjectsPath)
}

// UpdateServiceObject patches the named service object.
func (c *APIClient) UpdateServiceObject(ctx context.Context, name string, body any) (*Response, error) {
	return c.Patch(ctx, objectPath(serviceObjectsPath, name), body)
}

// Service groups ("object-group service")

// CreateNetworkServiceGroup creates a service group.
func (c *APIClient) CreateNetworkServiceGroup(ctx context.Context, body any) (*Response, error) {
	return c.Post(ctx, networkServiceGroupsPath, body)
}

// DeleteNetworkServiceGroup deletes the named service group.
func (c *APIClient) DeleteNetworkServiceGroup(ctx context.Context, group string) (*Response, error) {
	return c.Delete(ctx, objectPath(networkServiceGroupsPath, group))
}

// GetNetworkServiceGroup retrieves the named service group.
func (c *APIClient) GetNetworkServiceGroup(ctx context.Context, group string) (*Response, error) {
	return c.getOne(ctx, objectPath(networkServiceGroupsPath, group))
}

// GetNetworkServiceGroups retrieves every page of service groups.
func (c *APIClient) GetNetworkServiceGroups(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, networkServiceGroupsPath)
}

// UpdateNetworkServiceGroup patches the named service group.
func (c *APIClient) UpdateNetworkServiceGroup(ctx context.Context, group string, body any) (*Response, error) {
	return c.Patch(ctx, objectPath(networkServiceGroupsPath, group), body)
}
