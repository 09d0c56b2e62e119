package rest

import "context"

const extendedACLsPath = "objects/extendedacls"

// GetAccessIn retrieves every page of inbound access rules.
func (c *APIClient) GetAccessIn(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, "access/in")
}

// GetACLs retrieves every page of extended ACLs.
func (c *APIClient) GetACLs(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, extendedACLsPath)
}

// GetACLACEs retrieves every page of entries of the named ACL.
func (c *APIClient) GetACLACEs(ctx context.Context, acl string) ([]*Response, error) {
	return c.Get(ctx, objectPath(extendedACLsPath, acl)+"/aces")
}

// GetLocalUsers retrieves every page of local users.
func (c *APIClient) GetLocalUsers(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, "objects/localusers")
}
