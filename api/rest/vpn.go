package rest

import "context"

const ikev1PolicyPath = "vpn/ikev1policy"

// CreateIKEv1Policy creates an IKEv1 policy.
func (c *APIClient) CreateIKEv1Policy(ctx context.Context, body any) (*Response, error) {
	return c.Post(ctx, ikev1PolicyPath, body)
}

// DeleteIKEv1Policy deletes the IKEv1 policy with the given priority or id.
func (c *APIClient) DeleteIKEv1Policy(ctx context.Context, policy string) (*Response, error) {
	return c.Delete(ctx, objectPath(ikev1PolicyPath, policy))
}

// GetIKEv1Policies retrieves every page of IKEv1 policies.
func (c *APIClient) GetIKEv1Policies(ctx context.Context) ([]*Response, error) {
	return c.Get(ctx, ikev1PolicyPath)
}

// GetIKEv1Policy retrieves a single IKEv1 policy.
func (c *APIClient) GetIKEv1Policy(ctx context.Context, policy string) (*Response, error) {
	return c.getOne(ctx, objectPath(ikev1PolicyPath, policy))
}

// UpdateIKEv1Policy patches an IKEv1 policy.
func (c *APIClient) UpdateIKEv1Policy(ctx context.Context, policy string, body any) (*Response, error) {
	return c.Patch(ctx, objectPath(ikev1PolicyPath, policy), body)
}
