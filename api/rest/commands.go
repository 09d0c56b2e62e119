package rest

import "context"

// WriteMem saves the running configuration to startup memory.
func (c *APIClient) WriteMem(ctx context.Context) (*Response, error) {
	return c.Post(ctx, "commands/writemem", nil)
}
