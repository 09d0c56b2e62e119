package rest

import "context"

// DeviceAPIClient defines the operations available against a single ASA device.
// This interface enables consumers to create mock implementations for testing.
//
// List operations follow pagination and return one Response per page.
// No operation inspects the status code: a 404 or 500 is a Response, not an
// error. Errors are transport failures or invalid arguments.
//
// Example usage with testify/mock:
//
//	type MockClient struct {
//	    mock.Mock
//	}
//
//	func (m *MockClient) GetNetworkObjects(ctx context.Context) ([]*rest.Response, error) {
//	    args := m.Called(ctx)
//	    return args.Get(0).([]*rest.Response), args.Error(1)
//	}
//
//nolint:interfacebloat // Mirrors every endpoint of the REST agent
type DeviceAPIClient interface {
	// Raw verbs, path is relative to /api/

	Delete(ctx context.Context, path string) (*Response, error)
	Get(ctx context.Context, path string) ([]*Response, error)
	GetWithLimit(ctx context.Context, path string, limit int) ([]*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Patch(ctx context.Context, path string, body any) (*Response, error)

	// Access lists and users

	GetAccessIn(ctx context.Context) ([]*Response, error)
	GetACLs(ctx context.Context) ([]*Response, error)
	GetACLACEs(ctx context.Context, acl string) ([]*Response, error)
	GetLocalUsers(ctx context.Context) ([]*Response, error)

	// Objects

	CreateObject(ctx context.Context, objectType string, body any) (*Response, error)

	CreateNetworkObject(ctx context.Context, body any) (*Response, error)
	DeleteNetworkObject(ctx context.Context, name string) (*Response, error)
	GetNetworkObject(ctx context.Context, name string) (*Response, error)
	GetNetworkObjects(ctx context.Context) ([]*Response, error)
	UpdateNetworkObject(ctx context.Context, name string, body any) (*Response, error)

	AddMemberNetworkObjectGroup(ctx context.Context, group string, members ...any) (*Response, error)
	CreateNetworkObjectGroup(ctx context.Context, body any) (*Response, error)
	DeleteNetworkObjectGroup(ctx context.Context, group string) (*Response, error)
	GetNetworkObjectGroup(ctx context.Context, group string) (*Response, error)
	GetNetworkObjectGroups(ctx context.Context) ([]*Response, error)
	RemoveMemberNetworkObjectGroup(ctx context.Context, group string, members ...any) (*Response, error)
	UpdateNetworkObjectGroup(ctx context.Context, group string, body any) (*Response, error)

	CreateServiceObject(ctx context.Context, body any) (*Response, error)
	DeleteServiceObject(ctx context.Context, name string) (*Response, error)
	GetServiceObject(ctx context.Context, name string) (*Response, error)
	GetServiceObjects(ctx context.Context) ([]*Response, error)
	UpdateServiceObject(ctx context.Context, name string, body any) (*Response, error)

	CreateNetworkServiceGroup(ctx context.Context, body any) (*Response, error)
	DeleteNetworkServiceGroup(ctx context.Context, group string) (*Response, error)
	GetNetworkServiceGroup(ctx context.Context, group string) (*Response, error)
	GetNetworkServiceGroups(ctx context.Context) ([]*Response, error)
	UpdateNetworkServiceGroup(ctx context.Context, group string, body any) (*Response, error)

	// VPN

	CreateIKEv1Policy(ctx context.Context, body any) (*Response, error)
	DeleteIKEv1Policy(ctx context.Context, policy string) (*Response, error)
	GetIKEv1Policies(ctx context.Context) ([]*Response, error)
	GetIKEv1Policy(ctx context.Context, policy string) (*Response, error)
	UpdateIKEv1Policy(ctx context.Context, policy string, body any) (*Response, error)

	// Commands

	WriteMem(ctx context.Context) (*Response, error)
}
