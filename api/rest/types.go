package rest

import (
	"encoding/json"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-asa/internal/response"
)

var (
	// ErrInvalidMemberOp is returned for a membership operation other than add or remove.
	ErrInvalidMemberOp = errors.New("member operation must be add or remove")

	// ErrNoMembers is returned when a membership change lists no members.
	ErrNoMembers = errors.New("member list is empty")

	// ErrNestedMembers is returned when a member is itself a list.
	ErrNestedMembers = errors.New("member must not be a list")

	// ErrMissingHostKind is returned when a network object item has no host.kind.
	ErrMissingHostKind = errors.New("network object has no host kind")
)

// HostKind discriminates network object addresses.
type HostKind string

const (
	HostKindAddress HostKind = "IPv4Address"
	HostKindNetwork HostKind = "IPv4Network"
	HostKindRange   HostKind = "IPv4Range"
	HostKindFQDN    HostKind = "IPv4FQDN"
)

// HostAddress is the host member of a network object.
type HostAddress struct {
	Kind  HostKind `json:"kind"`
	Value string   `json:"value"`
}

// NetworkObject is an item of objects/networkobjects.
type NetworkObject struct {
	Kind        string       `json:"kind,omitempty"`
	ObjectID    string       `json:"objectId,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Host        *HostAddress `json:"host"`
	SelfLink    string       `json:"selfLink,omitempty"`

	// Raw is the item exactly as the device returned it.
	Raw json.RawMessage `json:"-"`
}

// DecodeNetworkObjects decodes every item of page. It fails on the first item
// that is not an object or has no host.kind, so a page is used whole or not at all.
func DecodeNetworkObjects(page *response.Page) ([]NetworkObject, error) {
	if page == nil {
		return nil, response.ErrNoItems
	}

	objects := make([]NetworkObject, 0, len(page.Items))

	for i, item := range page.Items {
		var obj NetworkObject
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}

		if obj.Host == nil || obj.Host.Kind == "" {
			return nil, errors.Wrapf(ErrMissingHostKind, "item %d (%q)", i, obj.Name)
		}

		obj.Raw = item
		objects = append(objects, obj)
	}

	return objects, nil
}

// MemberOp is a group membership change.
type MemberOp string

const (
	MemberAdd    MemberOp = "add"
	MemberRemove MemberOp = "remove"
)

// MemberPatch is the PATCH body that adds members to or removes them from an
// object group. Build it with NewMemberPatch.
type MemberPatch struct {
	op      MemberOp
	members []any
}

// NewMemberPatch validates a membership change. Members are serialised as
// given: plain strings, object references or any other JSON value the device
// accepts. A single slice argument is taken as the member list; any other
// member that is a list is rejected with ErrNestedMembers.
func NewMemberPatch(op MemberOp, members []any) (*MemberPatch, error) {
	if op != MemberAdd && op != MemberRemove {
		return nil, errors.Wrapf(ErrInvalidMemberOp, "got %q", op)
	}

	if len(members) == 1 {
		if list, ok := memberList(members[0]); ok {
			members = list
		}
	}

	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	flat := make([]any, 0, len(members))
	for i, member := range members {
		if _, ok := memberList(member); ok {
			return nil, errors.Wrapf(ErrNestedMembers, "member %d", i)
		}
		flat = append(flat, member)
	}

	return &MemberPatch{op: op, members: flat}, nil
}

// memberList expands a slice or array value. Byte slices are JSON values
// (json.RawMessage), not lists.
func memberList(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}

	return list, true
}

// Op returns the operation of the patch.
func (p *MemberPatch) Op() MemberOp {
	return p.op
}

// MarshalJSON encodes the patch as {"members.<op>": [...]}.
func (p *MemberPatch) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(map[string][]any{"members." + string(p.op): p.members})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode member patch")
	}

	return data, nil
}
