// Package rest is a client for the REST API agent of a Cisco ASA firewall.
//
// Every request goes to https://{host}/api/{path} with JSON headers and HTTP
// Basic credentials. Responses are returned as they arrive: status codes are
// not interpreted and bodies are kept as raw bytes. List endpoints are
// paginated by the device; Get follows the declared page count and returns
// one Response per page.
//
// # Quick Start
//
//	client, err := rest.New("10.0.0.1", "admin", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pages, err := client.GetNetworkObjects(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, resp := range pages {
//	    page, err := resp.Page()
//	    if err != nil {
//	        continue
//	    }
//	    fmt.Println(len(page.Items))
//	}
//
// # Group membership
//
//	_, err = client.AddMemberNetworkObjectGroup(ctx, "web-servers",
//	    map[string]string{"kind": "IPv4Address", "value": "10.1.1.10"})
//
// The body is {"members.add": [...]}. NewMemberPatch builds the same body for
// use with Patch directly.
//
// # Certificates
//
// ASA devices usually present a self-signed certificate, so verification is
// off unless ClientConfig.VerifyCert is set.
package rest
