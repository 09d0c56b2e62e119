package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lexfrei/go-asa/api/rest"
	"github.com/lexfrei/go-asa/internal/config"
)

var (
	configPath = flag.String("config", "", "Path to YAML config (defaults to ASA_* environment variables)")
	verbose    = flag.Bool("verbose", false, "Verbose output with a JSON sample per endpoint")
	timeout    = flag.Duration("timeout", 2*time.Minute, "Overall deadline for all checks")
)

type TestResult struct {
	Endpoint      string
	Success       bool
	Error         string
	Issues        []string
	JSONSample    string
	Duration      time.Duration
	StatusCode    int
	Pages         int
	Items         int
	UnknownFields []string // Item fields NetworkObject does not model
}

type check struct {
	name string
	get  func(ctx context.Context) ([]*rest.Response, error)
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("🧪 Testing go-asa against reality...")
	fmt.Println("=" + strings.Repeat("=", 60))
	fmt.Println()

	client, err := rest.NewWithConfig(cfg.ClientConfig(os.Stderr))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	fmt.Printf("📡 Device: %s (page limit %d)\n\n", client.Host(), client.PageLimit())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	checks := []check{
		{name: "GetAccessIn", get: client.GetAccessIn},
		{name: "GetACLs", get: client.GetACLs},
		{name: "GetLocalUsers", get: client.GetLocalUsers},
		{name: "GetNetworkObjects", get: client.GetNetworkObjects},
		{name: "GetNetworkObjectGroups", get: client.GetNetworkObjectGroups},
		{name: "GetServiceObjects", get: client.GetServiceObjects},
		{name: "GetNetworkServiceGroups", get: client.GetNetworkServiceGroups},
		{name: "GetIKEv1Policies", get: client.GetIKEv1Policies},
	}

	results := make([]TestResult, 0, len(checks))
	for _, c := range checks {
		results = append(results, runCheck(ctx, c))
	}

	results = append(results, testNetworkObjectKinds(ctx, client))

	printSummary(results)
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		//nolint:wrapcheck // Config errors are already descriptive
		return config.Load(*configPath)
	}

	//nolint:wrapcheck // Config errors are already descriptive
	return config.FromEnv()
}

func runCheck(ctx context.Context, c check) TestResult {
	start := time.Now()
	result := TestResult{Endpoint: c.name}

	responses, err := c.get(ctx)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Pages = len(responses)
	result.StatusCode = responses[0].StatusCode
	result.Success = true

	for i, resp := range responses {
		if resp.StatusCode != http.StatusOK {
			result.Success = false
			result.Issues = append(result.Issues, fmt.Sprintf("page %d: HTTP %d", i+1, resp.StatusCode))
			continue
		}

		page, err := resp.Page()
		if err != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("page %d: %v", i+1, err))
			continue
		}

		result.Items += len(page.Items)

		if *verbose && result.JSONSample == "" && len(page.Items) > 0 {
			result.JSONSample = string(page.Items[0])
		}
	}

	return result
}

// testNetworkObjectKinds decodes every network object and reports host kinds
// and fields that NetworkObject does not model.
func testNetworkObjectKinds(ctx context.Context, client *rest.APIClient) TestResult {
	start := time.Now()
	result := TestResult{Endpoint: "NetworkObject decoding"}

	responses, err := client.GetNetworkObjects(ctx)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Pages = len(responses)
	result.StatusCode = responses[0].StatusCode
	result.Success = true

	kinds := map[rest.HostKind]int{}
	unknown := map[string]bool{}

	for i, resp := range responses {
		page, err := resp.Page()
		if err != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("page %d: %v", i+1, err))
			continue
		}

		objects, err := rest.DecodeNetworkObjects(page)
		if err != nil {
			result.Success = false
			result.Issues = append(result.Issues, fmt.Sprintf("page %d: %v", i+1, err))
			continue
		}

		for _, obj := range objects {
			kinds[obj.Host.Kind]++
			for _, field := range unmodeledFields(obj.Raw) {
				unknown[field] = true
			}
		}

		result.Items += len(objects)
	}

	for kind, count := range kinds {
		switch kind {
		case rest.HostKindAddress, rest.HostKindNetwork, rest.HostKindRange, rest.HostKindFQDN:
		default:
			result.Issues = append(result.Issues, fmt.Sprintf("unknown host kind %q (%d objects)", kind, count))
		}
	}

	for field := range unknown {
		result.UnknownFields = append(result.UnknownFields, field)
	}
	sort.Strings(result.UnknownFields)

	return result
}

// unmodeledFields returns the top-level keys of item that NetworkObject ignores.
func unmodeledFields(item json.RawMessage) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return nil
	}

	modeled := map[string]bool{
		"kind": true, "objectId": true, "name": true,
		"description": true, "host": true, "selfLink": true,
	}

	var out []string
	for key := range fields {
		if !modeled[key] {
			out = append(out, key)
		}
	}

	return out
}

func printSummary(results []TestResult) {
	fmt.Println()
	fmt.Println("📊 Test Summary")
	fmt.Println("=" + strings.Repeat("=", 60))
	fmt.Println()

	totalIssues := 0
	for _, result := range results {
		status := "✅"
		if !result.Success {
			status = "❌"
		} else if len(result.Issues) > 0 {
			status = "⚠️"
		}

		fmt.Printf("%s %s (HTTP %d, %d pages, %d items, %v)\n",
			status, result.Endpoint, result.StatusCode, result.Pages, result.Items, result.Duration)

		if result.Error != "" {
			fmt.Printf("   Error: %s\n", result.Error)
		}

		if len(result.UnknownFields) > 0 {
			fmt.Printf("   ℹ️  Fields not modeled by NetworkObject: %s\n", strings.Join(result.UnknownFields, ", "))
		}

		if len(result.Issues) > 0 {
			fmt.Printf("   ⚠️  Issues: %d\n", len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Printf("      - %s\n", issue)
			}
			totalIssues += len(result.Issues)
		}

		if *verbose && result.JSONSample != "" {
			fmt.Printf("   JSON Sample:\n%s\n", indentJSON(result.JSONSample, "      "))
		}

		fmt.Println()
	}

	fmt.Println("=" + strings.Repeat("=", 60))
	if totalIssues == 0 {
		fmt.Println("✅ All checks passed!")
	} else {
		fmt.Printf("⚠️  Found %d issues\n", totalIssues)
	}
}

func indentJSON(s, prefix string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), prefix, "  "); err != nil {
		return prefix + s
	}

	return prefix + buf.String()
}
