// Package npms provides an HTTP client for the npms.io API.
//
// # Overview
//
// npms.io (https://api.npms.io/v2) serves analyzed metadata for npm
// packages: the collected package manifest plus popularity metrics and
// quality/popularity/maintenance scores. This package fetches single
// package documents and pages of search results.
//
// # Usage
//
//	client := npms.New(npms.Config{})
//
//	doc, err := client.FetchPackage(ctx, "react")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Collected.Metadata.Name, doc.Collected.Metadata.Version)
//
// Missing packages return [ErrNotFound]; transport failures and 5xx
// responses return [ErrNetwork]. Responses are cached when a cache backend
// is configured, and every outbound request is paced by the configured
// request interval.
package npms
