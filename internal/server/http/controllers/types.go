package controllers

import "github.com/tailscope/tailscope/internal/logfs"

// tailResp is the body of /v1/logs/tail.
type tailResp struct {
	File     string   `json:"file"`
	Returned int      `json:"returned"`
	Filtered bool     `json:"filtered"`
	Entries  []string `json:"entries"`
}

// listResp is the body of /v1/logs/list.
type listResp struct {
	Directory  string        `json:"directory"`
	TotalFiles int           `json:"total_files"`
	Files      []logfs.Entry `json:"files"`
}

// registerReq is the body of /v1/servers/register.
type registerReq struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// unregisterReq is the body of /v1/servers/unregister.
type unregisterReq struct {
	Name string `json:"name"`
}
