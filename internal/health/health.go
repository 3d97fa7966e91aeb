// Package health reports on the service's upstream collaborators.
package health

import (
	"fmt"
	"log"

	"github.com/localnerve/scenedir/internal/config"
	"github.com/localnerve/scenedir/internal/utils"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Status       string            `json:"status"`
	Store        string            `json:"store"`
	Identity     string            `json:"identity"`
	Blob         string            `json:"blob,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Check performs a comprehensive health check of the service's upstreams.
func Check(cfg *config.Config) CheckResult {
	result := CheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check document store connectivity
	if err := utils.PingStore(cfg.StoreURL); err != nil {
		result.Status = "unhealthy"
		result.Store = "unreachable"
		result.Details["store_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Document store ping failed: %v", err)
		log.Printf("Health check failed - store ping: %v", err)
	} else {
		result.Store = "ok"
		result.Details["store_url"] = cfg.StoreURL
	}

	// Check identity provider connectivity
	if err := utils.PingStore(cfg.IdentityURL); err != nil {
		result.Status = "unhealthy"
		result.Identity = "unreachable"
		result.Details["identity_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Identity provider ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Identity provider ping failed: %v", err)
		}
		log.Printf("Health check failed - identity ping: %v", err)
	} else {
		result.Identity = "ok"
		result.Details["identity_url"] = cfg.IdentityURL
	}

	// The blob endpoint is only pingable when explicitly configured,
	// hosted S3 is assumed reachable.
	if cfg.BlobEndpoint != "" {
		if err := utils.PingStore(cfg.BlobEndpoint); err != nil {
			result.Status = "unhealthy"
			result.Blob = "unreachable"
			result.Details["blob_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Blob store ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; Blob store ping failed: %v", err)
			}
			log.Printf("Health check failed - blob ping: %v", err)
		} else {
			result.Blob = "ok"
			result.Details["blob_endpoint"] = cfg.BlobEndpoint
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
