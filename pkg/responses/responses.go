package responses

import (
	"encoding/json"
	"os"
)

// BuildSuccessResponse creates a standardized success response
func BuildSuccessResponse(operation string, id string, paths map[string]string, params map[string]interface{}, metrics map[string]interface{}) string {
	response := map[string]interface{}{
		"success":    true,
		"operation":  operation,
		"id":         id,
		"paths":      paths,
		"parameters": params,
		"metrics":    metrics,
	}

	jsonBytes, _ := json.MarshalIndent(response, "", "  ")
	return string(jsonBytes)
}

// BuildErrorResponse creates a standardized error response
func BuildErrorResponse(operation string, errorType string, message string, details map[string]interface{}) string {
	response := map[string]interface{}{
		"success":   false,
		"operation": operation,
		"error": map[string]interface{}{
			"type":       errorType,
			"message":    message,
			"details":    details,
			"suggestion": GetSuggestion(errorType),
		},
	}

	jsonBytes, _ := json.MarshalIndent(response, "", "  ")
	return string(jsonBytes)
}

// BuildSimpleSuccessResponse creates a success response with just a
// message and optional extra data
func BuildSimpleSuccessResponse(operation string, message string, data map[string]interface{}) string {
	response := map[string]interface{}{
		"success":   true,
		"operation": operation,
		"message":   message,
	}

	for k, v := range data {
		response[k] = v
	}

	jsonBytes, _ := json.MarshalIndent(response, "", "  ")
	return string(jsonBytes)
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) int64 {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0
	}
	return info.Size()
}

// GetSuggestion provides helpful suggestions for different error types
func GetSuggestion(errorType string) string {
	suggestions := map[string]string{
		"file_not_found":       "Please check the file path and ensure the file exists",
		"invalid_parameters":   "Check the parameter values and ensure they meet the documented bounds",
		"authentication_error": "Verify that STABILITY_API_KEY is set to a valid key",
		"insufficient_credits": "Add credits to your Stability AI account and retry",
		"rate_limited":         "Wait a few seconds before retrying",
		"timeout":              "The request took too long. Retry, or raise STABILITY_TIMEOUT_MS",
		"poll_timeout":         "The job did not finish within the polling window. Retry the operation",
		"api_error":            "Check your API key and network connection",
	}

	if suggestion, ok := suggestions[errorType]; ok {
		return suggestion
	}
	return "Please check your input and try again"
}
