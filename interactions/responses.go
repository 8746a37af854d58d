package interactions

import (
	"encoding/json"
	"log"
	"net/http"
)

// Discord interaction response types. The exact numeric values and JSON
// shapes are part of the platform contract.
const (
	ResponseTypePong                     = 1
	ResponseTypeChannelMessageWithSource = 4
	ResponseTypeMessageNoSource          = 5
)

// ResponseData carries the message content of an interaction response
type ResponseData struct {
	Content string `json:"content"`
}

// ResponseBody is the JSON body of an interaction response
type ResponseBody struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// Response pairs an HTTP status with a protocol response body
type Response struct {
	StatusCode int
	Body       ResponseBody
}

// PongResponse answers a liveness probe
func PongResponse() Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       ResponseBody{Type: ResponseTypePong},
	}
}

// AckResponse is the interim acknowledgment sent while a command is being
// handled asynchronously
func AckResponse(content string) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body: ResponseBody{
			Type: ResponseTypeChannelMessageWithSource,
			Data: &ResponseData{Content: content},
		},
	}
}

// UnauthorizedResponse reports a failed signature verification
func UnauthorizedResponse(content string) Response {
	return Response{
		StatusCode: http.StatusUnauthorized,
		Body: ResponseBody{
			Type: ResponseTypeMessageNoSource,
			Data: &ResponseData{Content: "[UNAUTHORIZED]: " + content},
		},
	}
}

// ErrorResponse reports an unexpected gateway failure
func ErrorResponse(content string) Response {
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body: ResponseBody{
			Type: ResponseTypeMessageNoSource,
			Data: &ResponseData{Content: "[ERROR]: " + content},
		},
	}
}

// Write serializes the response onto an HTTP response writer
func (r Response) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.StatusCode)
	if err := json.NewEncoder(w).Encode(r.Body); err != nil {
		log.Printf("❌ Failed to write interaction response: %v", err)
	}
}
