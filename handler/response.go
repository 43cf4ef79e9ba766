package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Success wraps a payload into a 200 response.
func Success(payload any) events.APIGatewayProxyResponse {
	return buildResponse(http.StatusOK, payload)
}

// Failure wraps a payload into a 500 response.
func Failure(payload any) events.APIGatewayProxyResponse {
	return buildResponse(http.StatusInternalServerError, payload)
}

// failurePayload is the body of every failed request.
type failurePayload struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
}

// statusPayload is the body of Delete and DeleteAll.
type statusPayload struct {
	Status bool `json:"status"`
}

// failed builds the failure envelope for err.
func failed(err error) events.APIGatewayProxyResponse {
	return Failure(failurePayload{Status: false, Error: err.Error()})
}

func buildResponse(statusCode int, payload any) events.APIGatewayProxyResponse {
	headers := map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
		"Content-Type":                     "application/json",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		statusCode = http.StatusInternalServerError
		data, _ = json.Marshal(failurePayload{Status: false, Error: "encode response: " + err.Error()})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(data),
	}
}
