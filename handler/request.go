package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// body is a schema-less request body. Fields are read with the lenient
// accessors below; nothing is validated.
type body map[string]any

// decodeBody decodes a JSON request body. An empty body decodes as {}.
// API Gateway base64-encodes binary bodies, which are decoded first.
func decodeBody(req events.APIGatewayProxyRequest) (body, error) {
	raw := req.Body
	if req.IsBase64Encoded {
		decoded, err := decodeBase64(raw)
		if err != nil {
			return nil, fmt.Errorf("decode base64 body: %w", err)
		}
		raw = decoded
	}
	if strings.TrimSpace(raw) == "" {
		return body{}, nil
	}

	var b body
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if b == nil {
		// "null"
		b = body{}
	}
	return b, nil
}

// stringField returns the string value of key, or "" when missing or not a string.
func (b body) stringField(key string) string {
	if v, ok := b[key].(string); ok {
		return v
	}
	return ""
}

// boolField returns the boolean value of key, or false when missing or not a boolean.
func (b body) boolField(key string) bool {
	if v, ok := b[key].(bool); ok {
		return v
	}
	return false
}

// pathParam returns a path parameter, or "" when absent.
func pathParam(req events.APIGatewayProxyRequest, key string) string {
	if v, ok := req.PathParameters[key]; ok {
		return v
	}
	return ""
}

func decodeBase64(s string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
