package graph

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/user/templario-go/apperror"
)

// graphqlRequest is the standard POST body for a GraphQL operation.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// responseError is one entry of the response's errors array. Message is
// usually a string, but validation failures carry the whole field-error
// array so clients can render per-field feedback without parsing prose.
type responseError struct {
	Message    interface{}            `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

type graphqlResponse struct {
	Data   interface{}     `json:"data"`
	Errors []responseError `json:"errors,omitempty"`
}

// Handler serves the /graphql endpoint: it decodes the request, opens a
// fresh batch loader for it, executes the query and rewrites the error
// envelope from the application's typed errors.
type Handler struct {
	schema graphql.Schema
	users  UserService
}

// NewHandler creates the GraphQL HTTP handler.
func NewHandler(schema graphql.Schema, users UserService) *Handler {
	return &Handler{schema: schema, users: users}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appErr := apperror.NewBadRequestError("invalid request body", err)
		writeJSON(w, appErr.StatusCode(), graphqlResponse{
			Errors: []responseError{{
				Message:    appErr.Message,
				Extensions: map[string]interface{}{"code": appErr.Code()},
			}},
		})
		return
	}

	// One loader per request: batches must never leak across requests.
	ctx := NewContextWithLoader(r.Context(), NewUserLoader(h.users))

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	response := graphqlResponse{Data: result.Data}
	for _, formatted := range result.Errors {
		response.Errors = append(response.Errors, translateError(formatted))
	}

	writeJSON(w, http.StatusOK, response)
}

// translateError maps a formatted executor error back to the typed error the
// resolver returned. Validation errors expose their field-error array as the
// message; every other application error keeps its message string and gains
// a code extension. Errors raised by the executor itself (parse, undefined
// field) pass through untouched.
func translateError(formatted gqlerrors.FormattedError) responseError {
	appErr, ok := apperror.FromError(originalError(formatted))
	if !ok {
		return responseError{Message: formatted.Message}
	}

	if apperror.IsValidationError(appErr) {
		return responseError{
			Message:    appErr.Fields,
			Extensions: map[string]interface{}{"code": appErr.Code()},
		}
	}

	return responseError{
		Message:    appErr.Error(),
		Extensions: map[string]interface{}{"code": appErr.Code()},
	}
}

// originalError digs through the layers the executor wraps resolver errors
// in until it reaches the error the resolver actually returned.
func originalError(err error) error {
	for err != nil {
		switch wrapped := err.(type) {
		case *gqlerrors.Error:
			err = wrapped.OriginalError
		case gqlerrors.FormattedError:
			err = wrapped.OriginalError()
		default:
			return err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode graphql response: %v", err)
	}
}
