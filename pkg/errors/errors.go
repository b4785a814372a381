// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeStoreConnectionFailure         Code = "store.connection.failure"
	CodeStoreGraphGetNotFound          Code = "store.graph.get.not_found"
	CodeStoreGraphDeleteNotFound       Code = "store.graph.delete.not_found"
	CodeStoreGraphReferentialIntegrity Code = "store.graph.add.referential_integrity"
	CodeStoreGraphInvalidInput         Code = "store.graph.add.invalid_input"
	CodeStoreCorruptData               Code = "store.row.corrupt_data"
	CodeStoreQueryFailure              Code = "store.query.failure"
	CodeStoreBackendUnsupported        Code = "store.backend.unsupported"

	CodeGraphBuildInvalid      Code = "graph.build.invalid"
	CodeGraphFileInvalidFormat Code = "graphfile.parse.invalid_format"

	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeServerRequestInvalid  Code = "server.request.invalid"
	CodeServerInternalFailure Code = "server.internal.failure"
	CodeServerStartFailure    Code = "server.start.failure"
	CodeServerShutdownFailure Code = "server.shutdown.failure"

	CodeCLISetupFailure Code = "cli.setup.failure"
	CodeCLIInputInvalid Code = "cli.input.invalid"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldGraphID(value int64) Attr {
	return Field("graph_id", value)
}

func FieldNodeID(value int64) Attr {
	return Field("node_id", value)
}

func FieldEdgeID(value int64) Attr {
	return Field("edge_id", value)
}

func FieldTable(value string) Attr {
	return Field("table", value)
}

func FieldBackend(value string) Attr {
	return Field("backend", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).Wrapf(err, format, args...)
}

// With adds structured fields to an existing error chain.
func With(err error, fields ...Attr) error {
	if err == nil {
		return nil
	}

	code := CodeOf(err)
	if code == "" {
		code = CodeServerInternalFailure
	}

	return oops.Code(code).With(flatten(fields)...).Wrap(err)
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid" || r == "invalid_input" || r == "invalid_value" || r == "invalid_format"
}

// IsConnection reports whether the store could not be reached.
func IsConnection(err error) bool {
	return HasCode(err, CodeStoreConnectionFailure)
}

// IsReferentialIntegrity reports whether a graph was rejected because an
// edge points at a node outside the graph.
func IsReferentialIntegrity(err error) bool {
	return reason(CodeOf(err)) == "referential_integrity"
}

// IsCorruptData reports whether stored rows could not be interpreted.
func IsCorruptData(err error) bool {
	return reason(CodeOf(err)) == "corrupt_data"
}

// IsQueryExecution reports whether the store rejected a statement.
func IsQueryExecution(err error) bool {
	return HasCode(err, CodeStoreQueryFailure)
}

func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsReferentialIntegrity(err):
		return http.StatusUnprocessableEntity
	case IsInvalidInput(err):
		return http.StatusBadRequest
	case IsConnection(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
