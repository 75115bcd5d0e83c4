package dto

// ErrorResponse is the structured error body returned for every expected
// failure: a human-readable message plus a stable machine-readable kind.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"`
}
