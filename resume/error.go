package resume

import (
	"net/http"

	"github.com/hirewire/resumeparser/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes
var (
	CodeUnsupportedFormat    = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported file type. Please upload a PDF or DOCX file.")
	CodeCorruptDocument      = ErrRegistry.Register("CORRUPT_DOCUMENT", errx.TypeValidation, http.StatusBadRequest, "Could not read the uploaded document")
	CodeEmptyDocument        = ErrRegistry.Register("EMPTY_DOCUMENT", errx.TypeValidation, http.StatusBadRequest, "Could not extract text from the document")
	CodeInferenceUnavailable = ErrRegistry.Register("INFERENCE_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Inference service unavailable")
	CodeEmptyResponse        = ErrRegistry.Register("EMPTY_RESPONSE", errx.TypeExternal, http.StatusBadGateway, "Inference service returned no usable text")
	CodeMalformedOutput      = ErrRegistry.Register("MALFORMED_OUTPUT", errx.TypeValidation, http.StatusUnprocessableEntity, "Model output is not valid JSON")
	CodeSchemaViolation      = ErrRegistry.Register("SCHEMA_VIOLATION", errx.TypeValidation, http.StatusUnprocessableEntity, "Model output does not match the resume schema")
	CodeResumeNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeEmailNotFound        = ErrRegistry.Register("EMAIL_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found for the provided email")
	CodeStorageFailure       = ErrRegistry.Register("STORAGE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Storage operation failed")
	CodeConfiguration        = ErrRegistry.Register("CONFIGURATION", errx.TypeInternal, http.StatusInternalServerError, "Service configuration error")
)

// Helper functions
func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrCorruptDocument() *errx.Error {
	return ErrRegistry.New(CodeCorruptDocument)
}

func ErrEmptyDocument() *errx.Error {
	return ErrRegistry.New(CodeEmptyDocument)
}

func ErrInferenceUnavailable() *errx.Error {
	return ErrRegistry.New(CodeInferenceUnavailable)
}

func ErrEmptyResponse() *errx.Error {
	return ErrRegistry.New(CodeEmptyResponse)
}

func ErrMalformedOutput() *errx.Error {
	return ErrRegistry.New(CodeMalformedOutput)
}

func ErrSchemaViolation() *errx.Error {
	return ErrRegistry.New(CodeSchemaViolation)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrEmailNotFound() *errx.Error {
	return ErrRegistry.New(CodeEmailNotFound)
}

func ErrStorageFailure() *errx.Error {
	return ErrRegistry.New(CodeStorageFailure)
}

func ErrConfiguration() *errx.Error {
	return ErrRegistry.New(CodeConfiguration)
}
