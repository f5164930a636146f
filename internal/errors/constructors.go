package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ThedocError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ThedocError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Extraction errors

func FileReadError(path string, cause error) *ThedocError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "source file read failed").
		WithContext("path", path)
}

func DecodeError(path string) *ThedocError {
	return New(CategoryFileSystem, SeverityError, "source file is not valid UTF-8").
		WithContext("path", path)
}

func UnsupportedDialect(name string) *ThedocError {
	return New(CategoryConfig, SeverityFatal, "unsupported dialect").
		WithContext("dialect", name)
}

func DiscoveryError(cause error) *ThedocError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "source discovery failed")
}

// Output errors

func RenderError(target string, cause error) *ThedocError {
	return Wrap(cause, CategoryRender, SeverityFatal, "documentation rendering failed").
		WithContext("target", target)
}

func GitHistoryError(repo string, cause error) *ThedocError {
	return Wrap(cause, CategoryGit, SeverityFatal, "reading commit history failed").
		WithContext("repository", repo)
}

func StateError(operation string, cause error) *ThedocError {
	return Wrap(cause, CategoryRuntime, SeverityWarning, "state store operation failed").
		WithContext("operation", operation)
}
