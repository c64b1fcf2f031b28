package errors

import "fmt"

// WrapParseError reports a file that could not be read as input
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{BaseError: Wrap(SyntaxErrorCode, "failed to parse "+item, cause)}
}

// WrapGenerateError attributes a synthesis failure to item
func WrapGenerateError(generationType, item string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:      Wrap(GenerationErrorCode, "failed to generate "+item, cause),
		GenerationType: generationType,
		TargetFile:     item,
	}
}

// WrapTemplateError reports a template that failed at operation (find, parse or execute)
func WrapTemplateError(templateName, operation string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:      Wrap(TemplateErrorCode, fmt.Sprintf("failed to %s template '%s'", operation, templateName), cause),
		GenerationType: "template",
		TargetFile:     templateName,
		Stage:          operation,
	}
}

// WrapFileSystemError reports a failed read, write, walk or remove of path
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s file '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError reports a configuration source that could not be loaded
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	return Wrap(ConfigurationErrorCode, fmt.Sprintf("failed to %s configuration '%s'", operation, configType), cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError reports an invalid setting in configType
func ConfigurationError(configType, message string) *BaseError {
	return New(ConfigurationErrorCode, fmt.Sprintf("configuration error in '%s': %s", configType, message)).
		WithContext("config_type", configType)
}
