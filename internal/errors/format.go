//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors for CLI output.
type Formatter struct {
	NoColor bool
	Writer  io.Writer

	errorColor    *color.Color
	codeColor     *color.Color
	resourceColor *color.Color
	hintColor     *color.Color
	exampleColor  *color.Color
	expectedColor *color.Color
	gotColor      *color.Color
	dimColor      *color.Color
}

// NewFormatter creates a new Formatter.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	if noColor {
		color.NoColor = true
	}

	return &Formatter{
		NoColor:       noColor,
		Writer:        w,
		errorColor:    color.New(color.FgRed, color.Bold),
		codeColor:     color.New(color.FgRed),
		resourceColor: color.New(color.FgCyan),
		hintColor:     color.New(color.FgGreen),
		exampleColor:  color.New(color.FgBlue),
		expectedColor: color.New(color.FgYellow),
		gotColor:      color.New(color.FgRed),
		dimColor:      color.New(color.FgHiBlack),
	}
}

// formatErrorHeader writes the error header with code.
// Format: "Error [E101]: message" or "Error: message" if no code.
func (f *Formatter) formatErrorHeader(sb *strings.Builder, code Code, message string) {
	sb.WriteString(f.errorColor.Sprint("Error"))
	if code != "" {
		sb.WriteString(" ")
		sb.WriteString(f.codeColor.Sprintf("[%s]", code))
	}
	sb.WriteString(f.errorColor.Sprint(": "))
	sb.WriteString(message)
	sb.WriteString("\n")
}

// Format formats an error for CLI display.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	var configErr *ConfigurationError
	var authErr *AuthenticationError
	var trustErr *TrustError
	var transportErr *TransportError
	var integrityErr *IntegrityError
	var stateErr *StateError
	var dispatchErr *DispatchError
	var baseErr *Error

	switch {
	case errors.As(err, &configErr):
		f.formatConfigurationError(&sb, configErr)
	case errors.As(err, &authErr):
		f.formatAuthenticationError(&sb, authErr)
	case errors.As(err, &trustErr):
		f.formatTrustError(&sb, trustErr)
	case errors.As(err, &transportErr):
		f.formatTransportError(&sb, transportErr)
	case errors.As(err, &integrityErr):
		f.formatIntegrityError(&sb, integrityErr)
	case errors.As(err, &stateErr):
		f.formatStateError(&sb, stateErr)
	case errors.As(err, &dispatchErr):
		f.formatDispatchError(&sb, dispatchErr)
	case errors.As(err, &baseErr):
		f.formatBaseError(&sb, baseErr)
	default:
		sb.WriteString(f.errorColor.Sprint("Error: "))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON formats an error as JSON.
func (f *Formatter) FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return nil, nil
	}

	var configErr *ConfigurationError
	var authErr *AuthenticationError
	var trustErr *TrustError
	var transportErr *TransportError
	var integrityErr *IntegrityError
	var stateErr *StateError
	var dispatchErr *DispatchError
	var baseErr *Error

	switch {
	case errors.As(err, &configErr):
		return json.MarshalIndent(configErr, "", "  ")
	case errors.As(err, &authErr):
		return json.MarshalIndent(authErr, "", "  ")
	case errors.As(err, &trustErr):
		return json.MarshalIndent(trustErr, "", "  ")
	case errors.As(err, &transportErr):
		return json.MarshalIndent(transportErr, "", "  ")
	case errors.As(err, &integrityErr):
		return json.MarshalIndent(integrityErr, "", "  ")
	case errors.As(err, &stateErr):
		return json.MarshalIndent(stateErr, "", "  ")
	case errors.As(err, &dispatchErr):
		return json.MarshalIndent(dispatchErr, "", "  ")
	case errors.As(err, &baseErr):
		return json.MarshalIndent(baseErr, "", "  ")
	default:
		return json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	}
}

func (f *Formatter) formatConfigurationError(sb *strings.Builder, err *ConfigurationError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.Path != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Manifest: "))
		sb.WriteString(f.resourceColor.Sprint(err.Path))
		sb.WriteString("\n")
	}

	if err.Field != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Field:    "))
		sb.WriteString(err.Field)
		sb.WriteString("\n")
	}

	if err.Expected != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Expected: "))
		sb.WriteString(f.expectedColor.Sprint(err.Expected))
		sb.WriteString("\n")
	}

	if err.Got != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Got:      "))
		sb.WriteString(f.gotColor.Sprint(err.Got))
		sb.WriteString("\n")
	}

	if err.Base.Cause != nil {
		sb.WriteString("\n  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Base.Cause.Error())
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatAuthenticationError(sb *strings.Builder, err *AuthenticationError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.Endpoint != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Endpoint: "))
		sb.WriteString(f.resourceColor.Sprint(err.Endpoint))
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatTrustError(sb *strings.Builder, err *TrustError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.Role != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Role:   "))
		sb.WriteString(f.resourceColor.Sprint(err.Role))
		sb.WriteString("\n")
	}

	if err.KeyID != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Key:    "))
		sb.WriteString(err.KeyID)
		sb.WriteString("\n")
	}

	if err.Digest != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Digest: "))
		sb.WriteString(f.gotColor.Sprint(err.Digest))
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatTransportError(sb *strings.Builder, err *TransportError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.URL != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("URL:      "))
		sb.WriteString(err.URL)
		sb.WriteString("\n")
	}

	if err.StatusCode > 0 {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Status:   "))
		sb.WriteString(f.gotColor.Sprintf("%d", err.StatusCode))
		sb.WriteString("\n")
	}

	if err.Attempts > 0 {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Attempts: "))
		fmt.Fprintf(sb, "%d", err.Attempts)
		sb.WriteString("\n")
	}

	if err.Base.Cause != nil {
		sb.WriteString("\n  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Base.Cause.Error())
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatIntegrityError(sb *strings.Builder, err *IntegrityError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.Path != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Path:     "))
		sb.WriteString(f.resourceColor.Sprint(err.Path))
		sb.WriteString("\n")
	}

	if err.Expected != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Expected: "))
		sb.WriteString(f.expectedColor.Sprint(err.Expected))
		sb.WriteString("\n")

		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Got:      "))
		sb.WriteString(f.gotColor.Sprint(err.Got))
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatStateError(sb *strings.Builder, err *StateError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.LockPID > 0 {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Another criticalup process is running (PID: "))
		sb.WriteString(f.gotColor.Sprintf("%d", err.LockPID))
		sb.WriteString(f.dimColor.Sprint(")"))
		sb.WriteString("\n")
	}

	if err.LockFile != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Lock file: "))
		sb.WriteString(f.resourceColor.Sprint(err.LockFile))
		sb.WriteString("\n")
	}

	if err.InstallationID != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Installation: "))
		sb.WriteString(f.resourceColor.Sprint(err.InstallationID))
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatDispatchError(sb *strings.Builder, err *DispatchError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.Invoked != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Invoked as: "))
		sb.WriteString(f.resourceColor.Sprint(err.Invoked))
		sb.WriteString("\n")
	}

	if err.SearchRoot != "" {
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Searched from: "))
		sb.WriteString(err.SearchRoot)
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, &err.Base)
}

func (f *Formatter) formatBaseError(sb *strings.Builder, err *Error) {
	f.formatErrorHeader(sb, err.Code, err.Message)

	if err.Cause != nil {
		sb.WriteString("\n  ")
		sb.WriteString(f.dimColor.Sprint("Cause: "))
		sb.WriteString(err.Cause.Error())
		sb.WriteString("\n")
	}

	f.formatHintAndExample(sb, err)
}

func (f *Formatter) formatHintAndExample(sb *strings.Builder, err *Error) {
	if err.Hint != "" {
		sb.WriteString("\n")
		sb.WriteString(f.hintColor.Sprint("Hint: "))
		lines := strings.Split(err.Hint, "\n")
		sb.WriteString(lines[0])
		sb.WriteString("\n")
		for _, line := range lines[1:] {
			sb.WriteString("      ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	if err.Example != "" {
		sb.WriteString("\n")
		sb.WriteString(f.exampleColor.Sprint("Example:"))
		sb.WriteString("\n")
		for line := range strings.SplitSeq(err.Example, "\n") {
			sb.WriteString("  ")
			sb.WriteString(f.dimColor.Sprint(line))
			sb.WriteString("\n")
		}
	}
}
