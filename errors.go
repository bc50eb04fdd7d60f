package typed

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDeclaration    = "declaration_error"
	CodeRequired       = "required"
	CodeInvalidType    = "invalid_type"
	CodeInvalidChoice  = "invalid_choice"
	CodeValidateFailed = "validate_failed"
	CodeUnknownKey     = "unknown_key"
	CodeImmutable      = "immutable"
	CodeParseError     = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /nested_obj/name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected types, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// rebaseIssues prefixes child issue paths with the given base so nested
// failures keep the outer field context (e.g. /nested_obj/name).
func rebaseIssues(base string, child Issues) Issues {
	var out Issues
	for _, it := range child {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else if p[0] == '/' {
			p = base + p
		} else {
			p = base + "/" + p
		}
		out = AppendIssues(out, Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause})
	}
	return out
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with
// CodeParseError.
func issuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if i2, ok := AsIssues(err); ok {
		return i2
	}
	return Issues{Issue{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err}}
}
